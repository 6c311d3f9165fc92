package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"miftah/internal/modules/session/domain"
	sessionout "miftah/internal/modules/session/port/out"
	apperrors "miftah/internal/platform/errors"
)

type FileActiveSessionStore struct {
	path string
}

// NewFileActiveSessionStore keeps the running timer in dataDir/active-session.json
// so a session can be started and ended from separate CLI invocations.
func NewFileActiveSessionStore(dataDir string) sessionout.ActiveSessionStore {
	return &FileActiveSessionStore{path: filepath.Join(dataDir, "active-session.json")}
}

func (s *FileActiveSessionStore) SaveActive(_ context.Context, session domain.ActiveSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create active session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	return nil
}

func (s *FileActiveSessionStore) LoadActive(_ context.Context) (domain.ActiveSession, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ActiveSession{}, apperrors.ErrNoActiveSession
		}
		return domain.ActiveSession{}, fmt.Errorf("read active session: %w", err)
	}
	active := domain.ActiveSession{}
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("decode active session: %w", err)
	}
	if active.SessionID == "" {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	return active, nil
}

func (s *FileActiveSessionStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}

// MemoryActiveSessionStore backs ephemeral runs; the timer dies with the process.
type MemoryActiveSessionStore struct {
	mu     sync.Mutex
	active *domain.ActiveSession
}

func NewMemoryActiveSessionStore() sessionout.ActiveSessionStore {
	return &MemoryActiveSessionStore{}
}

func (s *MemoryActiveSessionStore) SaveActive(_ context.Context, session domain.ActiveSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = &session
	return nil
}

func (s *MemoryActiveSessionStore) LoadActive(_ context.Context) (domain.ActiveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	return *s.active, nil
}

func (s *MemoryActiveSessionStore) ClearActive(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	return nil
}
