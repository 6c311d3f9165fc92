package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"miftah/internal/modules/bookmark/domain"
	bookmarkout "miftah/internal/modules/bookmark/port/out"
	"miftah/internal/platform/clock"
	apperrors "miftah/internal/platform/errors"
	"miftah/internal/platform/logging"
)

// Bookmarks keeps the saved-verse list. Every call reads the stored list, so
// several processes sharing one store see each other's changes.
type Bookmarks struct {
	mu    sync.Mutex
	clock clock.Clock
	store bookmarkout.KeyValueStore
	log   hclog.Logger
}

func NewBookmarks(clock clock.Clock, store bookmarkout.KeyValueStore, logger hclog.Logger) *Bookmarks {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Bookmarks{clock: clock, store: store, log: logger.Named("bookmark")}
}

func (s *Bookmarks) Add(ctx context.Context, surah, ayah int, name, notes string) (domain.Bookmark, bool, error) {
	if err := domain.ValidateVerse(surah, ayah); err != nil {
		return domain.Bookmark{}, false, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return domain.Bookmark{}, false, err
	}
	b := domain.New(surah, ayah, name, notes, s.clock.Now())
	list, added := domain.Add(list, b)
	if !added {
		for _, existing := range list {
			if existing.Matches(surah, ayah) {
				return existing, false, nil
			}
		}
	}
	if err := s.save(ctx, list); err != nil {
		return domain.Bookmark{}, false, err
	}
	return b, true, nil
}

func (s *Bookmarks) Remove(ctx context.Context, surah, ayah int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	list, removed := domain.Remove(list, surah, ayah)
	if !removed {
		return false, nil
	}
	return true, s.save(ctx, list)
}

func (s *Bookmarks) List(ctx context.Context) ([]domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Bookmarks) Contains(ctx context.Context, surah, ayah int) (bool, error) {
	list, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return domain.Contains(list, surah, ayah), nil
}

// Clear drops the stored list entirely.
func (s *Bookmarks) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(ctx, domain.StorageKey); err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}
	s.log.Debug("bookmarks cleared")
	return nil
}

// load fails only when the store does. An unreadable list reads as empty.
func (s *Bookmarks) load(ctx context.Context) ([]domain.Bookmark, error) {
	raw, ok, err := s.store.Get(ctx, domain.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	if !ok {
		return []domain.Bookmark{}, nil
	}
	list := []domain.Bookmark{}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.log.Warn("bookmark list unreadable, treating as empty", "key", domain.StorageKey, "error", err)
		return []domain.Bookmark{}, nil
	}
	if list == nil {
		list = []domain.Bookmark{}
	}
	return list, nil
}

func (s *Bookmarks) save(ctx context.Context, list []domain.Bookmark) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal bookmarks: %w", err)
	}
	if err := s.store.Set(ctx, domain.StorageKey, string(payload)); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	s.log.Debug("bookmarks saved", "entries", len(list))
	return nil
}
