package out

import (
	"context"
	"sync"

	progressout "miftah/internal/modules/progress/port/out"
)

// MemoryKeyValueStore keeps everything in process memory. It backs
// --ephemeral runs and tests.
type MemoryKeyValueStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKeyValueStore() progressout.KeyValueStore {
	return &MemoryKeyValueStore{values: map[string]string{}}
}

func (s *MemoryKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryKeyValueStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryKeyValueStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
