// internal/pkg/guard/memory_store.go
package guard

import (
	"context"
	"sync"
)

// MemoryStore is a process-local FlagStore for tests and single-process
// deployments.
type MemoryStore struct {
	mu    sync.Mutex
	flags map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags[key], nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = value
	return nil
}

func (s *MemoryStore) SetIfAbsent(_ context.Context, key, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.flags[key]; exists {
		return false, nil
	}
	s.flags[key] = value
	return true, nil
}

func (s *MemoryStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.flags, k)
	}
	return nil
}
