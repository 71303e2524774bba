// internal/service/catalog/store.go
package catalog

import (
	"sync"

	"motomarket-service/internal/domain/listing"
)

// Store is the in-memory mirror of the backend's listing rows held by one
// surface (public search or the admin console). It is populated once per
// load and mutated optimistically after successful remote operations, so
// the next filter pass sees moderation results without a refetch.
//
// Mutation goes through the owning service only; the mutex keeps the
// single-writer rule honest.
type Store struct {
	mu    sync.RWMutex
	items []listing.Listing
}

func NewStore() *Store {
	return &Store{}
}

// Replace installs a fresh set of rows, keeping the order the backend
// returned (created_at descending).
func (s *Store) Replace(rows []listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]listing.Listing, len(rows))
	copy(s.items, rows)
}

// Snapshot returns a copy of the current rows for a read pass.
func (s *Store) Snapshot() []listing.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]listing.Listing, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the row with the given id, if present.
func (s *Store) Get(id string) (listing.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.items {
		if l.ID == id {
			return l, true
		}
	}
	return listing.Listing{}, false
}

// SetStatus mutates only the targeted row's status field. Every other
// field and every other row is left untouched.
func (s *Store) SetStatus(id string, status listing.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			return true
		}
	}
	return false
}

// Remove drops the row with the given id.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Upsert replaces the row with the same id, or prepends when absent
// (new rows are newest-first).
func (s *Store) Upsert(l listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == l.ID {
			s.items[i] = l
			return
		}
	}
	s.items = append([]listing.Listing{l}, s.items...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
