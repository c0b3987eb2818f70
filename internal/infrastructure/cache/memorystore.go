package cache

import (
	"context"
	"sync"
	"time"
)

const defaultMemoryCapacity = 500

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a bounded in-process Store. When a Set pushes it over
// capacity, expired entries are dropped first, then the entry closest to
// expiry.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	capacity int
	now      func() time.Time
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryStore{
		entries:  make(map[string]memoryEntry, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	if len(s.entries) > s.capacity {
		s.evict()
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len reports the number of entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evict must be called with mu held.
func (s *MemoryStore) evict() {
	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}

	for len(s.entries) > s.capacity {
		var (
			victim  string
			soonest time.Time
			found   bool
		)
		for k, e := range s.entries {
			if !found || e.expiresAt.Before(soonest) {
				victim, soonest, found = k, e.expiresAt, true
			}
		}
		delete(s.entries, victim)
	}
}
