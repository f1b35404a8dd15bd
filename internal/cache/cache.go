// Package cache holds resolved video metadata between the moment a format
// menu is rendered and the moment the user picks an entry.
package cache

import (
	"errors"
	"sync"

	"thirdcoast.systems/fetchbot/internal/resolver"
)

var ErrNotFound = errors.New("cache entry not found")

type entry struct {
	video *resolver.ResolvedVideo
	// tick of the last Put/Get; smallest tick is evicted first.
	lastAccess uint64
}

// Store is a size-bounded, mutex-guarded map from video identifier to
// resolved metadata. Downloads run on their own goroutines, so every access
// takes the lock. When the store is full the least recently used entry is
// evicted.
type Store struct {
	mu       sync.Mutex
	capacity int
	clock    uint64
	entries  map[string]*entry
}

// New returns a Store holding at most capacity entries. capacity <= 0 is
// treated as 1.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		entries:  make(map[string]*entry, capacity),
	}
}

// Put stores video under id, evicting the least recently used entry if the
// store is over capacity. Callers only Put after a successful resolution.
func (s *Store) Put(id string, video *resolver.ResolvedVideo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock++
	s.entries[id] = &entry{video: video, lastAccess: s.clock}
	s.evictIfNeeded()
}

// Get returns the metadata stored under id, marking it recently used.
func (s *Store) Get(id string) (*resolver.ResolvedVideo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.clock++
	e.lastAccess = s.clock
	return e.video, nil
}

// Evict removes id from the store. It reports whether an entry existed.
func (s *Store) Evict(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[id]
	delete(s.entries, id)
	return ok
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// caller must hold s.mu
func (s *Store) evictIfNeeded() {
	for len(s.entries) > s.capacity {
		oldestID := ""
		oldestTick := uint64(0)
		first := true
		for id, e := range s.entries {
			if first || e.lastAccess < oldestTick {
				oldestID = id
				oldestTick = e.lastAccess
				first = false
			}
		}
		delete(s.entries, oldestID)
	}
}
