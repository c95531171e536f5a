// Package cache is a TTL + capacity bounded in-memory store used for search
// and top-jobs results. It is purely an optimization: correctness never
// depends on a hit, only latency and upstream LLM cost do.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	createdAt time.Time
}

// Store is a size-bounded TTL cache with an injected clock. Eviction runs
// synchronously at the end of each write, oldest entry first; there is no
// background sweep.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	max     int
	now     func() time.Time
}

// New creates a cache with the given TTL and capacity. A nil clock defaults
// to time.Now.
func New(ttl time.Duration, max int, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		max:     max,
		now:     now,
	}
}

// Key derives a stable cache key from the résumé text and serialized options
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached value when present and younger than the TTL.
// Expired entries are removed on access.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.createdAt) > s.ttl {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores a value and evicts the oldest entries beyond capacity
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{value: value, createdAt: s.now()}
	for _, victim := range evictionVictims(s.entries, s.max) {
		delete(s.entries, victim)
	}
}

// Len reports the current entry count
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictionVictims is the eviction policy as a pure function over a snapshot:
// keys of the oldest entries beyond the capacity limit, oldest first.
func evictionVictims(entries map[string]entry, max int) []string {
	if len(entries) <= max {
		return nil
	}

	type aged struct {
		key       string
		createdAt time.Time
	}
	all := make([]aged, 0, len(entries))
	for k, e := range entries {
		all = append(all, aged{key: k, createdAt: e.createdAt})
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].createdAt.Equal(all[j].createdAt) {
			return all[i].createdAt.Before(all[j].createdAt)
		}
		return all[i].key < all[j].key
	})

	victims := make([]string, 0, len(entries)-max)
	for _, a := range all[:len(entries)-max] {
		victims = append(victims, a.key)
	}
	return victims
}
