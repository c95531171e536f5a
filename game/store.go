package game

import (
	"log"
	"sort"
	"sync"
	"time"
)

// Store keeps live games in process memory. No persistence: a restart simply
// forces players to start over. Eviction runs synchronously on each insert,
// oldest session first, once the capacity is exceeded.
type Store struct {
	mu    sync.Mutex
	games map[string]*Game
	max   int
	now   func() time.Time
}

// NewStore creates a store holding at most max live games. The clock is
// injected for testability.
func NewStore(max int, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		games: make(map[string]*Game),
		max:   max,
		now:   now,
	}
}

// Clock returns the store's time source, used when seeding new games
func (s *Store) Clock() time.Time {
	return s.now()
}

// Put inserts a game and evicts the oldest sessions beyond capacity
func (s *Store) Put(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[g.ID] = g
	for _, id := range evictionVictims(s.games, s.max) {
		log.Printf("[GameStore] Evicting oldest game %s", id)
		delete(s.games, id)
	}
}

// Get returns the live game with the given id
func (s *Store) Get(id string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	return g, ok
}

// Len reports the number of live games
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// evictionVictims is the eviction policy as a pure function over a snapshot:
// ids of the oldest games beyond the capacity limit, oldest first.
func evictionVictims(games map[string]*Game, max int) []string {
	if len(games) <= max {
		return nil
	}

	type entry struct {
		id        string
		createdAt time.Time
	}
	entries := make([]entry, 0, len(games))
	for id, g := range games {
		entries = append(entries, entry{id: id, createdAt: g.CreatedAt})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].createdAt.Equal(entries[j].createdAt) {
			return entries[i].createdAt.Before(entries[j].createdAt)
		}
		return entries[i].id < entries[j].id
	})

	victims := make([]string, 0, len(games)-max)
	for _, e := range entries[:len(games)-max] {
		victims = append(victims, e.id)
	}
	return victims
}
