package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/youruser/cardgen/internal/generate"
)

type entry struct {
	s        *Session
	lastUsed time.Time
}

// Store keeps sessions in memory. Nothing outlives the process; sessions idle
// for longer than the TTL given to Run are dropped.
type Store struct {
	gen    generate.Generator
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewStore(gen generate.Generator, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{gen: gen, logger: logger, now: time.Now, sessions: make(map[string]*entry)}
}

// Create starts a session with the default card.
func (st *Store) Create() *Session {
	id := uuid.NewString()
	s := New(id, st.gen, st.logger)

	st.mu.Lock()
	st.sessions[id] = &entry{s: s, lastUsed: st.now()}
	st.mu.Unlock()
	return s
}

// Get returns the session and marks it as used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastUsed = st.now()
	return e.s, nil
}

// Delete drops a session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions not used since cutoff and returns how many went.
func (st *Store) Sweep(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, e := range st.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps sessions idle for longer than ttl until ctx is done. A
// non-positive ttl disables eviction.
func (st *Store) Run(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	interval := max(ttl/4, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(st.now().Add(-ttl)); n > 0 {
				st.logger.InfoContext(ctx, "evicted idle sessions", "count", n, "ttl", ttl)
			}
		}
	}
}
