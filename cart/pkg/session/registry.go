// Package session owns one cart store per browsing session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/cart/pkg/store"
	"github.com/Alturino/nayarn/internal/log"
)

type entry struct {
	store    *store.Store
	lastSeen time.Time
}

// Registry maps session ids to stores. Nothing outlives the process.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{sessions: map[string]*entry{}, ttl: ttl, now: now}
}

func NewSessionID() string {
	return uuid.NewString()
}

// Get returns the store for id, creating it when the session is new or
// expired, and marks the session as seen.
func (r *Registry) Get(id string) *store.Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.sessions[id]
	if !ok || r.expired(e, now) {
		e = &entry{store: store.New()}
		r.sessions[id] = e
	}
	e.lastSeen = now
	return e.store
}

// Lookup returns the store for id without creating one.
func (r *Registry) Lookup(id string) (*store.Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.sessions[id]
	if !ok || r.expired(e, now) {
		return nil, false
	}
	e.lastSeen = now
	return e.store, true
}

// End drops the session and its cart.
func (r *Registry) End(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the ttl and returns how many.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.lastSeen) > r.ttl
}

// StartSweeper sweeps every interval until c is done.
func (r *Registry) StartSweeper(c context.Context, interval time.Duration, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Registry StartSweeper").
		Str(log.KeyProcess, "sweeping cart sessions").
		Logger()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().Msgf("sweeping cart sessions every %s", interval)
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopped sweeping cart sessions")
			return
		case <-ticker.C:
			if removed := r.Sweep(); removed > 0 {
				logger.Info().Int("removed", removed).Int("remaining", r.Len()).Msg("swept cart sessions")
			}
		}
	}
}
