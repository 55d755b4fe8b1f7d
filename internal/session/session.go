// Package session keys per-browser state by an opaque cookie. State lives
// only in memory and is dropped after an idle period.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "siraj_admin_session"

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

type Store[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	newFn   func() T
	idle    time.Duration
	secure  bool
	now     func() time.Time
}

// New returns a store that builds fresh state with newFn. secure marks the
// cookie HTTPS-only.
func New[T any](newFn func() T, idle time.Duration, secure bool) *Store[T] {
	return &Store[T]{
		entries: make(map[string]*entry[T]),
		newFn:   newFn,
		idle:    idle,
		secure:  secure,
		now:     time.Now,
	}
}

// Load returns the state for the request's session, starting a new one
// (and setting the cookie) when there is none or it expired.
func (s *Store[T]) Load(w http.ResponseWriter, r *http.Request) (id string, value T) {
	if c, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			s.mu.Lock()
			e, ok := s.entries[c.Value]
			if ok && s.now().Sub(e.lastSeen) < s.idle {
				e.lastSeen = s.now()
				s.mu.Unlock()
				return c.Value, e.value
			}
			s.mu.Unlock()
		}
	}

	id = uuid.NewString()
	value = s.newFn()
	s.mu.Lock()
	s.entries[id] = &entry[T]{value: value, lastSeen: s.now()}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, value
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run sweeps idle sessions until ctx is done.
func (s *Store[T]) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep drops sessions idle for longer than the store's idle period and
// reports how many went.
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	now := s.now()
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) >= s.idle {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

type ctxKey struct{}

// With stores the session id on ctx for middleware further down.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
