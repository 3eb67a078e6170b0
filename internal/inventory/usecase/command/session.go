package command

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// DefaultSessionTTL bounds how long an upload waits for review.
const DefaultSessionTTL = 30 * time.Minute

type sessionEntry[T any] struct {
	value   T
	expires time.Time
}

// SessionStore keeps uploads between their review steps. Expired entries
// are dropped lazily.
type SessionStore[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   domain.Clock
	entries map[string]sessionEntry[T]
}

// NewSessionStore creates a store whose entries live for ttl.
func NewSessionStore[T any](ttl time.Duration, clock domain.Clock) *SessionStore[T] {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore[T]{ttl: ttl, clock: clock, entries: make(map[string]sessionEntry[T])}
}

// Put stores v under a new id.
func (s *SessionStore[T]) Put(v T) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict()
	s.entries[id] = sessionEntry[T]{value: v, expires: s.clock.Now().Add(s.ttl)}
	return id
}

// Get returns the value stored under id.
func (s *SessionStore[T]) Get(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict()
	e, ok := s.entries[id]
	if !ok {
		var zero T
		return zero, domain.ErrSessionNotFound
	}
	return e.value, nil
}

// Take removes and returns the value under id. Only one caller can take a
// given session.
func (s *SessionStore[T]) Take(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict()
	e, ok := s.entries[id]
	if !ok {
		var zero T
		return zero, domain.ErrSessionNotFound
	}
	delete(s.entries, id)
	return e.value, nil
}

// Restore puts a taken value back under its id with a fresh lifetime.
func (s *SessionStore[T]) Restore(id string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = sessionEntry[T]{value: v, expires: s.clock.Now().Add(s.ttl)}
}

func (s *SessionStore[T]) evict() {
	now := s.clock.Now()
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
		}
	}
}
