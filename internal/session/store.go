// Package session keeps per-visitor component state and tears it down when
// the visitor goes idle.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Component is per-visitor state that must release its subscriptions and
// timers on teardown.
type Component interface {
	Close()
}

type entry[T Component] struct {
	value    T
	lastSeen time.Time
}

// Store maps session ids to components built on first use.
type Store[T Component] struct {
	newFn  func(id string) T
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*entry[T]
	closed   bool
}

// NewStore returns a store that builds components with newFn and expires
// them after ttl without use.
func NewStore[T Component](newFn func(id string) T, ttl time.Duration, logger *zap.Logger) *Store[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store[T]{
		newFn:    newFn,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		sessions: make(map[string]*entry[T]),
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the component for id, building it if needed. ok is false once
// the store is closed.
func (s *Store[T]) Get(id string) (value T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return value, false
	}
	e, found := s.sessions[id]
	if !found {
		e = &entry[T]{value: s.newFn(id)}
		s.sessions[id] = e
		s.logger.Debug("Session started", zap.String("session", id))
	}
	e.lastSeen = s.now()
	return e.value, true
}

// Len returns the number of live sessions.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and drops sessions idle for longer than the ttl.
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	cutoff := s.now().Add(-s.ttl)
	var expired []T
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.value)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, v := range expired {
		v.Close()
	}
	if len(expired) > 0 {
		s.logger.Debug("Expired idle sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps on every interval until ctx is done, then closes the store.
func (s *Store[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer s.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Close tears down every session. Later Get calls fail.
func (s *Store[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	sessions := s.sessions
	s.sessions = make(map[string]*entry[T])
	s.mu.Unlock()

	for _, e := range sessions {
		e.value.Close()
	}
}
