package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/metrics"
)

var (
	errSessionNotFound = errors.New("session not found")
	errTooManySessions = errors.New("too many sessions")
)

// session is one step-through search. mu guards the stepper.
type session struct {
	id string

	mu       sync.Mutex
	stepper  *gridastar.Stepper
	lastUsed time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session), now: time.Now}
}

// add evicts idle sessions, then stores s under a fresh ID unless the store
// already holds max sessions.
func (st *sessionStore) add(s *session, max int, ttl time.Duration) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.evictLocked(ttl)
	if len(st.sessions) >= max {
		return errTooManySessions
	}
	s.id = uuid.NewString()
	s.lastUsed = st.now()
	st.sessions[s.id] = s
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	return nil
}

func (st *sessionStore) get(id string, ttl time.Duration) (*session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.evictLocked(ttl)
	s, ok := st.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	s.lastUsed = st.now()
	return s, nil
}

func (st *sessionStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	return ok
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *sessionStore) evictLocked(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	cutoff := st.now().Add(-ttl)
	for id, s := range st.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
}
