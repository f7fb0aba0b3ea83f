package store

import (
	"encoding/base32"
	"sync"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/octodash/octodash/pkg/dashboard/model"
)

// SessionStore holds the server-side session records. Implementations must
// be safe for concurrent use from simultaneous requests.
type SessionStore interface {
	// Create issues a new session bound to the given identity
	Create(user *model.User) *model.Session
	// Get returns the live session for the id, nil if unknown or expired
	Get(id string) *model.Session
	// Destroy removes the session, reporting whether it existed
	Destroy(id string) bool
}

// Store is the in-memory SessionStore. Sessions do not survive a process
// restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	ttl      time.Duration
	now      func() time.Time
}

func New(ttl time.Duration) *Store {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock lets tests control session expiry.
func NewWithClock(ttl time.Duration, now func() time.Time) *Store {
	return &Store{
		sessions: map[string]*model.Session{},
		ttl:      ttl,
		now:      now,
	}
}

func (s *Store) Create(user *model.User) *model.Session {
	created := s.now()
	session := &model.Session{
		ID:        newSessionID(),
		CreatedAt: created,
		ExpiresAt: created.Add(s.ttl),
		User:      user,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

func (s *Store) Get(id string) *model.Session {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil
	}
	if s.now().After(session.ExpiresAt) {
		s.Destroy(id)
		return nil
	}
	return session
}

func (s *Store) Destroy(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func newSessionID() string {
	return base32.StdEncoding.EncodeToString(
		securecookie.GenerateRandomKey(32),
	)
}
