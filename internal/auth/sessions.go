package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"scheduleboard/server/internal/models"
)

// SessionStore keeps login sessions in memory for the process lifetime
type SessionStore struct {
	sessions map[string]*models.Session
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

// NewSessionStore creates a store whose sessions expire after ttl
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session for username and returns it
func (s *SessionStore) Create(username string) *models.Session {
	now := s.now()
	session := &models.Session{
		Token:     uuid.New().String(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return session
}

// Get returns the live session for token. Expired sessions are dropped.
func (s *SessionStore) Get(token string) (*models.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if session.Expired(s.now()) {
		s.Delete(token)
		return nil, false
	}
	return session, true
}

// Delete ends the session for token
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len returns the number of stored sessions, expired ones included
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
