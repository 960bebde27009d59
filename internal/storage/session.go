package storage

import (
	"sync"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
)

// SessionStorage provides in-memory storage for chat sessions by session ID.
// Sessions live as long as the process.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*entities.Session),
	}
}

// Store saves a session under its ID.
func (s *SessionStorage) Store(session *entities.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// Get retrieves the session with the given ID.
func (s *SessionStorage) Get(sessionID int64) (*entities.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// Delete removes the session with the given ID.
func (s *SessionStorage) Delete(sessionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of live sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
