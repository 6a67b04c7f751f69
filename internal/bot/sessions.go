package bot

import (
	"sync"

	"github.com/yescribe/transcriptor/domain/entities"
)

// Sessions is the in-memory registry of per-chat sessions. Sessions are
// created on demand and never persisted.
type Sessions struct {
	mu     sync.Mutex
	byChat map[int64]*entities.Session
}

// NewSessions creates an empty registry
func NewSessions() *Sessions {
	return &Sessions{byChat: make(map[int64]*entities.Session)}
}

// Get returns the session for a chat, creating it on first use
func (s *Sessions) Get(chatID int64) *entities.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.byChat[chatID]
	if !ok {
		session = entities.NewSession(chatID)
		s.byChat[chatID] = session
	}
	return session
}
