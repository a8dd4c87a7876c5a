package memory

import (
	"sync"

	"academy-quiz-service/internal/app"
)

// SessionRegistry is an in-memory implementation of app.SessionRegistry,
// keyed by user ID.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*app.Session),
	}
}

func (r *SessionRegistry) Put(userID string, session *app.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = session
}

func (r *SessionRegistry) Get(userID string) (*app.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[userID]
	return session, ok
}

func (r *SessionRegistry) Delete(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}
