package redis

import (
	"context"
	"sync"
	"time"

	"academy-quiz-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionRegistry is a Redis-aware implementation of app.SessionRegistry.
// Notes:
//   - Sessions themselves stay in a local map; the engine's clock and
//     subscriber channels are process-local.
//   - Redis marks session liveness per user (and could be extended to share
//     snapshots or route cross-instance pub/sub).
type SessionRegistry struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (r *SessionRegistry) Put(userID string, session *app.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = session
	// best-effort liveness marker
	_ = r.client.Set(context.Background(), r.key(userID), session.ID(), r.ttl).Err()
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
	_ = r.client.Del(context.Background(), r.key(userID)).Err()
}

func (r *SessionRegistry) key(userID string) string {
	return "quiz:session:" + userID
}
