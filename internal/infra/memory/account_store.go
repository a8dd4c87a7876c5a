package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"academy-quiz-service/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AccountStore keeps credentials in memory. Passwords are bcrypt-hashed the
// same way the Postgres store does, so tests exercise the real comparison
// path.
type AccountStore struct {
	cost int

	mu    sync.RWMutex
	users map[string]accountRecord // keyed by username
}

type accountRecord struct {
	id           string
	username     string
	email        string
	passwordHash []byte
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		cost:  bcrypt.DefaultCost,
		users: make(map[string]accountRecord),
	}
}

func (s *AccountStore) Authenticate(_ context.Context, username, password string) (domain.UserRecord, error) {
	s.mu.RLock()
	record, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return domain.UserRecord{}, domain.ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword(record.passwordHash, []byte(password)); err != nil {
		return domain.UserRecord{}, domain.ErrAuthFailed
	}
	return domain.UserRecord{ID: record.id, Username: record.username, Email: record.email}, nil
}

func (s *AccountStore) Register(_ context.Context, username, email, password string) (domain.UserRecord, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.UserRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return domain.UserRecord{}, domain.ErrUserExists
	}
	for _, record := range s.users {
		if record.email == email {
			return domain.UserRecord{}, domain.ErrUserExists
		}
	}

	record := accountRecord{
		id:           strconv.FormatInt(time.Now().UnixNano(), 36),
		username:     username,
		email:        email,
		passwordHash: hash,
	}
	s.users[username] = record
	return domain.UserRecord{ID: record.id, Username: record.username, Email: record.email}, nil
}
