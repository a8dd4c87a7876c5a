package app

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"academy-quiz-service/internal/domain"
)

// Longest configurable session: 60 minutes.
const maxTimeLimitSeconds = 60 * 60

// SessionRegistry tracks the live session per user (in-memory, Redis, etc).
type SessionRegistry interface {
	Put(userID string, session *Session)
	Get(userID string) (*Session, bool)
	Delete(userID string)
}

// AccountStore is the external credential collaborator.
type AccountStore interface {
	Authenticate(ctx context.Context, username, password string) (domain.UserRecord, error)
	Register(ctx context.Context, username, email, password string) (domain.UserRecord, error)
}

// QuizService contains the quiz use cases: account access, quiz setup, and
// session lookup. Each user owns at most one live session.
type QuizService struct {
	accounts       AccountStore
	banks          BankRepository
	registry       SessionRegistry
	results        ResultsLog
	violationLimit int

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuizService(accounts AccountStore, banks BankRepository, registry SessionRegistry, results ResultsLog, violationLimit int) *QuizService {
	return &QuizService{
		accounts:       accounts,
		banks:          banks,
		registry:       registry,
		results:        results,
		violationLimit: violationLimit,
		rnd:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Login verifies credentials against the account store.
func (s *QuizService) Login(ctx context.Context, username, password string) (domain.UserRecord, error) {
	return s.accounts.Authenticate(ctx, username, password)
}

// Register creates a new account, surfacing domain.ErrUserExists on conflict.
func (s *QuizService) Register(ctx context.Context, username, email, password string) (domain.UserRecord, error) {
	return s.accounts.Register(ctx, username, email, password)
}

// StartQuiz selects a fresh question sequence for the settings and replaces
// any previous session the user had. A zero time limit is allowed and
// completes the session immediately; negative or over-long limits are
// rejected at setup.
func (s *QuizService) StartQuiz(ctx context.Context, userID string, settings domain.QuizSettings) (*Session, error) {
	if settings.TimeLimit < 0 || settings.TimeLimit > maxTimeLimitSeconds {
		return nil, domain.ErrInvalidTimeLimit
	}

	s.rndMu.Lock()
	questions, err := SelectQuestions(ctx, s.banks, settings.Department, settings.Difficulty, s.rnd)
	s.rndMu.Unlock()
	if err != nil {
		return nil, err
	}

	if old, ok := s.registry.Get(userID); ok {
		old.Abandon()
	}

	session := NewSession(newSessionID(), userID, questions, settings, s.results, s.violationLimit)
	s.registry.Put(userID, session)
	session.Start()
	return session, nil
}

// Retake restarts the user's latest quiz with the same question sequence and
// settings but reset progress. It does not reshuffle.
func (s *QuizService) Retake(ctx context.Context, userID string) (*Session, error) {
	old, ok := s.registry.Get(userID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	old.Abandon()

	session := NewSession(newSessionID(), userID, old.Questions(), old.Settings(), s.results, s.violationLimit)
	s.registry.Put(userID, session)
	session.Start()
	return session, nil
}

// Session returns the user's live session.
func (s *QuizService) Session(userID string) (*Session, error) {
	session, ok := s.registry.Get(userID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Abandon discards the user's session without scoring it, as when the user
// returns to setup.
func (s *QuizService) Abandon(userID string) {
	if session, ok := s.registry.Get(userID); ok {
		session.Abandon()
	}
	s.registry.Delete(userID)
}

func newSessionID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}
