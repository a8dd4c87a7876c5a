package app

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"academy-quiz-service/internal/domain"
)

// ResultsLog is the append-only sink for scored sessions.
type ResultsLog interface {
	Append(ctx context.Context, userID string, result domain.QuizResult) error
}

// Snapshot is the subscriber-facing view of a session.
type Snapshot struct {
	SessionID      string             `json:"sessionId"`
	CurrentIndex   int                `json:"currentIndex"`
	TotalQuestions int                `json:"totalQuestions"`
	TimeRemaining  int                `json:"timeRemaining"`
	Answered       []int              `json:"answered"`
	Active         bool               `json:"active"`
	Result         *domain.QuizResult `json:"result,omitempty"`
}

// Session is one timed quiz attempt by a single user over a fixed question
// sequence. All mutation happens under one mutex: user operations, clock
// ticks, and security callbacks are serialized and processed to completion.
// Once the session goes inactive no further mutation is possible;
// finalization is idempotent and emits exactly one QuizResult.
type Session struct {
	id       string
	userID   string
	settings domain.QuizSettings

	mu          sync.Mutex
	questions   []domain.Question
	current     int
	tentative   int // -1 when no in-progress selection
	answers     map[int]int
	answered    map[int]struct{}
	remaining   int
	active      bool
	finalized   bool
	result      domain.QuizResult
	subscribers map[chan Snapshot]struct{}

	clock   *Clock
	monitor *SecurityMonitor
	results ResultsLog
	now     func() time.Time
}

// NewSession builds a session over questions. Call Start to arm the clock and
// security monitor. violationLimit > 0 makes repeated violations terminate
// the session; zero keeps the monitor warn-and-block only.
func NewSession(id, userID string, questions []domain.Question, settings domain.QuizSettings, results ResultsLog, violationLimit int) *Session {
	return newSession(id, userID, questions, settings, results, violationLimit, time.Second, time.Now)
}

// NewSessionWithClock is test-only for deterministic timing.
func NewSessionWithClock(id, userID string, questions []domain.Question, settings domain.QuizSettings, results ResultsLog, violationLimit int, tick time.Duration, now func() time.Time) *Session {
	return newSession(id, userID, questions, settings, results, violationLimit, tick, now)
}

func newSession(id, userID string, questions []domain.Question, settings domain.QuizSettings, results ResultsLog, violationLimit int, tick time.Duration, now func() time.Time) *Session {
	s := &Session{
		id:          id,
		userID:      userID,
		settings:    settings,
		questions:   questions,
		tentative:   -1,
		answers:     make(map[int]int),
		answered:    make(map[int]struct{}),
		remaining:   settings.TimeLimit,
		active:      true,
		subscribers: make(map[chan Snapshot]struct{}),
		clock:       newClock(tick),
		results:     results,
		now:         now,
	}
	s.monitor = NewSecurityMonitor(violationLimit, s.TerminateBySecurityViolation)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Settings returns the immutable session settings.
func (s *Session) Settings() domain.QuizSettings { return s.settings }

// Questions returns the fixed question sequence.
func (s *Session) Questions() []domain.Question { return s.questions }

// Monitor exposes the session's security monitor.
func (s *Session) Monitor() *SecurityMonitor { return s.monitor }

// Start attaches the security monitor and starts the countdown. A
// non-positive time limit completes the session before Start returns.
func (s *Session) Start() {
	s.monitor.attach()
	s.clock.Start(s.settings.TimeLimit, s.onTick, s.ExpireByTimeout)
}

// HandleInput forwards a client input event to the security monitor.
func (s *Session) HandleInput(event InputEvent) Verdict {
	return s.monitor.HandleInput(event)
}

// SelectOption records a tentative choice for the current question. The
// answer is not committed until the user advances or navigates away.
func (s *Session) SelectOption(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return domain.ErrSessionInactive
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return domain.ErrOptionOutOfRange
	}
	s.tentative = option
	return nil
}

// NavigateTo jumps to any question by index, committing the in-progress
// selection for the current question first. Navigation is random access so a
// progress indicator can address any question directly.
func (s *Session) NavigateTo(question int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return domain.ErrSessionInactive
	}
	if question < 0 || question >= len(s.questions) {
		return domain.ErrQuestionOutOfRange
	}
	s.commitLocked()
	s.current = question
	s.restoreTentativeLocked()
	s.broadcastLocked()
	return nil
}

// Advance commits the current answer and moves to the next question, or
// finalizes when the current question is the last. With neither a tentative
// nor a previously committed answer it fails and leaves state unchanged.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return domain.ErrSessionInactive
	}
	if s.tentative < 0 {
		committed, ok := s.answers[s.current]
		if !ok {
			return domain.ErrNoSelection
		}
		s.tentative = committed
	}
	s.commitLocked()
	if s.current == len(s.questions)-1 {
		s.finalizeLocked()
		return nil
	}
	s.current++
	s.restoreTentativeLocked()
	s.broadcastLocked()
	return nil
}

// ExpireByTimeout forces completion when the countdown reaches zero. The
// in-progress tentative selection, if any, is committed first. A stale expiry
// on a finished session is a no-op.
func (s *Session) ExpireByTimeout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.commitLocked()
	s.finalizeLocked()
}

// TerminateBySecurityViolation forces completion through the same path as
// timeout, scoring whatever has been committed so far.
func (s *Session) TerminateBySecurityViolation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.commitLocked()
	s.finalizeLocked()
}

// Abandon stops the session without emitting a result, for when the user
// returns to setup.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.active = false
	s.finalized = true
	s.clock.Stop()
	s.monitor.detach()
	s.broadcastLocked()
}

// Result returns the scored outcome once the session has completed.
func (s *Session) Result() (domain.QuizResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active || s.result.TotalQuestions == 0 {
		return domain.QuizResult{}, false
	}
	return s.result, true
}

// Subscribe returns a channel of state snapshots, starting with the current
// one. The caller must invoke cancel to avoid leaks.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) onTick(remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.remaining = remaining
	s.broadcastLocked()
}

// commitLocked moves the tentative selection, if any, into the committed
// answers and the answered set.
func (s *Session) commitLocked() {
	if s.tentative < 0 {
		return
	}
	s.answers[s.current] = s.tentative
	s.answered[s.current] = struct{}{}
	s.tentative = -1
}

// restoreTentativeLocked surfaces a previously committed answer for the
// question the user just landed on.
func (s *Session) restoreTentativeLocked() {
	if committed, ok := s.answers[s.current]; ok {
		s.tentative = committed
	} else {
		s.tentative = -1
	}
}

// finalizeLocked computes the score from the frozen answers, emits the result
// once, and releases the clock and monitor. Idempotent.
func (s *Session) finalizeLocked() {
	if s.finalized {
		return
	}
	s.finalized = true
	s.active = false
	s.clock.Stop()
	s.monitor.detach()

	total := len(s.questions)
	answers := make([]int, total)
	correct := 0
	for i := range answers {
		chosen, ok := s.answers[i]
		if !ok {
			answers[i] = -1
			continue
		}
		answers[i] = chosen
		if chosen == s.questions[i].Correct {
			correct++
		}
	}

	s.result = domain.QuizResult{
		Score:          int(math.Round(float64(correct) / float64(total) * 100)),
		CorrectAnswers: correct,
		TotalQuestions: total,
		Answers:        answers,
		Date:           s.now(),
		Department:     s.settings.Department,
		Difficulty:     s.settings.Difficulty,
	}
	if s.results != nil {
		_ = s.results.Append(context.Background(), s.userID, s.result)
	}
	s.broadcastLocked()
}

func (s *Session) broadcastLocked() {
	snapshot := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Drop the oldest update so a slow consumer never blocks the session.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

func (s *Session) snapshotLocked() Snapshot {
	answered := make([]int, 0, len(s.answered))
	for i := range s.answered {
		answered = append(answered, i)
	}
	sort.Ints(answered)

	snapshot := Snapshot{
		SessionID:      s.id,
		CurrentIndex:   s.current,
		TotalQuestions: len(s.questions),
		TimeRemaining:  s.remaining,
		Answered:       answered,
		Active:         s.active,
	}
	if !s.active && s.result.TotalQuestions > 0 {
		result := s.result
		snapshot.Result = &result
	}
	return snapshot
}
