package memory

import (
	"context"
	"sync"

	"academy-quiz-service/internal/domain"
)

// ResultsLog is an append-only in-memory results sink.
type ResultsLog struct {
	mu      sync.Mutex
	records []ResultRecord
}

// ResultRecord pairs a result with the user who produced it.
type ResultRecord struct {
	UserID string
	Result domain.QuizResult
}

func NewResultsLog() *ResultsLog {
	return &ResultsLog{}
}

func (l *ResultsLog) Append(_ context.Context, userID string, result domain.QuizResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, ResultRecord{UserID: userID, Result: result})
	return nil
}

// Records returns a copy of everything appended so far.
func (l *ResultsLog) Records() []ResultRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ResultRecord, len(l.records))
	copy(out, l.records)
	return out
}
