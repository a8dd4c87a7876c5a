package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"academy-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResultsLog appends scored sessions to the quiz_results table.
type ResultsLog struct {
	pool *pgxpool.Pool
}

func NewResultsLog(pool *pgxpool.Pool) *ResultsLog {
	return &ResultsLog{pool: pool}
}

func (l *ResultsLog) Append(ctx context.Context, userID string, result domain.QuizResult) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO quiz_results (user_id, score, correct_answers, total_questions, answers, department, difficulty, taken_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, result.Score, result.CorrectAnswers, result.TotalQuestions,
		answers, result.Department, result.Difficulty, result.Date)
	if err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}
