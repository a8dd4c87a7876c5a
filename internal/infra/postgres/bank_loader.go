package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"academy-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader loads question partitions stored as JSONB in Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadPartition(ctx context.Context, department, difficulty string) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx,
		`SELECT data FROM question_banks WHERE department=$1 AND difficulty=$2`,
		department, difficulty).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load partition: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal partition: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrContentNotFound
	}
	return questions, nil
}
