package app

import (
	"context"
	"math/rand"

	"academy-quiz-service/internal/domain"
)

// MaxSessionQuestions caps how many questions one session draws from a partition.
const MaxSessionQuestions = 50

// BankRepository resolves the question partition for one (department,
// difficulty) pair, from cache or a backing store.
type BankRepository interface {
	GetPartition(ctx context.Context, department, difficulty string) ([]domain.Question, error)
}

// SelectQuestions picks the question sequence for one session: a copy of the
// partition, Fisher-Yates shuffled, truncated to MaxSessionQuestions. The
// output never duplicates an ID because the partition is drawn from exactly
// once. An absent or empty partition is a content error.
func SelectQuestions(ctx context.Context, banks BankRepository, department, difficulty string, rnd *rand.Rand) ([]domain.Question, error) {
	partition, err := banks.GetPartition(ctx, department, difficulty)
	if err != nil {
		return nil, err
	}
	if len(partition) == 0 {
		return nil, domain.ErrContentNotFound
	}

	picked := make([]domain.Question, len(partition))
	copy(picked, partition)
	for i := len(picked) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		picked[i], picked[j] = picked[j], picked[i]
	}

	if len(picked) > MaxSessionQuestions {
		picked = picked[:MaxSessionQuestions]
	}
	return picked, nil
}
