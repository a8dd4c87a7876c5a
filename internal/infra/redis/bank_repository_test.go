package redis

import (
	"context"
	"testing"
	"time"

	"academy-quiz-service/internal/domain"
	"academy-quiz-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		BankLoader: memory.NewStaticBankLoader(sampleBank()),
	}
	repo := NewBankRepository(client, loader, time.Minute)

	questions, err := repo.GetPartition(context.Background(), "web", "easy")
	if err != nil {
		t.Fatalf("get partition: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != 1 {
		t.Fatalf("unexpected partition %+v", questions)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("bank:web:easy") {
		t.Fatalf("expected partition cached in redis")
	}

	// Second call should hit the cache, loader not incremented.
	if _, err := repo.GetPartition(context.Background(), "web", "easy"); err != nil {
		t.Fatalf("get partition 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestBankRepositoryPropagatesContentError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewBankRepository(newClient(mr), memory.NewStaticBankLoader(sampleBank()), time.Minute)

	if _, err := repo.GetPartition(context.Background(), "web", "impossible"); err != domain.ErrContentNotFound {
		t.Fatalf("expected content error, got %v", err)
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadPartition(ctx context.Context, department, difficulty string) ([]domain.Question, error) {
	l.calls++
	return l.BankLoader.LoadPartition(ctx, department, difficulty)
}

func sampleBank() domain.Bank {
	return domain.Bank{
		"web": {
			"easy": {
				{ID: 1, Prompt: "What is 2 + 2?", Options: []string{"3", "4"}, Correct: 1, Explanation: "Basic arithmetic."},
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
