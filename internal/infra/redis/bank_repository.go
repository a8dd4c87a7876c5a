package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"academy-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches one question partition from a backing store.
type BankLoader interface {
	LoadPartition(ctx context.Context, department, difficulty string) ([]domain.Question, error)
}

// BankRepository caches question partitions in Redis and falls back to a
// loader on cache miss. A partition is stored as JSON under
// bank:{department}:{difficulty}.
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetPartition(ctx context.Context, department, difficulty string) ([]domain.Question, error) {
	key := r.partitionKey(department, difficulty)

	raw, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		if questions, ok := decodePartition(raw); ok {
			return questions, nil
		}
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := r.client.Get(ctx, key).Bytes()
		if err == nil {
			if questions, ok := decodePartition(raw); ok {
				return questions, nil
			}
		}

		questions, err := r.loader.LoadPartition(ctx, department, difficulty)
		if err != nil {
			return nil, err
		}

		if encoded, err := json.Marshal(questions); err == nil {
			_ = r.client.Set(ctx, key, encoded, r.ttlWithJitter()).Err()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *BankRepository) partitionKey(department, difficulty string) string {
	return "bank:" + department + ":" + difficulty
}

func decodePartition(raw []byte) ([]domain.Question, bool) {
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil || len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
