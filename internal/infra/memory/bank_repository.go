package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"academy-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches one question partition from a backing store.
type BankLoader interface {
	LoadPartition(ctx context.Context, department, difficulty string) ([]domain.Question, error)
}

// BankRepository caches partitions with TTL to avoid repeated store hits.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedPartition
}

type cachedPartition struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewBankRepository(loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedPartition),
	}
}

func (r *BankRepository) GetPartition(ctx context.Context, department, difficulty string) ([]domain.Question, error) {
	key := department + ":" + difficulty
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.questions, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.questions, nil
		}
		r.mu.RUnlock()

		questions, err := r.loader.LoadPartition(ctx, department, difficulty)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[key] = cachedPartition{
			questions: questions,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticBankLoader serves partitions from an in-memory catalog (useful for
// tests and demo mode).
type StaticBankLoader struct {
	bank domain.Bank
}

func NewStaticBankLoader(bank domain.Bank) *StaticBankLoader {
	return &StaticBankLoader{bank: bank}
}

func (l *StaticBankLoader) LoadPartition(_ context.Context, department, difficulty string) ([]domain.Question, error) {
	partition := l.bank[department][difficulty]
	if len(partition) == 0 {
		return nil, domain.ErrContentNotFound
	}
	return partition, nil
}
