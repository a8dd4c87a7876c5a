package redis

import (
	"testing"
	"time"

	"academy-quiz-service/internal/app"
	"academy-quiz-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSessionRegistrySetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	registry := NewSessionRegistry(client, time.Minute)

	questions := []domain.Question{{ID: 1, Options: []string{"a", "b"}}}
	settings := domain.QuizSettings{Department: "web", Difficulty: "easy", TimeLimit: 600}
	session := app.NewSession("s1", "u1", questions, settings, nil, 0)

	registry.Put("u1", session)
	if !mr.Exists("quiz:session:u1") {
		t.Fatalf("expected redis liveness key to be set")
	}
	if found, ok := registry.Get("u1"); !ok || found.ID() != "s1" {
		t.Fatalf("expected stored session, ok=%v", ok)
	}

	registry.Delete("u1")
	if mr.Exists("quiz:session:u1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := registry.Get("u1"); ok {
		t.Fatalf("expected session removed")
	}
}
