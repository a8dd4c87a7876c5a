package memory

import (
	"context"
	"errors"
	"testing"

	"academy-quiz-service/internal/domain"
)

func TestAccountStoreRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()

	user, err := store.Register(ctx, "alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || user.Username != "alice" || user.Email != "alice@example.com" {
		t.Fatalf("unexpected record %+v", user)
	}

	got, err := store.Authenticate(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected same user, got %+v", got)
	}

	if _, err := store.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("expected auth failure, got %v", err)
	}
	if _, err := store.Authenticate(ctx, "bob", "s3cret"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("expected auth failure for unknown user, got %v", err)
	}
}

func TestAccountStoreConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()

	if _, err := store.Register(ctx, "alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := store.Register(ctx, "alice", "new@example.com", "pw"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected username conflict, got %v", err)
	}
	if _, err := store.Register(ctx, "bob", "alice@example.com", "pw"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected email conflict, got %v", err)
	}

	// Failed registration must not create a partial account.
	if _, err := store.Authenticate(ctx, "bob", "pw"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("expected no account for bob, got %v", err)
	}
}
