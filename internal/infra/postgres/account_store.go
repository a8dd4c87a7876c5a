package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"academy-quiz-service/internal/domain"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// AccountStore keeps user credentials in Postgres via bun. Passwords are
// stored bcrypt-hashed, never in cleartext.
type AccountStore struct {
	db *bun.DB
}

type userRow struct {
	bun.BaseModel `bun:"table:users"`

	ID           string    `bun:"id,pk"`
	Username     string    `bun:"username"`
	Email        string    `bun:"email"`
	PasswordHash string    `bun:"password_hash"`
	CreatedAt    time.Time `bun:"created_at,default:now()"`
}

func NewAccountStore(db *bun.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Authenticate(ctx context.Context, username, password string) (domain.UserRecord, error) {
	var row userRow
	err := s.db.NewSelect().Model(&row).Where("username = ?", username).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserRecord{}, domain.ErrAuthFailed
	}
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return domain.UserRecord{}, domain.ErrAuthFailed
	}
	return domain.UserRecord{ID: row.ID, Username: row.Username, Email: row.Email}, nil
}

func (s *AccountStore) Register(ctx context.Context, username, email, password string) (domain.UserRecord, error) {
	exists, err := s.db.NewSelect().Model((*userRow)(nil)).
		Where("username = ? OR email = ?", username, email).
		Exists(ctx)
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("check user: %w", err)
	}
	if exists {
		return domain.UserRecord{}, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.UserRecord{}, err
	}

	row := userRow{
		ID:           strconv.FormatInt(time.Now().UnixNano(), 36),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return domain.UserRecord{}, fmt.Errorf("insert user: %w", err)
	}
	return domain.UserRecord{ID: row.ID, Username: row.Username, Email: row.Email}, nil
}
