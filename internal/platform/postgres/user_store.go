package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/platform/logger"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// UserStore implements the store.UserStore interface using PostgreSQL.
type UserStore struct {
	db store.DBTX
}

// NewUserStore creates a new PostgreSQL implementation of store.UserStore.
// It accepts a database connection or transaction managed by the caller.
func NewUserStore(db store.DBTX) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &UserStore{db: db}
}

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx}
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO users (email, full_name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Email,
		user.FullName,
		user.HashedPassword,
		user.Role,
		user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getBy(ctx, "id = $1", id)
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getBy(ctx, "email = $1", email)
}

func (s *UserStore) getBy(ctx context.Context, where string, arg any) (*domain.User, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, email, full_name, password_hash, role, created_at, last_login_at
		FROM users
		WHERE ` + where

	var user domain.User
	var lastLogin sql.NullTime

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.HashedPassword,
		&user.Role,
		&user.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLoginAt = &t
	}

	return &user, nil
}

// RecordLogin implements store.UserStore.RecordLogin.
func (s *UserStore) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		log.Error("failed to record login", "error", err, "user_id", id)
		return fmt.Errorf("failed to record login: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrUserNotFound
	}

	return nil
}
