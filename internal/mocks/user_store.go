package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	CreateFn      func(ctx context.Context, user *domain.User) error
	GetByIDFn     func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn  func(ctx context.Context, email string) (*domain.User, error)
	RecordLoginFn func(ctx context.Context, id int64, at time.Time) error
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	if m.RecordLoginFn != nil {
		return m.RecordLoginFn(ctx, id, at)
	}
	return nil
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
