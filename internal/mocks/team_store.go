package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// MockTeamStore implements store.TeamStore for testing.
type MockTeamStore struct {
	CreateFn      func(ctx context.Context, team *domain.Team) error
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Team, error)
	ListForUserFn func(ctx context.Context, userID int64) ([]*store.TeamWithMemberCount, error)
	UpdateFn      func(ctx context.Context, team *domain.Team) error
	DeleteFn      func(ctx context.Context, id int64) error
}

var _ store.TeamStore = (*MockTeamStore)(nil)

func (m *MockTeamStore) Create(ctx context.Context, team *domain.Team) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, team)
	}
	team.ID = 1
	return nil
}

func (m *MockTeamStore) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrTeamNotFound
}

func (m *MockTeamStore) ListForUser(ctx context.Context, userID int64) ([]*store.TeamWithMemberCount, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockTeamStore) Update(ctx context.Context, team *domain.Team) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, team)
	}
	return nil
}

func (m *MockTeamStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockTeamStore) WithTx(tx *sql.Tx) store.TeamStore {
	return m
}
