package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// MockProjectStore implements store.ProjectStore for testing.
type MockProjectStore struct {
	CreateFn     func(ctx context.Context, project *domain.Project) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.Project, error)
	ListByTeamFn func(ctx context.Context, teamID int64) ([]*store.ProjectWithTeam, error)
	UpdateFn     func(ctx context.Context, project *domain.Project) error
	DeleteFn     func(ctx context.Context, id int64) error
}

var _ store.ProjectStore = (*MockProjectStore)(nil)

func (m *MockProjectStore) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, project)
	}
	project.ID = 1
	return nil
}

func (m *MockProjectStore) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrProjectNotFound
}

func (m *MockProjectStore) ListByTeam(ctx context.Context, teamID int64) ([]*store.ProjectWithTeam, error) {
	if m.ListByTeamFn != nil {
		return m.ListByTeamFn(ctx, teamID)
	}
	return nil, nil
}

func (m *MockProjectStore) Update(ctx context.Context, project *domain.Project) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, project)
	}
	return nil
}

func (m *MockProjectStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return m
}
