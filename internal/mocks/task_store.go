package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDFn        func(ctx context.Context, id int64) (*domain.Task, error)
	GetWithNamesFn   func(ctx context.Context, id int64) (*store.TaskWithNames, error)
	ListByProjectFn  func(ctx context.Context, projectID int64) ([]*store.TaskWithNames, error)
	QueryByProjectFn func(ctx context.Context, projectID int64, params store.TaskQueryParams) ([]*store.TaskWithNames, int, error)
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	DeleteFn         func(ctx context.Context, id int64) error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	task.ID = 1
	return nil
}

func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskStore) GetWithNames(ctx context.Context, id int64) (*store.TaskWithNames, error) {
	if m.GetWithNamesFn != nil {
		return m.GetWithNamesFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskStore) ListByProject(ctx context.Context, projectID int64) ([]*store.TaskWithNames, error) {
	if m.ListByProjectFn != nil {
		return m.ListByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *MockTaskStore) QueryByProject(
	ctx context.Context,
	projectID int64,
	params store.TaskQueryParams,
) ([]*store.TaskWithNames, int, error) {
	if m.QueryByProjectFn != nil {
		return m.QueryByProjectFn(ctx, projectID, params)
	}
	return nil, 0, nil
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
