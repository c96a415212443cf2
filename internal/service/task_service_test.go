package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/mocks"
	"github.com/phrazzld/teamwork-api/internal/store"
)

func existingProject(id, teamID int64) *mocks.MockProjectStore {
	return &mocks.MockProjectStore{
		GetByIDFn: func(ctx context.Context, projectID int64) (*domain.Project, error) {
			if projectID != id {
				return nil, store.ErrProjectNotFound
			}
			return &domain.Project{ID: id, Name: "API rewrite", TeamID: teamID}, nil
		},
	}
}

func taskFixture(id int64) *domain.Task {
	return &domain.Task{
		ID:        id,
		Title:     "Write report",
		Status:    domain.TaskStatusTodo,
		Priority:  domain.TaskPriorityMedium,
		ProjectID: 20,
		CreatedAt: time.Now().UTC(),
	}
}

func tasksWith(task *domain.Task) *mocks.MockTaskStore {
	return &mocks.MockTaskStore{
		GetByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
			if id != task.ID {
				return nil, store.ErrTaskNotFound
			}
			return task, nil
		},
		GetWithNamesFn: func(ctx context.Context, id int64) (*store.TaskWithNames, error) {
			if id != task.ID {
				return nil, store.ErrTaskNotFound
			}
			return &store.TaskWithNames{Task: *task, ProjectName: "API rewrite"}, nil
		},
	}
}

func TestCreateTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	roles := map[int64]domain.Role{1: domain.RoleOwner, 3: domain.RoleMember}

	t.Run("unknown project is not found before authorization", func(t *testing.T) {
		t.Parallel()
		svc := NewTaskService(tasksWith(taskFixture(100)), existingProject(20, 10), mocks.RoleMap(nil), nil)

		_, err := svc.CreateTask(ctx, 999, 1, "Write report", nil, domain.TaskPriorityLow, nil, nil)
		assert.ErrorIs(t, err, store.ErrProjectNotFound)
	})

	t.Run("non-member cannot create", func(t *testing.T) {
		t.Parallel()
		svc := NewTaskService(tasksWith(taskFixture(100)), existingProject(20, 10), mocks.RoleMap(roles), nil)

		_, err := svc.CreateTask(ctx, 20, 99, "Write report", nil, domain.TaskPriorityLow, nil, nil)
		assert.ErrorIs(t, err, ErrNotTeamMember)
	})

	t.Run("assignee must belong to the team", func(t *testing.T) {
		t.Parallel()
		svc := NewTaskService(tasksWith(taskFixture(100)), existingProject(20, 10), mocks.RoleMap(roles), nil)

		outsider := int64(99)
		_, err := svc.CreateTask(ctx, 20, 1, "Write report", nil, domain.TaskPriorityLow, nil, &outsider)
		assert.ErrorIs(t, err, ErrAssigneeNotMember)
	})

	t.Run("member creates with a member assignee", func(t *testing.T) {
		t.Parallel()
		tasks := tasksWith(taskFixture(100))
		var created *domain.Task
		tasks.CreateFn = func(ctx context.Context, task *domain.Task) error {
			task.ID = 100
			created = task
			return nil
		}
		svc := NewTaskService(tasks, existingProject(20, 10), mocks.RoleMap(roles), nil)

		assignee := int64(3)
		view, err := svc.CreateTask(ctx, 20, 1, "Write report", nil, domain.TaskPriorityHigh, nil, &assignee)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, domain.TaskStatusTodo, created.Status)
		assert.Equal(t, &assignee, created.AssignedToUserID)
		assert.Equal(t, int64(100), view.ID)
	})
}

func TestUpdateTaskStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	roles := map[int64]domain.Role{3: domain.RoleMember}

	t.Run("done sets the completion timestamp", func(t *testing.T) {
		t.Parallel()
		task := taskFixture(100)
		tasks := tasksWith(task)
		var updated *domain.Task
		tasks.UpdateFn = func(ctx context.Context, tsk *domain.Task) error {
			updated = tsk
			return nil
		}
		svc := NewTaskService(tasks, existingProject(20, 10), mocks.RoleMap(roles), nil)

		_, err := svc.UpdateTaskStatus(ctx, 100, 3, domain.TaskStatusDone)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, domain.TaskStatusDone, updated.Status)
		assert.NotNil(t, updated.CompletedAt)
	})

	t.Run("reopening clears the completion timestamp", func(t *testing.T) {
		t.Parallel()
		task := taskFixture(100)
		completed := time.Now().UTC()
		task.Status = domain.TaskStatusDone
		task.CompletedAt = &completed
		tasks := tasksWith(task)
		svc := NewTaskService(tasks, existingProject(20, 10), mocks.RoleMap(roles), nil)

		_, err := svc.UpdateTaskStatus(ctx, 100, 3, domain.TaskStatusInProgress)
		require.NoError(t, err)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewTaskService(tasksWith(taskFixture(100)), existingProject(20, 10), mocks.RoleMap(roles), nil)

		_, err := svc.UpdateTaskStatus(ctx, 100, 3, domain.TaskStatus("archived"))
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestAssignTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	roles := map[int64]domain.Role{1: domain.RoleOwner, 3: domain.RoleMember}

	t.Run("assignment to an outsider fails", func(t *testing.T) {
		t.Parallel()
		svc := NewTaskService(tasksWith(taskFixture(100)), existingProject(20, 10), mocks.RoleMap(roles), nil)

		_, err := svc.AssignTask(ctx, 100, 1, 99)
		assert.ErrorIs(t, err, ErrAssigneeNotMember)
	})

	t.Run("assignment to a member succeeds", func(t *testing.T) {
		t.Parallel()
		task := taskFixture(100)
		svc := NewTaskService(tasksWith(task), existingProject(20, 10), mocks.RoleMap(roles), nil)

		_, err := svc.AssignTask(ctx, 100, 1, 3)
		require.NoError(t, err)
		require.NotNil(t, task.AssignedToUserID)
		assert.Equal(t, int64(3), *task.AssignedToUserID)
	})

	t.Run("unassign clears the assignee", func(t *testing.T) {
		t.Parallel()
		task := taskFixture(100)
		assignee := int64(3)
		task.AssignedToUserID = &assignee
		svc := NewTaskService(tasksWith(task), existingProject(20, 10), mocks.RoleMap(roles), nil)

		_, err := svc.UnassignTask(ctx, 100, 1)
		require.NoError(t, err)
		assert.Nil(t, task.AssignedToUserID)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	roles := map[int64]domain.Role{1: domain.RoleOwner, 2: domain.RoleManager, 3: domain.RoleMember}

	t.Run("plain member cannot delete", func(t *testing.T) {
		t.Parallel()
		svc := NewTaskService(tasksWith(taskFixture(100)), existingProject(20, 10), mocks.RoleMap(roles), nil)

		err := svc.DeleteTask(ctx, 100, 3)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("manager deletes", func(t *testing.T) {
		t.Parallel()
		tasks := tasksWith(taskFixture(100))
		deleted := false
		tasks.DeleteFn = func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		}
		svc := NewTaskService(tasks, existingProject(20, 10), mocks.RoleMap(roles), nil)

		require.NoError(t, svc.DeleteTask(ctx, 100, 2))
		assert.True(t, deleted)
	})
}

func TestQueryProjectTasks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	roles := map[int64]domain.Role{3: domain.RoleMember}

	t.Run("page math and normalization", func(t *testing.T) {
		t.Parallel()
		tasks := tasksWith(taskFixture(100))
		var gotParams store.TaskQueryParams
		tasks.QueryByProjectFn = func(ctx context.Context, projectID int64, params store.TaskQueryParams) ([]*store.TaskWithNames, int, error) {
			gotParams = params
			return []*store.TaskWithNames{
				{Task: *taskFixture(100), ProjectName: "API rewrite"},
			}, 41, nil
		}
		svc := NewTaskService(tasks, existingProject(20, 10), mocks.RoleMap(roles), nil)

		page, err := svc.QueryProjectTasks(ctx, 20, 3, store.TaskQueryParams{Page: 3, PageSize: 0, SortBy: "bogus"})
		require.NoError(t, err)

		assert.Equal(t, store.DefaultPageSize, gotParams.PageSize, "params must be normalized before the store sees them")
		assert.Equal(t, store.SortByCreatedAt, gotParams.SortBy)

		assert.Equal(t, 3, page.Page)
		assert.Equal(t, 41, page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Items, 1)
	})

	t.Run("empty page keeps the total", func(t *testing.T) {
		t.Parallel()
		tasks := tasksWith(taskFixture(100))
		tasks.QueryByProjectFn = func(ctx context.Context, projectID int64, params store.TaskQueryParams) ([]*store.TaskWithNames, int, error) {
			return nil, 5, nil
		}
		svc := NewTaskService(tasks, existingProject(20, 10), mocks.RoleMap(roles), nil)

		page, err := svc.QueryProjectTasks(ctx, 20, 3, store.TaskQueryParams{Page: 99})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 5, page.TotalCount)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("non-member cannot query", func(t *testing.T) {
		t.Parallel()
		svc := NewTaskService(tasksWith(taskFixture(100)), existingProject(20, 10), mocks.RoleMap(roles), nil)

		_, err := svc.QueryProjectTasks(ctx, 20, 99, store.TaskQueryParams{})
		assert.ErrorIs(t, err, ErrNotTeamMember)
	})
}
