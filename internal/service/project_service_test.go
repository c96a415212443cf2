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

func newTestProjectService(projects *mocks.MockProjectStore, members *mocks.MockMembershipStore) ProjectService {
	return NewProjectService(projects, existingTeam(10), &mocks.MockTaskStore{}, members, nil)
}

func TestCreateProject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	roles := map[int64]domain.Role{3: domain.RoleMember}

	t.Run("unknown team is not found", func(t *testing.T) {
		t.Parallel()
		svc := newTestProjectService(&mocks.MockProjectStore{}, mocks.RoleMap(roles))

		_, err := svc.CreateProject(ctx, 999, 3, "API rewrite", nil, nil)
		assert.ErrorIs(t, err, store.ErrTeamNotFound)
	})

	t.Run("any member may create", func(t *testing.T) {
		t.Parallel()
		projects := &mocks.MockProjectStore{}
		var created *domain.Project
		projects.CreateFn = func(ctx context.Context, project *domain.Project) error {
			project.ID = 20
			created = project
			return nil
		}
		svc := newTestProjectService(projects, mocks.RoleMap(roles))

		deadline := time.Now().Add(48 * time.Hour)
		detail, err := svc.CreateProject(ctx, 10, 3, "API rewrite", nil, &deadline)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, int64(10), created.TeamID)
		assert.Equal(t, int64(20), detail.ID)
		assert.Equal(t, "Platform", detail.TeamName)
	})

	t.Run("non-member cannot create", func(t *testing.T) {
		t.Parallel()
		svc := newTestProjectService(&mocks.MockProjectStore{}, mocks.RoleMap(roles))

		_, err := svc.CreateProject(ctx, 10, 99, "API rewrite", nil, nil)
		assert.ErrorIs(t, err, ErrNotTeamMember)
	})
}

func TestUpdateProject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	roles := map[int64]domain.Role{2: domain.RoleManager, 3: domain.RoleMember}

	t.Run("member cannot update", func(t *testing.T) {
		t.Parallel()
		svc := newTestProjectService(existingProject(20, 10), mocks.RoleMap(roles))

		_, err := svc.UpdateProject(ctx, 20, 3, "Renamed", nil, nil)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("manager updates", func(t *testing.T) {
		t.Parallel()
		projects := existingProject(20, 10)
		var updated *domain.Project
		projects.UpdateFn = func(ctx context.Context, project *domain.Project) error {
			updated = project
			return nil
		}
		svc := newTestProjectService(projects, mocks.RoleMap(roles))

		_, err := svc.UpdateProject(ctx, 20, 2, "Renamed", nil, nil)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Renamed", updated.Name)
	})

	t.Run("short name is rejected", func(t *testing.T) {
		t.Parallel()
		svc := newTestProjectService(existingProject(20, 10), mocks.RoleMap(roles))

		_, err := svc.UpdateProject(ctx, 20, 2, "x", nil, nil)
		assert.ErrorIs(t, err, domain.ErrProjectNameTooShort)
	})
}

func TestGetProject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("existence is checked before membership", func(t *testing.T) {
		t.Parallel()
		svc := newTestProjectService(existingProject(20, 10), mocks.RoleMap(nil))

		_, err := svc.GetProject(ctx, 999, 1)
		assert.ErrorIs(t, err, store.ErrProjectNotFound)

		_, err = svc.GetProject(ctx, 20, 1)
		assert.ErrorIs(t, err, ErrNotTeamMember)
	})

	t.Run("member sees tasks", func(t *testing.T) {
		t.Parallel()
		tasks := &mocks.MockTaskStore{
			ListByProjectFn: func(ctx context.Context, projectID int64) ([]*store.TaskWithNames, error) {
				return []*store.TaskWithNames{
					{Task: domain.Task{ID: 100, Title: "Write report", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityLow, ProjectID: 20}, ProjectName: "API rewrite"},
				}, nil
			},
		}
		svc := NewProjectService(existingProject(20, 10), existingTeam(10), tasks,
			mocks.RoleMap(map[int64]domain.Role{3: domain.RoleMember}), nil)

		detail, err := svc.GetProject(ctx, 20, 3)
		require.NoError(t, err)
		require.Len(t, detail.Tasks, 1)
		assert.Equal(t, "Write report", detail.Tasks[0].Title)
	})
}

func TestListTeamProjects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	projects := &mocks.MockProjectStore{
		ListByTeamFn: func(ctx context.Context, teamID int64) ([]*store.ProjectWithTeam, error) {
			return []*store.ProjectWithTeam{
				{Project: domain.Project{ID: 20, Name: "API rewrite", TeamID: 10}, TeamName: "Platform", TaskCount: 4},
			}, nil
		},
	}
	svc := newTestProjectService(projects, mocks.RoleMap(map[int64]domain.Role{3: domain.RoleMember}))

	summaries, err := svc.ListTeamProjects(ctx, 10, 3)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 4, summaries[0].TaskCount)

	_, err = svc.ListTeamProjects(ctx, 10, 99)
	assert.ErrorIs(t, err, ErrNotTeamMember)
}
