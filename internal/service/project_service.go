package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// ProjectService provides project lifecycle operations. Projects inherit
// their access control from the owning team: any member may read and create,
// owners and managers may modify and delete.
type ProjectService interface {
	// CreateProject creates a project under the team. Any team member.
	CreateProject(ctx context.Context, teamID, callerID int64, name string, description *string, deadline *time.Time) (*ProjectDetail, error)

	// GetProject returns a project with its task list. Team member only.
	GetProject(ctx context.Context, projectID, callerID int64) (*ProjectDetail, error)

	// ListTeamProjects returns all projects of a team. Team member only.
	ListTeamProjects(ctx context.Context, teamID, callerID int64) ([]ProjectSummary, error)

	// UpdateProject changes a project's name, description and deadline.
	// Owner or manager.
	UpdateProject(ctx context.Context, projectID, callerID int64, name string, description *string, deadline *time.Time) (*ProjectDetail, error)

	// DeleteProject removes a project and its tasks. Owner or manager.
	DeleteProject(ctx context.Context, projectID, callerID int64) error
}

type projectServiceImpl struct {
	projects store.ProjectStore
	teams    store.TeamStore
	tasks    store.TaskStore
	authz    *Authorizer
	logger   *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(
	projects store.ProjectStore,
	teams store.TeamStore,
	tasks store.TaskStore,
	members store.MembershipStore,
	logger *slog.Logger,
) ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &projectServiceImpl{
		projects: projects,
		teams:    teams,
		tasks:    tasks,
		authz:    NewAuthorizer(members),
		logger:   logger.With("component", "project_service"),
	}
}

func (s *projectServiceImpl) CreateProject(
	ctx context.Context,
	teamID, callerID int64,
	name string,
	description *string,
	deadline *time.Time,
) (*ProjectDetail, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireMember(ctx, teamID, callerID); err != nil {
		return nil, err
	}

	project, err := domain.NewProject(teamID, name, description, deadline)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"project_id", project.ID,
		"team_id", teamID,
		"created_by", callerID)

	return s.projectDetail(ctx, project, team.Name)
}

func (s *projectServiceImpl) GetProject(ctx context.Context, projectID, callerID int64) (*ProjectDetail, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireMember(ctx, project.TeamID, callerID); err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, project.TeamID)
	if err != nil {
		return nil, err
	}
	return s.projectDetail(ctx, project, team.Name)
}

func (s *projectServiceImpl) ListTeamProjects(ctx context.Context, teamID, callerID int64) ([]ProjectSummary, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.authz.RequireMember(ctx, teamID, callerID); err != nil {
		return nil, err
	}

	projects, err := s.projects.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, ProjectSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			TeamID:      p.TeamID,
			Deadline:    p.Deadline,
			CreatedAt:   p.CreatedAt,
			TaskCount:   p.TaskCount,
		})
	}
	return summaries, nil
}

func (s *projectServiceImpl) UpdateProject(
	ctx context.Context,
	projectID, callerID int64,
	name string,
	description *string,
	deadline *time.Time,
) (*ProjectDetail, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireRole(ctx, project.TeamID, callerID, ManagersAndUp); err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = description
	project.Deadline = deadline
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, project.TeamID)
	if err != nil {
		return nil, err
	}
	return s.projectDetail(ctx, project, team.Name)
}

func (s *projectServiceImpl) DeleteProject(ctx context.Context, projectID, callerID int64) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.authz.RequireRole(ctx, project.TeamID, callerID, ManagersAndUp); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"project_id", projectID,
		"team_id", project.TeamID,
		"deleted_by", callerID)
	return nil
}

// projectDetail assembles the project view with its full task list.
func (s *projectServiceImpl) projectDetail(ctx context.Context, project *domain.Project, teamName string) (*ProjectDetail, error) {
	tasks, err := s.tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t))
	}

	return &ProjectDetail{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		TeamID:      project.TeamID,
		TeamName:    teamName,
		Deadline:    project.Deadline,
		CreatedAt:   project.CreatedAt,
		Tasks:       views,
	}, nil
}

// taskView maps a joined task row to its response shape.
func taskView(t *store.TaskWithNames) TaskView {
	return TaskView{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		Status:             t.Status,
		Priority:           t.Priority,
		DueDate:            t.DueDate,
		AssignedToUserID:   t.AssignedToUserID,
		AssignedToUserName: t.AssignedToUserName,
		ProjectID:          t.ProjectID,
		ProjectName:        t.ProjectName,
		CreatedAt:          t.CreatedAt,
		CompletedAt:        t.CompletedAt,
	}
}
