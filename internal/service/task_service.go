package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// TaskService provides task lifecycle operations and the paged query
// pipeline. Tasks inherit access control from the owning team via their
// project; assignment is restricted to members of that team.
type TaskService interface {
	// CreateTask creates a task under the project. Any team member. An
	// assignee, if given, must be a member of the project's team.
	CreateTask(ctx context.Context, projectID, callerID int64, title string, description *string, priority domain.TaskPriority, dueDate *time.Time, assigneeID *int64) (*TaskView, error)

	// GetTask returns a single task. Team member only.
	GetTask(ctx context.Context, taskID, callerID int64) (*TaskView, error)

	// ListProjectTasks returns all tasks of a project, oldest first.
	// Team member only.
	ListProjectTasks(ctx context.Context, projectID, callerID int64) ([]TaskView, error)

	// QueryProjectTasks runs the filter/sort/paginate pipeline over a
	// project's tasks. Team member only.
	QueryProjectTasks(ctx context.Context, projectID, callerID int64, params store.TaskQueryParams) (*TaskPage, error)

	// UpdateTask changes a task's title, description, priority and due
	// date. Any team member.
	UpdateTask(ctx context.Context, taskID, callerID int64, title string, description *string, priority domain.TaskPriority, dueDate *time.Time) (*TaskView, error)

	// UpdateTaskStatus transitions a task and maintains its completion
	// timestamp. Any team member.
	UpdateTaskStatus(ctx context.Context, taskID, callerID int64, status domain.TaskStatus) (*TaskView, error)

	// AssignTask assigns a task to a team member. Any team member.
	AssignTask(ctx context.Context, taskID, callerID, assigneeID int64) (*TaskView, error)

	// UnassignTask clears a task's assignee. Any team member.
	UnassignTask(ctx context.Context, taskID, callerID int64) (*TaskView, error)

	// DeleteTask removes a task. Owner or manager.
	DeleteTask(ctx context.Context, taskID, callerID int64) error
}

type taskServiceImpl struct {
	tasks    store.TaskStore
	projects store.ProjectStore
	members  store.MembershipStore
	authz    *Authorizer
	logger   *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks store.TaskStore,
	projects store.ProjectStore,
	members store.MembershipStore,
	logger *slog.Logger,
) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		tasks:    tasks,
		projects: projects,
		members:  members,
		authz:    NewAuthorizer(members),
		logger:   logger.With("component", "task_service"),
	}
}

func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	projectID, callerID int64,
	title string,
	description *string,
	priority domain.TaskPriority,
	dueDate *time.Time,
	assigneeID *int64,
) (*TaskView, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireMember(ctx, project.TeamID, callerID); err != nil {
		return nil, err
	}

	if assigneeID != nil {
		if err := s.requireAssignable(ctx, project.TeamID, *assigneeID); err != nil {
			return nil, err
		}
	}

	task, err := domain.NewTask(projectID, title, description, priority, dueDate, assigneeID)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"project_id", projectID,
		"created_by", callerID)

	return s.viewOf(ctx, task.ID)
}

func (s *taskServiceImpl) GetTask(ctx context.Context, taskID, callerID int64) (*TaskView, error) {
	task, err := s.tasks.GetWithNames(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeamOf(ctx, task.ProjectID, callerID, AnyMember); err != nil {
		return nil, err
	}

	view := taskView(task)
	return &view, nil
}

func (s *taskServiceImpl) ListProjectTasks(ctx context.Context, projectID, callerID int64) ([]TaskView, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireMember(ctx, project.TeamID, callerID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t))
	}
	return views, nil
}

func (s *taskServiceImpl) QueryProjectTasks(
	ctx context.Context,
	projectID, callerID int64,
	params store.TaskQueryParams,
) (*TaskPage, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireMember(ctx, project.TeamID, callerID); err != nil {
		return nil, err
	}

	params.Normalize()
	tasks, total, err := s.tasks.QueryByProject(ctx, projectID, params)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t))
	}

	totalPages := total / params.PageSize
	if total%params.PageSize != 0 {
		totalPages++
	}

	return &TaskPage{
		Items:      views,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	taskID, callerID int64,
	title string,
	description *string,
	priority domain.TaskPriority,
	dueDate *time.Time,
) (*TaskView, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeamOf(ctx, task.ProjectID, callerID, AnyMember); err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = description
	task.Priority = priority
	task.DueDate = dueDate
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	return s.viewOf(ctx, taskID)
}

func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	taskID, callerID int64,
	status domain.TaskStatus,
) (*TaskView, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeamOf(ctx, task.ProjectID, callerID, AnyMember); err != nil {
		return nil, err
	}

	if err := task.SetStatus(status, time.Now()); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task status updated",
		"task_id", taskID,
		"status", status,
		"updated_by", callerID)

	return s.viewOf(ctx, taskID)
}

func (s *taskServiceImpl) AssignTask(ctx context.Context, taskID, callerID, assigneeID int64) (*TaskView, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireMember(ctx, project.TeamID, callerID); err != nil {
		return nil, err
	}
	if err := s.requireAssignable(ctx, project.TeamID, assigneeID); err != nil {
		return nil, err
	}

	task.AssignedToUserID = &assigneeID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task assigned",
		"task_id", taskID,
		"assignee_id", assigneeID,
		"assigned_by", callerID)

	return s.viewOf(ctx, taskID)
}

func (s *taskServiceImpl) UnassignTask(ctx context.Context, taskID, callerID int64) (*TaskView, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeamOf(ctx, task.ProjectID, callerID, AnyMember); err != nil {
		return nil, err
	}

	task.AssignedToUserID = nil
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	return s.viewOf(ctx, taskID)
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID, callerID int64) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.requireTeamOf(ctx, task.ProjectID, callerID, ManagersAndUp); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	s.logger.Info("task deleted",
		"task_id", taskID,
		"deleted_by", callerID)
	return nil
}

// requireTeamOf resolves the team that owns the project and checks the
// caller's role in it.
func (s *taskServiceImpl) requireTeamOf(ctx context.Context, projectID, callerID int64, allowed []domain.Role) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	return s.authz.RequireRole(ctx, project.TeamID, callerID, allowed)
}

// requireAssignable verifies the prospective assignee belongs to the team.
// A non-member assignee is a request validity failure, distinct from the
// caller's own authorization.
func (s *taskServiceImpl) requireAssignable(ctx context.Context, teamID, assigneeID int64) error {
	ok, err := s.members.Exists(ctx, teamID, assigneeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssigneeNotMember
	}
	return nil
}

// viewOf reloads the joined row for a task after a write.
func (s *taskServiceImpl) viewOf(ctx context.Context, taskID int64) (*TaskView, error) {
	task, err := s.tasks.GetWithNames(ctx, taskID)
	if err != nil {
		return nil, err
	}
	view := taskView(task)
	return &view, nil
}
