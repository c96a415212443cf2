package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/phrazzld/teamwork-api/internal/domain"
)

// Pagination bounds for task queries. Requested sizes above the maximum are
// clamped, never rejected.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Sort keys accepted by TaskQueryParams. Unrecognized keys fall back to
// creation time ascending.
const (
	SortByPriority  = "priority"
	SortByDueDate   = "duedate"
	SortByCreatedAt = "createdat"
)

// TaskQueryParams carries the filter, sort and pagination inputs of the task
// query pipeline. Nil filter fields impose no constraint.
type TaskQueryParams struct {
	Status           *domain.TaskStatus
	Priority         *domain.TaskPriority
	AssignedToUserID *int64
	DueDateFrom      *time.Time
	DueDateTo        *time.Time
	SearchTerm       string

	SortBy         string
	SortDescending bool

	Page     int
	PageSize int
}

// Normalize clamps pagination to its documented bounds and canonicalizes the
// sort key. Page defaults to 1, page size to DefaultPageSize, and anything
// above MaxPageSize is silently capped.
func (p *TaskQueryParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	switch strings.ToLower(p.SortBy) {
	case SortByPriority, SortByDueDate, SortByCreatedAt:
		p.SortBy = strings.ToLower(p.SortBy)
	default:
		p.SortBy = SortByCreatedAt
		p.SortDescending = false
	}
}

// Offset returns the number of rows to skip for the current page.
// Normalize must have been called first.
func (p *TaskQueryParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TaskWithNames is a read projection of a task joined with display fields:
// the project name and, when assigned, the assignee's full name.
type TaskWithNames struct {
	domain.Task
	AssignedToUserName *string
	ProjectName        string
}

// TaskStore defines the interface for task data persistence and the paged
// query pipeline.
type TaskStore interface {
	// Create saves a new task and assigns its ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetWithNames retrieves a task joined with its display fields.
	// Returns ErrTaskNotFound if the task does not exist.
	GetWithNames(ctx context.Context, id int64) (*TaskWithNames, error)

	// ListByProject returns all tasks of a project with display fields,
	// ordered by creation time ascending.
	ListByProject(ctx context.Context, projectID int64) ([]*TaskWithNames, error)

	// QueryByProject runs the filter/sort/paginate pipeline over a project's
	// tasks. The returned total is the match count before pagination; a page
	// beyond the available data yields an empty slice and the same total.
	// Params must be normalized by the caller.
	QueryByProject(ctx context.Context, projectID int64, params TaskQueryParams) ([]*TaskWithNames, int, error)

	// Update persists changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
