package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/platform/logger"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// TaskStore implements store.TaskStore using PostgreSQL.
type TaskStore struct {
	db store.DBTX
}

// NewTaskStore creates a new PostgreSQL implementation of store.TaskStore.
func NewTaskStore(db store.DBTX) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &TaskStore{db: db}
}

var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx}
}

// taskColumns is the scan order shared by every task read in this store.
const taskColumns = `t.id, t.title, t.description, t.status, t.priority,
	t.due_date, t.assigned_to_user_id, t.project_id, t.created_at, t.completed_at`

// priorityRank orders priorities by severity in SQL; the enum is stored as
// text, so alphabetical ordering would be wrong.
const priorityRank = `CASE t.priority
	WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 WHEN 'urgent' THEN 4 END`

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (title, description, status, priority, due_date,
		                   assigned_to_user_id, project_id, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.AssignedToUserID,
		task.ProjectID,
		task.CreatedAt,
		task.CompletedAt,
	).Scan(&task.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrProjectNotFound
		}
		log.Error("failed to create task", "error", err, "project_id", task.ProjectID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = $1`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.AssignedToUserID,
		&task.ProjectID,
		&task.CreatedAt,
		&task.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task", "error", err, "task_id", id)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// GetWithNames implements store.TaskStore.GetWithNames.
func (s *TaskStore) GetWithNames(ctx context.Context, id int64) (*store.TaskWithNames, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT ` + taskColumns + `, u.full_name, p.name
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		LEFT JOIN users u ON u.id = t.assigned_to_user_id
		WHERE t.id = $1
	`

	var row store.TaskWithNames
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.Title,
		&row.Description,
		&row.Status,
		&row.Priority,
		&row.DueDate,
		&row.AssignedToUserID,
		&row.ProjectID,
		&row.CreatedAt,
		&row.CompletedAt,
		&row.AssignedToUserName,
		&row.ProjectName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task detail", "error", err, "task_id", id)
		return nil, fmt.Errorf("failed to get task detail: %w", err)
	}

	return &row, nil
}

// ListByProject implements store.TaskStore.ListByProject.
func (s *TaskStore) ListByProject(ctx context.Context, projectID int64) ([]*store.TaskWithNames, error) {
	query := `
		SELECT ` + taskColumns + `, u.full_name, p.name
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		LEFT JOIN users u ON u.id = t.assigned_to_user_id
		WHERE t.project_id = $1
		ORDER BY t.created_at, t.id
	`

	return s.queryTasks(ctx, query, projectID)
}

// QueryByProject implements store.TaskStore.QueryByProject. It builds one
// predicate conjunction from the present filters, counts the matches before
// pagination, then applies the whitelisted sort with LIMIT/OFFSET.
func (s *TaskStore) QueryByProject(ctx context.Context, projectID int64, params store.TaskQueryParams) ([]*store.TaskWithNames, int, error) {
	log := logger.FromContext(ctx)

	where := []string{"t.project_id = $1"}
	args := []any{projectID}

	addArg := func(clause string, value any) {
		args = append(args, value)
		where = append(where, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}

	if params.Status != nil {
		addArg("t.status = ?", *params.Status)
	}
	if params.Priority != nil {
		addArg("t.priority = ?", *params.Priority)
	}
	if params.AssignedToUserID != nil {
		addArg("t.assigned_to_user_id = ?", *params.AssignedToUserID)
	}
	if params.DueDateFrom != nil {
		addArg("t.due_date >= ?", *params.DueDateFrom)
	}
	if params.DueDateTo != nil {
		addArg("t.due_date <= ?", *params.DueDateTo)
	}
	if term := strings.TrimSpace(params.SearchTerm); term != "" {
		// Both placeholders bind the same pattern. NULL descriptions never
		// match: NULL ILIKE anything is NULL, which is falsy inside the OR.
		addArg("(t.title ILIKE ? OR t.description ILIKE ?)", "%"+escapeLike(term)+"%")
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks t WHERE ` + whereClause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks", "error", err, "project_id", projectID)
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := `
		SELECT ` + taskColumns + `, u.full_name, p.name
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		LEFT JOIN users u ON u.id = t.assigned_to_user_id
		WHERE ` + whereClause + `
		ORDER BY ` + orderClause(params) + `
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	tasks, err := s.queryTasks(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// orderClause maps the normalized sort key to a whitelisted ORDER BY. The id
// tiebreak keeps pagination stable when the sort key has duplicates.
func orderClause(params store.TaskQueryParams) string {
	direction := "ASC"
	if params.SortDescending {
		direction = "DESC"
	}

	switch params.SortBy {
	case store.SortByPriority:
		return priorityRank + " " + direction + ", t.id"
	case store.SortByDueDate:
		return "t.due_date " + direction + ", t.id"
	default:
		return "t.created_at " + direction + ", t.id"
	}
}

// escapeLike escapes LIKE metacharacters in a user-supplied search term so
// the term always matches literally.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, `%`, `\%`)
	term = strings.ReplaceAll(term, `_`, `\_`)
	return term
}

func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*store.TaskWithNames, error) {
	log := logger.FromContext(ctx)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", "error", err)
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*store.TaskWithNames, 0)
	for rows.Next() {
		var t store.TaskWithNames
		err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.Priority,
			&t.DueDate,
			&t.AssignedToUserID,
			&t.ProjectID,
			&t.CreatedAt,
			&t.CompletedAt,
			&t.AssignedToUserName,
			&t.ProjectName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4,
		    due_date = $5, assigned_to_user_id = $6, completed_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.AssignedToUserID,
		task.CompletedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task", "error", err, "task_id", task.ID)
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task", "error", err, "task_id", id)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}
