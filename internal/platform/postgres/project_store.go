package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/platform/logger"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// ProjectStore implements store.ProjectStore using PostgreSQL.
type ProjectStore struct {
	db store.DBTX
}

// NewProjectStore creates a new PostgreSQL implementation of
// store.ProjectStore.
func NewProjectStore(db store.DBTX) *ProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &ProjectStore{db: db}
}

var _ store.ProjectStore = (*ProjectStore)(nil)

// WithTx implements store.ProjectStore.WithTx.
func (s *ProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &ProjectStore{db: tx}
}

// Create implements store.ProjectStore.Create.
func (s *ProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContext(ctx)

	if err := project.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO projects (name, description, team_id, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		project.Name,
		project.Description,
		project.TeamID,
		project.Deadline,
		project.CreatedAt,
	).Scan(&project.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrTeamNotFound
		}
		log.Error("failed to create project", "error", err, "team_id", project.TeamID)
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID implements store.ProjectStore.GetByID.
func (s *ProjectStore) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, name, description, team_id, deadline, created_at
		FROM projects
		WHERE id = $1
	`

	var p domain.Project
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.TeamID,
		&p.Deadline,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProjectNotFound
		}
		log.Error("failed to get project", "error", err, "project_id", id)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &p, nil
}

// ListByTeam implements store.ProjectStore.ListByTeam.
func (s *ProjectStore) ListByTeam(ctx context.Context, teamID int64) ([]*store.ProjectWithTeam, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT p.id, p.name, p.description, p.team_id, p.deadline, p.created_at,
		       t.name AS team_name,
		       (SELECT COUNT(*) FROM tasks k WHERE k.project_id = p.id) AS task_count
		FROM projects p
		JOIN teams t ON t.id = p.team_id
		WHERE p.team_id = $1
		ORDER BY p.id
	`

	rows, err := s.db.QueryContext(ctx, query, teamID)
	if err != nil {
		log.Error("failed to list projects", "error", err, "team_id", teamID)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]*store.ProjectWithTeam, 0)
	for rows.Next() {
		var p store.ProjectWithTeam
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.TeamID, &p.Deadline, &p.CreatedAt, &p.TeamName, &p.TaskCount); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project rows: %w", err)
	}

	return projects, nil
}

// Update implements store.ProjectStore.Update.
func (s *ProjectStore) Update(ctx context.Context, project *domain.Project) error {
	log := logger.FromContext(ctx)

	if err := project.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = $1, description = $2, deadline = $3 WHERE id = $4`,
		project.Name, project.Description, project.Deadline, project.ID)
	if err != nil {
		log.Error("failed to update project", "error", err, "project_id", project.ID)
		return fmt.Errorf("failed to update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrProjectNotFound
	}

	return nil
}

// Delete implements store.ProjectStore.Delete. Tasks go with the project via
// ON DELETE CASCADE.
func (s *ProjectStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete project", "error", err, "project_id", id)
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrProjectNotFound
	}

	return nil
}
