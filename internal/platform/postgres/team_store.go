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

// TeamStore implements the store.TeamStore interface using PostgreSQL.
type TeamStore struct {
	db store.DBTX
}

// NewTeamStore creates a new PostgreSQL implementation of store.TeamStore.
func NewTeamStore(db store.DBTX) *TeamStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &TeamStore{db: db}
}

var _ store.TeamStore = (*TeamStore)(nil)

// WithTx implements store.TeamStore.WithTx.
func (s *TeamStore) WithTx(tx *sql.Tx) store.TeamStore {
	return &TeamStore{db: tx}
}

// Create implements store.TeamStore.Create.
func (s *TeamStore) Create(ctx context.Context, team *domain.Team) error {
	log := logger.FromContext(ctx)

	if err := team.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO teams (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		team.Name,
		team.Description,
		team.CreatedAt,
	).Scan(&team.ID)
	if err != nil {
		log.Error("failed to create team", "error", err)
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

// GetByID implements store.TeamStore.GetByID.
func (s *TeamStore) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, name, description, created_at
		FROM teams
		WHERE id = $1
	`

	var team domain.Team
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTeamNotFound
		}
		log.Error("failed to get team", "error", err, "team_id", id)
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// ListForUser implements store.TeamStore.ListForUser.
func (s *TeamStore) ListForUser(ctx context.Context, userID int64) ([]*store.TeamWithMemberCount, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT t.id, t.name, t.description, t.created_at,
		       (SELECT COUNT(*) FROM team_members c WHERE c.team_id = t.id) AS member_count
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.user_id = $1
		ORDER BY t.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list teams for user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	teams := make([]*store.TeamWithMemberCount, 0)
	for rows.Next() {
		var t store.TeamWithMemberCount
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team rows: %w", err)
	}

	return teams, nil
}

// Update implements store.TeamStore.Update.
func (s *TeamStore) Update(ctx context.Context, team *domain.Team) error {
	log := logger.FromContext(ctx)

	if err := team.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE teams SET name = $1, description = $2 WHERE id = $3`,
		team.Name, team.Description, team.ID)
	if err != nil {
		log.Error("failed to update team", "error", err, "team_id", team.ID)
		return fmt.Errorf("failed to update team: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTeamNotFound
	}

	return nil
}

// Delete implements store.TeamStore.Delete. Memberships, projects and tasks
// go with the team via ON DELETE CASCADE.
func (s *TeamStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete team", "error", err, "team_id", id)
		return fmt.Errorf("failed to delete team: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTeamNotFound
	}

	return nil
}
