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

// MembershipStore implements store.MembershipStore using PostgreSQL.
type MembershipStore struct {
	db store.DBTX
}

// NewMembershipStore creates a new PostgreSQL implementation of
// store.MembershipStore.
func NewMembershipStore(db store.DBTX) *MembershipStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &MembershipStore{db: db}
}

var _ store.MembershipStore = (*MembershipStore)(nil)

// WithTx implements store.MembershipStore.WithTx.
func (s *MembershipStore) WithTx(tx *sql.Tx) store.MembershipStore {
	return &MembershipStore{db: tx}
}

// Add implements store.MembershipStore.Add.
func (s *MembershipStore) Add(ctx context.Context, member *domain.TeamMember) error {
	log := logger.FromContext(ctx)

	if !member.Role.Valid() {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidRole)
	}

	query := `
		INSERT INTO team_members (team_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		member.TeamID,
		member.UserID,
		member.Role,
		member.JoinedAt,
	).Scan(&member.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrMemberExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrNotFound
		}
		log.Error("failed to add team member",
			"error", err,
			"team_id", member.TeamID,
			"user_id", member.UserID)
		return fmt.Errorf("failed to add team member: %w", err)
	}

	return nil
}

// Get implements store.MembershipStore.Get.
func (s *MembershipStore) Get(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, team_id, user_id, role, joined_at
		FROM team_members
		WHERE team_id = $1 AND user_id = $2
	`

	var m domain.TeamMember
	err := s.db.QueryRowContext(ctx, query, teamID, userID).Scan(
		&m.ID,
		&m.TeamID,
		&m.UserID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMemberNotFound
		}
		log.Error("failed to get team member", "error", err, "team_id", teamID, "user_id", userID)
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	return &m, nil
}

// ListByTeam implements store.MembershipStore.ListByTeam.
func (s *MembershipStore) ListByTeam(ctx context.Context, teamID int64) ([]*store.MemberWithUser, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT tm.id, tm.team_id, tm.user_id, tm.role, tm.joined_at,
		       u.full_name, u.email
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY tm.joined_at, tm.id
	`

	rows, err := s.db.QueryContext(ctx, query, teamID)
	if err != nil {
		log.Error("failed to list team members", "error", err, "team_id", teamID)
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	members := make([]*store.MemberWithUser, 0)
	for rows.Next() {
		var m store.MemberWithUser
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt, &m.UserName, &m.UserEmail); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member rows: %w", err)
	}

	return members, nil
}

// UpdateRole implements store.MembershipStore.UpdateRole.
func (s *MembershipStore) UpdateRole(ctx context.Context, teamID, userID int64, role domain.Role) error {
	log := logger.FromContext(ctx)

	if !role.Valid() {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidRole)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE team_members SET role = $1 WHERE team_id = $2 AND user_id = $3`,
		role, teamID, userID)
	if err != nil {
		log.Error("failed to update member role", "error", err, "team_id", teamID, "user_id", userID)
		return fmt.Errorf("failed to update member role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrMemberNotFound
	}

	return nil
}

// Remove implements store.MembershipStore.Remove.
func (s *MembershipStore) Remove(ctx context.Context, teamID, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`,
		teamID, userID)
	if err != nil {
		log.Error("failed to remove team member", "error", err, "team_id", teamID, "user_id", userID)
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrMemberNotFound
	}

	return nil
}

// CountOwners implements store.MembershipStore.CountOwners.
func (s *MembershipStore) CountOwners(ctx context.Context, teamID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM team_members WHERE team_id = $1 AND role = $2`,
		teamID, domain.RoleOwner).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}
	return count, nil
}

// Exists implements store.MembershipStore.Exists.
func (s *MembershipStore) Exists(ctx context.Context, teamID, userID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`,
		teamID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}
