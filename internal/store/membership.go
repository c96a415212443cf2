package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/teamwork-api/internal/domain"
)

// MemberWithUser is a read projection of a membership joined with the user's
// display fields, used for team detail views.
type MemberWithUser struct {
	domain.TeamMember
	UserName  string
	UserEmail string
}

// MembershipStore defines the interface for team membership persistence.
// It is the single source the authorization engine reads from: roles are
// re-derived from the live membership rows on every check.
type MembershipStore interface {
	// Add inserts a new membership and assigns its ID.
	// Returns ErrMemberExists if the (team, user) pair already exists,
	// including when a concurrent insert hits the unique constraint.
	Add(ctx context.Context, member *domain.TeamMember) error

	// Get retrieves the membership for the (team, user) pair.
	// Returns ErrMemberNotFound if the user is not a member of the team.
	Get(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error)

	// ListByTeam returns all memberships of a team joined with user display
	// fields, ordered by join time.
	ListByTeam(ctx context.Context, teamID int64) ([]*MemberWithUser, error)

	// UpdateRole changes the role of an existing membership.
	// Returns ErrMemberNotFound if the membership does not exist.
	UpdateRole(ctx context.Context, teamID, userID int64, role domain.Role) error

	// Remove deletes the membership for the (team, user) pair.
	// Returns ErrMemberNotFound if the membership does not exist.
	Remove(ctx context.Context, teamID, userID int64) error

	// CountOwners returns the number of members with the owner role. The
	// last-owner rule is enforced against this count.
	CountOwners(ctx context.Context, teamID int64) (int, error)

	// Exists reports whether the user is a member of the team.
	Exists(ctx context.Context, teamID, userID int64) (bool, error)

	// WithTx returns a MembershipStore bound to the provided transaction.
	WithTx(tx *sql.Tx) MembershipStore
}
