package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/teamwork-api/internal/domain"
)

// TeamWithMemberCount is a read projection of a team plus the number of its
// members, used for team listings.
type TeamWithMemberCount struct {
	domain.Team
	MemberCount int
}

// TeamStore defines the interface for team data persistence.
type TeamStore interface {
	// Create saves a new team and assigns its ID.
	Create(ctx context.Context, team *domain.Team) error

	// GetByID retrieves a team by its unique ID.
	// Returns ErrTeamNotFound if the team does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Team, error)

	// ListForUser returns all teams the given user is a member of, each with
	// its member count, ordered by team ID.
	ListForUser(ctx context.Context, userID int64) ([]*TeamWithMemberCount, error)

	// Update persists changes to an existing team's name and description.
	// Returns ErrTeamNotFound if the team does not exist.
	Update(ctx context.Context, team *domain.Team) error

	// Delete removes a team. The schema cascades the delete to the team's
	// memberships, projects, and transitively tasks.
	// Returns ErrTeamNotFound if the team does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TeamStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TeamStore
}
