package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/teamwork-api/internal/domain"
)

// ProjectWithTeam is a read projection of a project joined with its team's
// name and the number of tasks it holds, used for project listings.
type ProjectWithTeam struct {
	domain.Project
	TeamName  string
	TaskCount int
}

// ProjectStore defines the interface for project data persistence.
type ProjectStore interface {
	// Create saves a new project and assigns its ID.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by its unique ID.
	// Returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Project, error)

	// ListByTeam returns all projects of a team, each joined with the team
	// name and its task count, ordered by project ID.
	ListByTeam(ctx context.Context, teamID int64) ([]*ProjectWithTeam, error)

	// Update persists changes to an existing project's name, description and
	// deadline. Returns ErrProjectNotFound if the project does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes a project. The schema cascades the delete to the
	// project's tasks. Returns ErrProjectNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a ProjectStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProjectStore
}
