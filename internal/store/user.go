package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/teamwork-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and assigns its ID.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors wrapped in ErrInvalidEntity if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// RecordLogin sets the user's last-login timestamp.
	// Returns ErrUserNotFound if the user does not exist.
	RecordLogin(ctx context.Context, id int64, at time.Time) error

	// WithTx returns a UserStore bound to the provided transaction, so
	// multiple operations can share one atomic commit.
	WithTx(tx *sql.Tx) UserStore
}
