package domain

import (
	"errors"
	"strings"
	"time"
)

// Validation errors for Team fields.
var (
	ErrEmptyTeamName   = errors.New("team name cannot be empty")
	ErrTeamNameTooLong = errors.New("team name must be at most 100 characters")
)

// Role is a team membership role. Privilege ordering is
// owner > manager > member, enforced by per-operation role sets rather than a
// type hierarchy.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleManager || r == RoleMember
}

// Team groups members and projects. Deleting a team cascades to its
// memberships and projects at the storage layer.
type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTeam creates a Team pending persistence.
func NewTeam(name string, description *string) (*Team, error) {
	team := &Team{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := team.Validate(); err != nil {
		return nil, err
	}

	return team, nil
}

// Validate checks the Team's fields.
func (t *Team) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return ErrEmptyTeamName
	}
	if len(name) > 100 {
		return ErrTeamNameTooLong
	}
	return nil
}

// TeamMember links a user to a team with a role. (TeamID, UserID) is unique;
// the database constraint is the backstop for concurrent inserts.
type TeamMember struct {
	ID       int64     `json:"id"`
	TeamID   int64     `json:"team_id"`
	UserID   int64     `json:"user_id"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// NewTeamMember creates a membership pending persistence.
func NewTeamMember(teamID, userID int64, role Role) (*TeamMember, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	return &TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}, nil
}
