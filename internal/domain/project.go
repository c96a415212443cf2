package domain

import (
	"errors"
	"strings"
	"time"
)

// Validation errors for Project fields.
var (
	ErrEmptyProjectName    = errors.New("project name cannot be empty")
	ErrProjectNameTooShort = errors.New("project name must be at least 2 characters")
	ErrProjectNameTooLong  = errors.New("project name must be at most 100 characters")
)

// Project belongs to exactly one team. Deleting a project cascades to its
// tasks at the storage layer; deleting the team cascades to its projects.
type Project struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	TeamID      int64      `json:"team_id"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewProject creates a Project pending persistence.
func NewProject(teamID int64, name string, description *string, deadline *time.Time) (*Project, error) {
	project := &Project{
		Name:        name,
		Description: description,
		TeamID:      teamID,
		Deadline:    deadline,
		CreatedAt:   time.Now().UTC(),
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks the Project's fields. Deadline plausibility ("must be in
// the future") is a request-validation rule, not re-checked here.
func (p *Project) Validate() error {
	switch n := len(strings.TrimSpace(p.Name)); {
	case n == 0:
		return ErrEmptyProjectName
	case n < 2:
		return ErrProjectNameTooShort
	case n > 100:
		return ErrProjectNameTooLong
	}
	return nil
}
