package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/service"
	"github.com/phrazzld/teamwork-api/internal/service/auth"
	"github.com/phrazzld/teamwork-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"invalid refresh token", auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},

		{"not a team member", service.ErrNotTeamMember, http.StatusForbidden},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},

		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"team not found", store.ErrTeamNotFound, http.StatusNotFound},
		{"member not found", store.ErrMemberNotFound, http.StatusNotFound},
		{"project not found", store.ErrProjectNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},

		{"email exists", store.ErrEmailExists, http.StatusConflict},

		{"already member", service.ErrAlreadyMember, http.StatusBadRequest},
		{"last owner", service.ErrLastOwner, http.StatusBadRequest},
		{"cannot remove owner", service.ErrCannotRemoveOwner, http.StatusBadRequest},
		{"owner immutable", service.ErrOwnerImmutable, http.StatusBadRequest},
		{"assignee not member", service.ErrAssigneeNotMember, http.StatusBadRequest},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest},
		{"empty team name", domain.ErrEmptyTeamName, http.StatusBadRequest},
		{"task title too long", domain.ErrTaskTitleTooLong, http.StatusBadRequest},
		{"validation error", domain.NewValidationError("id", "must be positive", domain.ErrInvalidID), http.StatusBadRequest},

		{"unknown error", errors.New("database on fire"), http.StatusInternalServerError},
		{"wrapped unknown", fmt.Errorf("outer: %w", errors.New("inner")), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCodeWrapped(t *testing.T) {
	t.Parallel()

	// Stores wrap their sentinels; mapping must see through the wrapping.
	wrapped := fmt.Errorf("getting team: %w", store.ErrTeamNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(wrapped))

	wrapped = fmt.Errorf("resolving role: %w", service.ErrNotTeamMember)
	assert.Equal(t, http.StatusForbidden, MapErrorToStatusCode(wrapped))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"team not found", store.ErrTeamNotFound, "Team not found"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"not a member", service.ErrNotTeamMember, "You are not a member of this team"},
		{"last owner", service.ErrLastOwner, "Cannot leave team: you are the only owner"},
		{"assignee not member", service.ErrAssigneeNotMember, "Tasks can only be assigned to team members"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"domain validation text passes through", domain.ErrTaskTitleTooShort, "Task title must be at least 2 characters"},
		{"unknown error is generic", errors.New("pq: connection refused"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("pgx: SELECT * FROM users failed: password authentication failed")
	msg := GetSafeErrorMessage(internal)
	assert.NotContains(t, msg, "pgx")
	assert.NotContains(t, msg, "SELECT")
	assert.NotContains(t, msg, "password")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
