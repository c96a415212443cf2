package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/teamwork-api/internal/api/shared"
	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/service"
	"github.com/phrazzld/teamwork-api/internal/service/auth"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Every
// error the services can return resolves here; unknown errors become 500 so
// nothing internal leaks by accident.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors: the entity exists but the caller lacks standing
	case errors.Is(err, service.ErrNotTeamMember),
		errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Business rule violations and invalid input
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrLastOwner),
		errors.Is(err, service.ErrCannotRemoveOwner),
		errors.Is(err, service.ErrOwnerImmutable),
		errors.Is(err, service.ErrAssigneeNotMember),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for an error.
// Sentinel errors carry deliberate, safe text; anything else gets a generic
// message while the real error goes to the logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, service.ErrNotTeamMember):
		return "You are not a member of this team"

	case errors.Is(err, service.ErrForbidden):
		return "You do not have permission to perform this action"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTeamNotFound):
		return "Team not found"

	case errors.Is(err, store.ErrMemberNotFound):
		return "Team member not found"

	case errors.Is(err, store.ErrProjectNotFound):
		return "Project not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrAlreadyMember):
		return "User is already a member of this team"

	case errors.Is(err, service.ErrLastOwner):
		return "Cannot leave team: you are the only owner"

	case errors.Is(err, service.ErrCannotRemoveOwner):
		return "Cannot remove a team owner"

	case errors.Is(err, service.ErrOwnerImmutable):
		return "Cannot change an owner's role"

	case errors.Is(err, service.ErrAssigneeNotMember):
		return "Tasks can only be assigned to team members"

	case isDomainValidationError(err):
		// Domain validation sentinels are written for end users.
		return capitalizeFirst(err.Error())

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and safe message and writes the
// response. When defaultMsg is non-empty it overrides the mapped message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// isDomainValidationError reports whether err is one of the hand-written
// domain validation sentinels, which are safe to show verbatim.
func isDomainValidationError(err error) bool {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, sentinel := range []error{
		domain.ErrEmptyEmail,
		domain.ErrEmptyFullName,
		domain.ErrFullNameTooShort,
		domain.ErrFullNameTooLong,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrEmptyTeamName,
		domain.ErrTeamNameTooLong,
		domain.ErrEmptyProjectName,
		domain.ErrProjectNameTooShort,
		domain.ErrProjectNameTooLong,
		domain.ErrEmptyTaskTitle,
		domain.ErrTaskTitleTooShort,
		domain.ErrTaskTitleTooLong,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// SanitizeValidationError converts a validator error into a short
// user-facing message naming the offending field.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "eqfield":
		return "fields do not match"
	case "gt":
		return "must be in the future"
	default:
		return "validation failed"
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
