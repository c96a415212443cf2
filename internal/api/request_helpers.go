package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/teamwork-api/internal/api/shared"
	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/platform/logger"
)

// getUserIDFromContext extracts the authenticated user's ID placed in the
// context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// getPathID extracts a positive integer ID from a chi URL parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// handleUserIDAndPathID extracts both the caller's ID from the context and
// an entity ID from the path, writing the error response itself when either
// is missing. Returns false when a response has already been written.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (int64, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return 0, 0, false
	}

	pathID, err := getPathID(r, paramName)
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, 0, false
	}

	return userID, pathID, true
}
