package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/teamwork-api/internal/api/shared"
	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/service"
)

// TeamHandler handles team and membership HTTP requests.
type TeamHandler struct {
	teamService service.TeamService
	validator   *validator.Validate
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		validator:   validator.New(),
	}
}

// CreateTeam handles POST /api/teams.
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return
	}

	var req CreateTeamRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, team)
}

// GetTeam handles GET /api/teams/{id}.
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, team)
}

// GetMyTeams handles GET /api/teams/my-teams.
func (h *TeamHandler) GetMyTeams(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return
	}

	teams, err := h.teamService.GetMyTeams(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, teams)
}

// UpdateTeam handles PUT /api/teams/{id}.
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), teamID, userID, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, team)
}

// DeleteTeam handles DELETE /api/teams/{id}.
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), teamID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMember handles POST /api/teams/{id}/members.
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	team, err := h.teamService.AddMember(r.Context(), teamID, userID, req.UserID, domain.Role(req.Role))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, team)
}

// RemoveMember handles DELETE /api/teams/{id}/members/{userId}.
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}
	targetID, err := getPathID(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.teamService.RemoveMember(r.Context(), teamID, userID, targetID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateMemberRole handles PUT /api/teams/{id}/members/{userId}/role.
func (h *TeamHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}
	targetID, err := getPathID(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateMemberRoleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	team, err := h.teamService.UpdateMemberRole(r.Context(), teamID, userID, targetID, domain.Role(req.Role))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, team)
}

// LeaveTeam handles POST /api/teams/{id}/leave.
func (h *TeamHandler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.teamService.LeaveTeam(r.Context(), teamID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
