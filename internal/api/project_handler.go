package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/teamwork-api/internal/api/shared"
	"github.com/phrazzld/teamwork-api/internal/service"
)

// ProjectHandler handles project HTTP requests. Creation and listing are
// nested under the owning team; single-project operations address the
// project directly.
type ProjectHandler struct {
	projectService service.ProjectService
	validator      *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		validator:      validator.New(),
	}
}

// CreateProject handles POST /api/teams/{id}/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), teamID, userID, req.Name, req.Description, req.Deadline)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, project)
}

// GetProject handles GET /api/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(r.Context(), projectID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// ListTeamProjects handles GET /api/teams/{id}/projects.
func (h *ProjectHandler) ListTeamProjects(w http.ResponseWriter, r *http.Request) {
	userID, teamID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	projects, err := h.projectService.ListTeamProjects(r.Context(), teamID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projects)
}

// UpdateProject handles PUT /api/projects/{id}.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), projectID, userID, req.Name, req.Description, req.Deadline)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/{id}.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), projectID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
