package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/teamwork-api/internal/api/shared"
	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/service"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// TaskHandler handles task HTTP requests, including the paged query
// endpoint.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// CreateTask handles POST /api/projects/{id}/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.CreateTask(
		r.Context(),
		projectID,
		userID,
		req.Title,
		req.Description,
		domain.TaskPriority(req.Priority),
		req.DueDate,
		req.AssignedToUserID,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ListProjectTasks handles GET /api/projects/{id}/tasks.
func (h *TaskHandler) ListProjectTasks(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListProjectTasks(r.Context(), projectID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// QueryProjectTasks handles GET /api/projects/{id}/tasks/paged. All filter,
// sort, and pagination inputs arrive as query parameters; unknown sort keys
// and out-of-range page sizes are normalized rather than rejected.
func (h *TaskHandler) QueryProjectTasks(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	params, err := parseTaskQueryParams(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.taskService.QueryProjectTasks(r.Context(), projectID, userID, params)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// UpdateTask handles PUT /api/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.UpdateTask(
		r.Context(),
		taskID,
		userID,
		req.Title,
		req.Description,
		domain.TaskPriority(req.Priority),
		req.DueDate,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTaskStatus handles PUT /api/tasks/{id}/status.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.UpdateTaskStatus(r.Context(), taskID, userID, domain.TaskStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// AssignTask handles POST /api/tasks/{id}/assign.
func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	var req AssignTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.AssignTask(r.Context(), taskID, userID, req.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UnassignTask handles POST /api/tasks/{id}/unassign.
func (h *TaskHandler) UnassignTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	task, err := h.taskService.UnassignTask(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseTaskQueryParams reads the filter, sort and pagination query
// parameters. Filter values with a closed value set are validated here;
// pagination and sort normalization happens downstream.
func parseTaskQueryParams(r *http.Request) (store.TaskQueryParams, error) {
	var params store.TaskQueryParams
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status := domain.TaskStatus(v)
		if !status.Valid() {
			return params, domain.NewValidationError("status", "is not a valid task status", domain.ErrInvalidStatus)
		}
		params.Status = &status
	}
	if v := q.Get("priority"); v != "" {
		priority := domain.TaskPriority(v)
		if !priority.Valid() {
			return params, domain.NewValidationError("priority", "is not a valid task priority", domain.ErrInvalidPriority)
		}
		params.Priority = &priority
	}
	if v := q.Get("assignedToUserId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return params, domain.NewValidationError("assignedToUserId", "must be a positive integer", domain.ErrInvalidID)
		}
		params.AssignedToUserID = &id
	}
	if v := q.Get("dueDateFrom"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return params, domain.NewValidationError("dueDateFrom", "must be an RFC 3339 timestamp", domain.ErrValidation)
		}
		params.DueDateFrom = &t
	}
	if v := q.Get("dueDateTo"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return params, domain.NewValidationError("dueDateTo", "must be an RFC 3339 timestamp", domain.ErrValidation)
		}
		params.DueDateTo = &t
	}

	params.SearchTerm = q.Get("searchTerm")
	params.SortBy = q.Get("sortBy")
	params.SortDescending, _ = strconv.ParseBool(q.Get("sortDescending"))

	// Non-numeric page inputs fall back to the defaults.
	params.Page, _ = strconv.Atoi(q.Get("page"))
	params.PageSize, _ = strconv.Atoi(q.Get("pageSize"))

	return params, nil
}
