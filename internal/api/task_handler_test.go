package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/teamwork-api/internal/api/shared"
	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/service"
	"github.com/phrazzld/teamwork-api/internal/store"
)

func TestParseTaskQueryParams(t *testing.T) {
	t.Parallel()

	t.Run("full parameter set", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet,
			"/api/projects/1/tasks/paged?status=done&priority=high&assignedToUserId=3"+
				"&dueDateFrom=2025-01-01T00:00:00Z&dueDateTo=2025-12-31T00:00:00Z"+
				"&searchTerm=report&sortBy=priority&sortDescending=true&page=2&pageSize=50", nil)

		params, err := parseTaskQueryParams(req)
		require.NoError(t, err)

		require.NotNil(t, params.Status)
		assert.Equal(t, domain.TaskStatusDone, *params.Status)
		require.NotNil(t, params.Priority)
		assert.Equal(t, domain.TaskPriorityHigh, *params.Priority)
		require.NotNil(t, params.AssignedToUserID)
		assert.Equal(t, int64(3), *params.AssignedToUserID)
		require.NotNil(t, params.DueDateFrom)
		require.NotNil(t, params.DueDateTo)
		assert.Equal(t, "report", params.SearchTerm)
		assert.Equal(t, "priority", params.SortBy)
		assert.True(t, params.SortDescending)
		assert.Equal(t, 2, params.Page)
		assert.Equal(t, 50, params.PageSize)
	})

	t.Run("empty query imposes no filters", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/projects/1/tasks/paged", nil)

		params, err := parseTaskQueryParams(req)
		require.NoError(t, err)
		assert.Nil(t, params.Status)
		assert.Nil(t, params.Priority)
		assert.Nil(t, params.AssignedToUserID)
		assert.Empty(t, params.SearchTerm)
	})

	t.Run("invalid status filter is rejected", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/projects/1/tasks/paged?status=archived", nil)

		_, err := parseTaskQueryParams(req)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("invalid priority filter is rejected", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/projects/1/tasks/paged?priority=critical", nil)

		_, err := parseTaskQueryParams(req)
		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	})

	t.Run("malformed due date is rejected", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/projects/1/tasks/paged?dueDateFrom=yesterday", nil)

		_, err := parseTaskQueryParams(req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// stubTaskService returns canned values for the handler tests.
type stubTaskService struct {
	service.TaskService
	queryFn func(ctx context.Context, projectID, callerID int64, params store.TaskQueryParams) (*service.TaskPage, error)
}

func (s *stubTaskService) QueryProjectTasks(
	ctx context.Context,
	projectID, callerID int64,
	params store.TaskQueryParams,
) (*service.TaskPage, error) {
	return s.queryFn(ctx, projectID, callerID, params)
}

func TestQueryProjectTasksHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns the page", func(t *testing.T) {
		t.Parallel()
		svc := &stubTaskService{
			queryFn: func(ctx context.Context, projectID, callerID int64, params store.TaskQueryParams) (*service.TaskPage, error) {
				assert.Equal(t, int64(20), projectID)
				assert.Equal(t, int64(42), callerID)
				return &service.TaskPage{Items: []service.TaskView{}, Page: 1, PageSize: 20, TotalCount: 0, TotalPages: 0}, nil
			},
		}
		handler := NewTaskHandler(svc)

		r := chi.NewRouter()
		r.Get("/api/projects/{id}/tasks/paged", handler.QueryProjectTasks)

		req := httptest.NewRequest(http.MethodGet, "/api/projects/20/tasks/paged", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, int64(42))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req.WithContext(ctx))

		require.Equal(t, http.StatusOK, rr.Code)

		var page service.TaskPage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		assert.Equal(t, 1, page.Page)
	})

	t.Run("service errors map to status codes", func(t *testing.T) {
		t.Parallel()
		svc := &stubTaskService{
			queryFn: func(ctx context.Context, projectID, callerID int64, params store.TaskQueryParams) (*service.TaskPage, error) {
				return nil, store.ErrProjectNotFound
			},
		}
		handler := NewTaskHandler(svc)

		r := chi.NewRouter()
		r.Get("/api/projects/{id}/tasks/paged", handler.QueryProjectTasks)

		req := httptest.NewRequest(http.MethodGet, "/api/projects/999/tasks/paged", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, int64(42))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req.WithContext(ctx))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("bad path parameter is a bad request", func(t *testing.T) {
		t.Parallel()
		handler := NewTaskHandler(&stubTaskService{})

		r := chi.NewRouter()
		r.Get("/api/projects/{id}/tasks/paged", handler.QueryProjectTasks)

		req := httptest.NewRequest(http.MethodGet, "/api/projects/abc/tasks/paged", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, int64(42))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req.WithContext(ctx))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
