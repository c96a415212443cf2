package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/teamwork-api/internal/api"
	apimiddleware "github.com/phrazzld/teamwork-api/internal/api/middleware"
)

// setupRouter builds the route tree. Authentication endpoints are public;
// everything else requires a valid access token.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordHasher,
	)
	teamHandler := api.NewTeamHandler(app.teamService)
	projectHandler := api.NewProjectHandler(app.projectService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			// Teams and memberships
			r.Post("/teams", teamHandler.CreateTeam)
			r.Get("/teams/my-teams", teamHandler.GetMyTeams)
			r.Get("/teams/{id}", teamHandler.GetTeam)
			r.Put("/teams/{id}", teamHandler.UpdateTeam)
			r.Delete("/teams/{id}", teamHandler.DeleteTeam)
			r.Post("/teams/{id}/members", teamHandler.AddMember)
			r.Delete("/teams/{id}/members/{userId}", teamHandler.RemoveMember)
			r.Put("/teams/{id}/members/{userId}/role", teamHandler.UpdateMemberRole)
			r.Post("/teams/{id}/leave", teamHandler.LeaveTeam)

			// Projects
			r.Post("/teams/{id}/projects", projectHandler.CreateProject)
			r.Get("/teams/{id}/projects", projectHandler.ListTeamProjects)
			r.Get("/projects/{id}", projectHandler.GetProject)
			r.Put("/projects/{id}", projectHandler.UpdateProject)
			r.Delete("/projects/{id}", projectHandler.DeleteProject)

			// Tasks
			r.Post("/projects/{id}/tasks", taskHandler.CreateTask)
			r.Get("/projects/{id}/tasks", taskHandler.ListProjectTasks)
			r.Get("/projects/{id}/tasks/paged", taskHandler.QueryProjectTasks)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Put("/tasks/{id}/status", taskHandler.UpdateTaskStatus)
			r.Post("/tasks/{id}/assign", taskHandler.AssignTask)
			r.Post("/tasks/{id}/unassign", taskHandler.UnassignTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
