package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/teamwork-api/internal/config"
	"github.com/phrazzld/teamwork-api/internal/platform/postgres"
	"github.com/phrazzld/teamwork-api/internal/service"
	"github.com/phrazzld/teamwork-api/internal/service/auth"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// application holds the shared dependencies so setup and shutdown live in
// one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore       store.UserStore
	teamStore       store.TeamStore
	membershipStore store.MembershipStore
	projectStore    store.ProjectStore
	taskStore       store.TaskStore

	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher

	teamService    service.TeamService
	projectService service.ProjectService
	taskService    service.TaskService
}

// newApplication wires the stores and services on top of the core
// dependencies established in main.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher()

	app.userStore = postgres.NewUserStore(db)
	app.teamStore = postgres.NewTeamStore(db)
	app.membershipStore = postgres.NewMembershipStore(db)
	app.projectStore = postgres.NewProjectStore(db)
	app.taskStore = postgres.NewTaskStore(db)

	app.teamService = service.NewTeamService(
		store.NewTransactor(db),
		app.teamStore,
		app.membershipStore,
		app.userStore,
		logger,
	)
	app.projectService = service.NewProjectService(
		app.projectStore,
		app.teamStore,
		app.taskStore,
		app.membershipStore,
		logger,
	)
	app.taskService = service.NewTaskService(
		app.taskStore,
		app.projectStore,
		app.membershipStore,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
