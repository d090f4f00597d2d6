package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mnemo-api/internal/config"
	"github.com/phrazzld/mnemo-api/internal/domain/scoring"
	"github.com/phrazzld/mnemo-api/internal/events"
	"github.com/phrazzld/mnemo-api/internal/preset"
	"github.com/phrazzld/mnemo-api/internal/service"
	"github.com/phrazzld/mnemo-api/internal/service/auth"
	"github.com/phrazzld/mnemo-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	sessionStore store.SessionStore

	// jwtService is nil when bearer tokens are disabled.
	jwtService     auth.JWTService
	scorer         scoring.Service
	sessionService service.SessionService
	statsService   service.StatsService
	catalog        *preset.Catalog

	eventEmitter *events.InMemoryEmitter
}

// newApplication wires every dependency on top of an open database.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	if cfg.Auth.TokensEnabled() {
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled",
			slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))
	} else {
		logger.Warn("JWT authentication disabled; callers are identified by the user_id parameter")
	}

	app.sessionStore, err = newSessionStore(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}

	app.scorer, err = scoring.NewDefaultService()
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring service: %w", err)
	}

	app.catalog, err = preset.NewDefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load preset catalog: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLoggingHandler(logger))

	repo := service.NewSessionRepositoryAdapter(app.sessionStore, db)

	app.sessionService, err = service.NewSessionService(repo, app.scorer, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	app.statsService, err = service.NewStatsService(repo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats service: %w", err)
	}

	logger.InfoContext(ctx, "application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
