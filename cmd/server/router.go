package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/mnemo-api/internal/api"
	apiMiddleware "github.com/phrazzld/mnemo-api/internal/api/middleware"
	"github.com/phrazzld/mnemo-api/internal/api/shared"
)

// apiPrefix is the mount point of the exercise API.
const apiPrefix = "/api/v1/memory-exercises"

// setupRouter creates the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{shared.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	sessionHandler := api.NewSessionHandler(app.sessionService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService, app.logger)
	presetHandler := api.NewPresetHandler(app.catalog)

	// Without a JWT service the handlers identify callers by user_id.
	requireAuth := func(next http.Handler) http.Handler { return next }
	optionalAuth := requireAuth
	if app.jwtService != nil {
		authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
		requireAuth = authMiddleware.Authenticate
		optionalAuth = authMiddleware.OptionalAuthenticate
	}

	r.Route(apiPrefix, func(r chi.Router) {
		// Public routes
		r.Get("/presets/{exercise_type}", presetHandler.GetPresets)
		r.With(optionalAuth).Get("/leaderboard", statsHandler.GetLeaderboard)

		// User-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/sessions", sessionHandler.CreateSession)
			r.Get("/sessions", sessionHandler.ListSessions)
			r.Put("/sessions/{id}", sessionHandler.UpdateSession)
			r.Get("/sessions/{id}", sessionHandler.GetSession)
			r.Get("/sessions/{id}/breakdown", sessionHandler.GetScoreBreakdown)
			r.Get("/stats", statsHandler.GetUserStats)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"message": "Visual Memory Exercise API",
			"version": version,
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := app.db.PingContext(r.Context()); err != nil {
			app.logger.Error("health check failed to reach database", "error", err)
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		shared.RespondWithJSON(w, r, code, map[string]string{"status": status})
	})

	return r
}
