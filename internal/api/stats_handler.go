package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/mnemo-api/internal/api/shared"
	"github.com/phrazzld/mnemo-api/internal/domain/aggregate"
	"github.com/phrazzld/mnemo-api/internal/platform/logger"
	"github.com/phrazzld/mnemo-api/internal/service"
)

// StatsHandler serves leaderboards and per-user statistics.
type StatsHandler struct {
	statsService service.StatsService
	logger       *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService, logger *slog.Logger) *StatsHandler {
	if statsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("statsService cannot be nil for StatsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatsHandler")
	}
	return &StatsHandler{
		statsService: statsService,
		logger:       logger.With(slog.String("component", "stats_handler")),
	}
}

// GetLeaderboard handles GET /leaderboard. Anonymous callers get the
// board without any entry flagged as their own.
func (h *StatsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	var filter service.LeaderboardFilter
	var err error

	if filter.ExerciseID, err = parseOptionalInt64(r, "exercise_id"); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if filter.ExerciseType, err = parseExerciseType(r); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if filter.Difficulty, err = parseDifficulty(r); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	limit, err := parseBoundedInt(r, "limit", service.DefaultListLimit, 1, service.MaxListLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.statsService.GetLeaderboard(r.Context(), filter, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get leaderboard")
		return
	}

	if userID, ok := h.callerID(r); ok {
		aggregate.MarkCurrentUser(entries, userID)
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("leaderboard served",
		slog.Int("entries", len(entries)),
		slog.Int("limit", limit))
	shared.RespondWithJSON(w, r, http.StatusOK, leaderboardToResponse(entries))
}

// GetUserStats handles GET /stats.
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveUserID(r, nil)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	stats, err := h.statsService.GetUserStats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}

// callerID returns the caller identity when one is known. A malformed
// user_id on this public route is ignored rather than rejected.
func (h *StatsHandler) callerID(r *http.Request) (int64, bool) {
	userID, err := resolveUserID(r, nil)
	if err != nil {
		return 0, false
	}
	return userID, true
}
