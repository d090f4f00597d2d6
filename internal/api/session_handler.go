package api

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/phrazzld/mnemo-api/internal/api/shared"
	"github.com/phrazzld/mnemo-api/internal/platform/logger"
	"github.com/phrazzld/mnemo-api/internal/service"
)

// SessionHandler handles exercise session HTTP requests.
type SessionHandler struct {
	sessionService service.SessionService
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService, logger *slog.Logger) *SessionHandler {
	if sessionService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessionService cannot be nil for SessionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger.With(slog.String("component", "session_handler")),
	}
}

// CreateSession handles POST /sessions.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSessionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	session, err := h.sessionService.CreateSession(r.Context(), userID, req.ExerciseID, req.Config)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create session")
		return
	}

	log.Debug("session created via API",
		slog.Int64("session_id", session.ID),
		slog.Int64("user_id", userID))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// UpdateSession handles PUT /sessions/{id}.
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	userID, err := resolveUserID(r, nil)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateSessionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	session, err := h.sessionService.UpdateSession(r.Context(), sessionID, userID, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update session")
		return
	}

	log.Debug("session updated via API",
		slog.Int64("session_id", sessionID),
		slog.Bool("completed", session.IsCompleted))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// GetSession handles GET /sessions/{id}.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	userID, err := resolveUserID(r, nil)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), sessionID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// GetScoreBreakdown handles GET /sessions/{id}/breakdown.
func (h *SessionHandler) GetScoreBreakdown(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	userID, err := resolveUserID(r, nil)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	breakdown, err := h.sessionService.GetScoreBreakdown(r.Context(), sessionID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute score breakdown")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, breakdown)
}

// ListSessions handles GET /sessions.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveUserID(r, nil)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	exerciseType, err := parseExerciseType(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	limit, err := parseBoundedInt(r, "limit", service.DefaultListLimit, 1, service.MaxListLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	offset, err := parseBoundedInt(r, "offset", 0, 0, math.MaxInt32)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	sessions, err := h.sessionService.ListSessions(r.Context(), userID, service.ListSessionsParams{
		ExerciseType: exerciseType,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list sessions")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sessionsToResponse(sessions))
}
