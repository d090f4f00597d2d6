package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/mnemo-api/internal/platform/logger"
)

// LoggingHandler records completed sessions in the application log.
type LoggingHandler struct {
	logger *slog.Logger
}

// NewLoggingHandler creates a LoggingHandler.
func NewLoggingHandler(log *slog.Logger) *LoggingHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LoggingHandler{logger: log.With(slog.String("component", "session_events"))}
}

// HandleEvent implements Handler. Unknown event types are ignored.
func (h *LoggingHandler) HandleEvent(ctx context.Context, event *Event) error {
	if event.Type != TypeSessionCompleted {
		return nil
	}
	var p SessionCompleted
	if err := event.UnmarshalPayload(&p); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, h.logger).Info("exercise session completed",
		slog.String("event_id", event.ID.String()),
		slog.Int64("session_id", p.SessionID),
		slog.Int64("user_id", p.UserID),
		slog.String("exercise_type", p.ExerciseType),
		slog.String("difficulty", p.Difficulty),
		slog.Float64("final_score", p.FinalScore))
	return nil
}
