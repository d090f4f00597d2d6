package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/domain/scoring"
	"github.com/phrazzld/mnemo-api/internal/events"
	"github.com/phrazzld/mnemo-api/internal/platform/logger"
	"github.com/phrazzld/mnemo-api/internal/store"
)

// Paging bounds for session listings and leaderboards.
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// SessionRepository defines the persistence operations the session
// lifecycle needs.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Session, error)
	GetForUpdate(ctx context.Context, id, userID int64) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	ListByUser(ctx context.Context, userID int64, query store.SessionQuery) ([]*domain.Session, error)

	// WithTx returns a repository bound to tx.
	WithTx(tx *sql.Tx) SessionRepository

	// DB returns the database transactions are started on.
	DB() *sql.DB
}

// ListSessionsParams filters and pages a user's session history.
type ListSessionsParams struct {
	ExerciseType *domain.ExerciseType
	Limit        int
	Offset       int
}

// SessionService manages the lifecycle of exercise sessions.
type SessionService interface {
	// CreateSession starts a new session for userID with cfg.
	CreateSession(
		ctx context.Context,
		userID int64,
		exerciseID *int64,
		cfg domain.ExerciseConfig,
	) (*domain.Session, error)

	// UpdateSession applies telemetry to an open session. When the update
	// carries a completion time the session is finalized and scored in the
	// same transaction.
	UpdateSession(
		ctx context.Context,
		sessionID, userID int64,
		update domain.SessionUpdate,
	) (*domain.Session, error)

	// GetSession returns a session owned by userID.
	GetSession(ctx context.Context, sessionID, userID int64) (*domain.Session, error)

	// ListSessions returns the user's sessions, newest first.
	ListSessions(ctx context.Context, userID int64, params ListSessionsParams) ([]*domain.Session, error)

	// GetScoreBreakdown returns the stored breakdown of a completed session,
	// or a preview computed from the current telemetry otherwise.
	GetScoreBreakdown(ctx context.Context, sessionID, userID int64) (*domain.ScoreBreakdown, error)
}

type sessionServiceImpl struct {
	repo    SessionRepository
	scorer  scoring.Service
	emitter events.Emitter
	logger  *slog.Logger
	now     func() time.Time
}

var _ SessionService = (*sessionServiceImpl)(nil)

// NewSessionService creates a SessionService. The emitter is optional.
func NewSessionService(
	repo SessionRepository,
	scorer scoring.Service,
	emitter events.Emitter,
	logger *slog.Logger,
) (SessionService, error) {
	if repo == nil {
		return nil, domain.NewValidationError("repo", "cannot be nil", domain.ErrValidation)
	}
	if scorer == nil {
		return nil, domain.NewValidationError("scorer", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionServiceImpl{
		repo:    repo,
		scorer:  scorer,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "session_service")),
		now:     time.Now,
	}, nil
}

// CreateSession implements SessionService.
func (s *sessionServiceImpl) CreateSession(
	ctx context.Context,
	userID int64,
	exerciseID *int64,
	cfg domain.ExerciseConfig,
) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := domain.NewSession(userID, exerciseID, cfg, s.now())
	if err != nil {
		log.Debug("rejected session config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("create_session", "failed to save session", err)
	}

	log.Info("session created",
		slog.Int64("session_id", session.ID),
		slog.Int64("user_id", userID),
		slog.String("exercise_type", string(session.ExerciseType)),
		slog.String("difficulty", string(session.Difficulty)))
	return session, nil
}

// UpdateSession implements SessionService.
func (s *sessionServiceImpl) UpdateSession(
	ctx context.Context,
	sessionID, userID int64,
	update domain.SessionUpdate,
) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.Int64("session_id", sessionID),
		slog.Int64("user_id", userID))

	if err := update.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Session
	err := store.RunInTransaction(ctx, s.repo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.repo.WithTx(tx)

		session, err := txRepo.GetForUpdate(ctx, sessionID, userID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewServiceError("update_session", "session not found", ErrSessionNotFound)
			}
			return NewServiceError("update_session", "failed to load session", err)
		}
		if session.IsCompleted {
			return ErrSessionAlreadyCompleted
		}

		update.Apply(session, s.now())
		if err := session.ValidateTelemetry(); err != nil {
			return err
		}
		if update.Completes() {
			session.IsCompleted = true
			score, breakdown, err := s.scorer.Score(session)
			if err != nil {
				return NewServiceError("update_session", "failed to score session", err)
			}
			session.Complete(*update.CompletedAt, score, breakdown)
		}

		if err := txRepo.Update(ctx, session); err != nil {
			if store.IsNotFoundError(err) {
				return NewServiceError("update_session", "session not found", ErrSessionNotFound)
			}
			return NewServiceError("update_session", "failed to save session", err)
		}
		updated = session
		return nil
	})
	if err != nil {
		log.Debug("session update failed", slog.String("error", err.Error()))
		return nil, err
	}

	if update.Completes() {
		log.Info("session completed", slog.Float64("final_score", *updated.FinalScore))
		s.emitCompleted(ctx, updated)
	}
	return updated, nil
}

// emitCompleted publishes a completion event. Delivery failures are
// logged; the session is already committed.
func (s *sessionServiceImpl) emitCompleted(ctx context.Context, session *domain.Session) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(events.TypeSessionCompleted, events.SessionCompleted{
		SessionID:    session.ID,
		UserID:       session.UserID,
		ExerciseType: string(session.ExerciseType),
		Difficulty:   string(session.Difficulty),
		FinalScore:   *session.FinalScore,
		CompletedAt:  *session.CompletedAt,
	})
	if err != nil {
		log.Error("failed to build completion event", slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("completion event not fully delivered",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
	}
}

// GetSession implements SessionService.
func (s *sessionServiceImpl) GetSession(ctx context.Context, sessionID, userID int64) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.repo.GetByIDAndUser(ctx, sessionID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("session not found",
				slog.Int64("session_id", sessionID),
				slog.Int64("user_id", userID))
			return nil, NewServiceError("get_session", "session not found", ErrSessionNotFound)
		}
		log.Error("failed to retrieve session",
			slog.String("error", err.Error()),
			slog.Int64("session_id", sessionID))
		return nil, NewServiceError("get_session", "failed to retrieve session", err)
	}
	return session, nil
}

// ListSessions implements SessionService.
func (s *sessionServiceImpl) ListSessions(
	ctx context.Context,
	userID int64,
	params ListSessionsParams,
) ([]*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if params.ExerciseType != nil && !params.ExerciseType.IsValid() {
		return nil, domain.NewValidationError("exercise_type", "unknown exercise type", domain.ErrInvalidExerciseType)
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	sessions, err := s.repo.ListByUser(ctx, userID, store.SessionQuery{
		ExerciseType: params.ExerciseType,
		Limit:        normalizeLimit(params.Limit),
		Offset:       offset,
	})
	if err != nil {
		log.Error("failed to list sessions",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("list_sessions", "failed to list sessions", err)
	}
	return sessions, nil
}

// GetScoreBreakdown implements SessionService.
func (s *sessionServiceImpl) GetScoreBreakdown(
	ctx context.Context,
	sessionID, userID int64,
) (*domain.ScoreBreakdown, error) {
	session, err := s.GetSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted && session.ScoreBreakdown != nil {
		return session.ScoreBreakdown, nil
	}

	preview, err := s.scorer.Breakdown(session)
	if err != nil {
		return nil, NewServiceError("get_score_breakdown", "failed to compute breakdown", err)
	}
	return &preview, nil
}

// normalizeLimit applies the default page size and caps it.
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
