package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/domain/aggregate"
	"github.com/phrazzld/mnemo-api/internal/platform/logger"
	"github.com/phrazzld/mnemo-api/internal/store"
)

// StatsRepository defines the read queries behind leaderboards and user
// statistics.
type StatsRepository interface {
	ListCompleted(ctx context.Context, query store.CompletedQuery) ([]*domain.Session, error)
	ListAllByUser(ctx context.Context, userID int64) ([]*domain.Session, error)
}

// LeaderboardFilter narrows a leaderboard. Nil fields do not filter.
type LeaderboardFilter struct {
	ExerciseID   *int64
	ExerciseType *domain.ExerciseType
	Difficulty   *domain.Difficulty
}

// StatsService derives leaderboards and per-user statistics.
type StatsService interface {
	// GetLeaderboard ranks the best completed sessions matching filter.
	GetLeaderboard(ctx context.Context, filter LeaderboardFilter, limit int) ([]domain.LeaderboardEntry, error)

	// GetUserStats summarizes the user's sessions per exercise type.
	GetUserStats(ctx context.Context, userID int64) ([]domain.ExerciseStats, error)
}

type statsServiceImpl struct {
	repo   StatsRepository
	logger *slog.Logger
}

var _ StatsService = (*statsServiceImpl)(nil)

// NewStatsService creates a StatsService.
func NewStatsService(repo StatsRepository, logger *slog.Logger) (StatsService, error) {
	if repo == nil {
		return nil, domain.NewValidationError("repo", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &statsServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("component", "stats_service")),
	}, nil
}

// GetLeaderboard implements StatsService.
func (s *statsServiceImpl) GetLeaderboard(
	ctx context.Context,
	filter LeaderboardFilter,
	limit int,
) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if filter.ExerciseType != nil && !filter.ExerciseType.IsValid() {
		return nil, domain.NewValidationError("exercise_type", "unknown exercise type", domain.ErrInvalidExerciseType)
	}
	if filter.Difficulty != nil && !filter.Difficulty.IsValid() {
		return nil, domain.NewValidationError("difficulty", "unknown difficulty", domain.ErrInvalidDifficulty)
	}
	limit = normalizeLimit(limit)

	sessions, err := s.repo.ListCompleted(ctx, store.CompletedQuery{
		ExerciseID:   filter.ExerciseID,
		ExerciseType: filter.ExerciseType,
		Difficulty:   filter.Difficulty,
		Limit:        limit,
	})
	if err != nil {
		log.Error("failed to load leaderboard sessions", slog.String("error", err.Error()))
		return nil, NewServiceError("get_leaderboard", "failed to load sessions", err)
	}
	return aggregate.Leaderboard(sessions, limit), nil
}

// GetUserStats implements StatsService.
func (s *statsServiceImpl) GetUserStats(ctx context.Context, userID int64) ([]domain.ExerciseStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sessions, err := s.repo.ListAllByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load user sessions",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("get_user_stats", "failed to load sessions", err)
	}

	stats := aggregate.UserStats(sessions)
	log.Debug("computed user stats",
		slog.Int64("user_id", userID),
		slog.Int("exercise_types", len(stats)))
	return stats, nil
}
