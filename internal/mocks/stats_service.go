package mocks

import (
	"context"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockStatsService is a testify mock of service.StatsService.
type MockStatsService struct {
	mock.Mock
}

var _ service.StatsService = (*MockStatsService)(nil)

// GetLeaderboard implements service.StatsService
func (m *MockStatsService) GetLeaderboard(
	ctx context.Context,
	filter service.LeaderboardFilter,
	limit int,
) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

// GetUserStats implements service.StatsService
func (m *MockStatsService) GetUserStats(ctx context.Context, userID int64) ([]domain.ExerciseStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExerciseStats), args.Error(1)
}
