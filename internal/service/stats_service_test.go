package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStatsRepository mocks the StatsRepository interface
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) ListCompleted(ctx context.Context, query store.CompletedQuery) ([]*domain.Session, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Session), args.Error(1)
}

func (m *MockStatsRepository) ListAllByUser(ctx context.Context, userID int64) ([]*domain.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Session), args.Error(1)
}

// completeWith drives a session through the lifecycle to completion.
func completeWith(t *testing.T, f *fixture, userID int64, cfg domain.ExerciseConfig, total, correct int) *domain.Session {
	t.Helper()
	ctx := context.Background()
	s, err := f.sessions.CreateSession(ctx, userID, nil, cfg)
	require.NoError(t, err)
	s, err = f.sessions.UpdateSession(ctx, s.ID, userID, domain.SessionUpdate{
		TotalMoves:    intPtr(total),
		CorrectMoves:  intPtr(correct),
		TimeElapsedMs: int64Ptr(60000),
		CompletedAt:   timePtr(testNow),
	})
	require.NoError(t, err)
	return s
}

func TestGetLeaderboard(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	easy := memoryCardsConfig(domain.DifficultyEasy)
	// Accuracy-only scores: 0.5 * accuracy with the time limit fully used.
	completeWith(t, f, 1, easy, 10, 8)  // 40
	completeWith(t, f, 2, easy, 10, 10) // 50
	completeWith(t, f, 3, easy, 10, 6)  // 30
	completeWith(t, f, 4, memoryCardsConfig(domain.DifficultyHard), 10, 10)
	_, err := f.sessions.CreateSession(ctx, 5, nil, easy)
	require.NoError(t, err)

	difficulty := domain.DifficultyEasy
	board, err := f.stats.GetLeaderboard(ctx, LeaderboardFilter{Difficulty: &difficulty}, 2)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, int64(2), board[0].UserID)
	assert.InDelta(t, 50, board[0].Score, 1e-9)
	assert.InDelta(t, 100, board[0].Accuracy, 1e-9)
	assert.Equal(t, 2, board[1].Rank)
	assert.Equal(t, int64(1), board[1].UserID)

	all, err := f.stats.GetLeaderboard(ctx, LeaderboardFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, int64(4), all[0].UserID)
	for i, e := range all {
		assert.Equal(t, i+1, e.Rank)
		assert.False(t, e.IsCurrentUser)
	}

	bad := domain.Difficulty("legendary")
	_, err = f.stats.GetLeaderboard(ctx, LeaderboardFilter{Difficulty: &bad}, 10)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetLeaderboardPassesFilters(t *testing.T) {
	t.Parallel()

	repo := &MockStatsRepository{}
	svc, err := NewStatsService(repo, nil)
	require.NoError(t, err)

	exerciseID := int64(11)
	typ := domain.ExerciseTypeImagePairs
	repo.On("ListCompleted", mock.Anything, store.CompletedQuery{
		ExerciseID:   &exerciseID,
		ExerciseType: &typ,
		Limit:        MaxListLimit,
	}).Return([]*domain.Session{}, nil)

	board, err := svc.GetLeaderboard(context.Background(), LeaderboardFilter{
		ExerciseID:   &exerciseID,
		ExerciseType: &typ,
	}, 500)
	require.NoError(t, err)
	assert.Empty(t, board)
	repo.AssertExpectations(t)
}

func TestStatsServiceRepositoryFailures(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")
	repo := &MockStatsRepository{}
	repo.On("ListCompleted", mock.Anything, mock.Anything).Return(nil, dbErr)
	repo.On("ListAllByUser", mock.Anything, int64(1)).Return(nil, dbErr)

	svc, err := NewStatsService(repo, nil)
	require.NoError(t, err)

	_, err = svc.GetLeaderboard(context.Background(), LeaderboardFilter{}, 10)
	assert.ErrorIs(t, err, dbErr)
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "get_leaderboard", serviceErr.Operation)

	_, err = svc.GetUserStats(context.Background(), 1)
	assert.ErrorIs(t, err, dbErr)
}

func TestGetUserStats(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	easy := memoryCardsConfig(domain.DifficultyEasy)
	completeWith(t, f, 1, easy, 10, 8)
	completeWith(t, f, 1, easy, 10, 10)
	_, err := f.sessions.CreateSession(ctx, 1, nil, easy)
	require.NoError(t, err)
	_, err = f.sessions.CreateSession(ctx, 1, nil, domain.ExerciseConfig{
		ExerciseType: domain.ExerciseTypeSequenceMemory,
		Difficulty:   domain.DifficultyEasy,
	})
	require.NoError(t, err)
	completeWith(t, f, 2, easy, 10, 1)

	stats, err := f.stats.GetUserStats(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	cards := stats[0]
	assert.Equal(t, domain.ExerciseTypeMemoryCards, cards.ExerciseType)
	assert.Equal(t, 3, cards.TotalAttempts)
	assert.Equal(t, 2, cards.CompletedAttempts)
	require.NotNil(t, cards.BestScore)
	assert.InDelta(t, 50, *cards.BestScore, 1e-9)
	require.NotNil(t, cards.AvgScore)
	assert.InDelta(t, 45, *cards.AvgScore, 1e-9)
	require.NotNil(t, cards.FastestTimeMs)
	assert.Equal(t, int64(60000), *cards.FastestTimeMs)
	assert.Len(t, cards.RecentScores, 2)
	assert.Nil(t, cards.ImprovementRate)

	seq := stats[1]
	assert.Equal(t, domain.ExerciseTypeSequenceMemory, seq.ExerciseType)
	assert.Equal(t, 1, seq.TotalAttempts)
	assert.Zero(t, seq.CompletedAttempts)
	assert.Nil(t, seq.AvgScore)
	assert.Nil(t, seq.BestScore)

	none, err := f.stats.GetUserStats(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)

}
