package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/mocks"
	"github.com/phrazzld/mnemo-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func leaderboardFixture() []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{
		{Rank: 1, SessionID: 4, UserID: 2, Score: 95, Accuracy: 100, TimeElapsedMs: 20000,
			Difficulty: domain.DifficultyHard, CompletedAt: ptr(testTime)},
		{Rank: 2, SessionID: 9, UserID: 7, Score: 80, Accuracy: 90, TimeElapsedMs: 31000,
			Difficulty: domain.DifficultyHard, CompletedAt: ptr(testTime)},
	}
}

func TestGetLeaderboardHandler(t *testing.T) {
	hard := domain.DifficultyHard
	recall := domain.ExerciseTypePatternRecall

	tests := []struct {
		name        string
		target      string
		authUser    int64
		wantFilter  *service.LeaderboardFilter
		wantLimit   int
		wantStatus  int
		wantCurrent []bool
	}{
		{"anonymous defaults", "/leaderboard", 0,
			&service.LeaderboardFilter{}, 10, http.StatusOK, []bool{false, false}},
		{"filters and query user", "/leaderboard?exercise_id=3&exercise_type=pattern_recall&difficulty=hard&limit=2&user_id=7", 0,
			&service.LeaderboardFilter{ExerciseID: ptr(int64(3)), ExerciseType: &recall, Difficulty: &hard},
			2, http.StatusOK, []bool{false, true}},
		{"authenticated caller", "/leaderboard", 2,
			&service.LeaderboardFilter{}, 10, http.StatusOK, []bool{true, false}},
		{"malformed user ignored", "/leaderboard?user_id=abc", 0,
			&service.LeaderboardFilter{}, 10, http.StatusOK, []bool{false, false}},
		{"unknown difficulty", "/leaderboard?difficulty=legendary", 0, nil, 0, http.StatusBadRequest, nil},
		{"bad exercise id", "/leaderboard?exercise_id=x", 0, nil, 0, http.StatusBadRequest, nil},
		{"limit out of range", "/leaderboard?limit=500", 0, nil, 0, http.StatusBadRequest, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mocks.MockStatsService{}
			if tc.wantFilter != nil {
				svc.On("GetLeaderboard", mock.Anything, *tc.wantFilter, tc.wantLimit).
					Return(leaderboardFixture(), nil)
			}

			w := do(t, newTestRouter(t, nil, svc), http.MethodGet, tc.target, "", tc.authUser)

			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			if tc.wantCurrent != nil {
				resp := decode[[]LeaderboardEntryResponse](t, w)
				require.Len(t, resp, len(tc.wantCurrent))
				for i, want := range tc.wantCurrent {
					assert.Equal(t, want, resp[i].IsCurrentUser, "entry %d", i)
				}
				assert.Equal(t, 95.0, resp[0].FinalScore)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGetLeaderboardHandlerServiceFailure(t *testing.T) {
	svc := &mocks.MockStatsService{}
	svc.On("GetLeaderboard", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	w := do(t, newTestRouter(t, nil, svc), http.MethodGet, "/leaderboard", "", 0)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to get leaderboard", decode[map[string]any](t, w)["error"])
}

func TestGetUserStatsHandler(t *testing.T) {
	svc := &mocks.MockStatsService{}
	svc.On("GetUserStats", mock.Anything, int64(7)).Return([]domain.ExerciseStats{
		{ExerciseType: domain.ExerciseTypeMemoryCards, TotalAttempts: 1},
		{
			ExerciseType:      domain.ExerciseTypeSequenceMemory,
			TotalAttempts:     3,
			CompletedAttempts: 2,
			BestScore:         ptr(88.0),
			RecentScores:      []float64{88, 70},
			RecentAccuracies:  []float64{95, 80},
			ImprovementRate:   ptr(25.71),
		},
	}, nil)
	router := newTestRouter(t, nil, svc)

	w := do(t, router, http.MethodGet, "/stats?user_id=7", "", 0)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[[]map[string]any](t, w)
	require.Len(t, resp, 2)
	assert.Equal(t, "memory_cards", resp[0]["exercise_type"])
	assert.Nil(t, resp[0]["best_score"])
	assert.Equal(t, []any{}, resp[0]["recent_scores"])
	assert.Equal(t, 88.0, resp[1]["best_score"])
	assert.Equal(t, 25.71, resp[1]["improvement_rate"])

	w = do(t, router, http.MethodGet, "/stats", "", 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "GetUserStats", 1)
}

func TestPresetHandler(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	w := do(t, router, http.MethodGet, "/presets/memory_cards", "", 0)
	require.Equal(t, http.StatusOK, w.Code)
	presets := decode[[]PresetResponse](t, w)
	require.NotEmpty(t, presets)
	for _, p := range presets {
		assert.Equal(t, domain.ExerciseTypeMemoryCards, p.Config.ExerciseType)
		assert.Equal(t, p.Difficulty, p.Config.Difficulty)
	}

	w = do(t, router, http.MethodGet, "/presets/chess", "", 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
