package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/mnemo-api/internal/api/shared"
	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/platform/logger"
	"github.com/phrazzld/mnemo-api/internal/preset"
	"github.com/phrazzld/mnemo-api/internal/service"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, sessions service.SessionService, stats service.StatsService) http.Handler {
	t.Helper()
	log, _ := logger.NewBufferLogger()

	catalog, err := preset.NewDefaultCatalog()
	require.NoError(t, err)

	r := chi.NewRouter()
	if sessions != nil {
		h := NewSessionHandler(sessions, log)
		r.Post("/sessions", h.CreateSession)
		r.Get("/sessions", h.ListSessions)
		r.Put("/sessions/{id}", h.UpdateSession)
		r.Get("/sessions/{id}", h.GetSession)
		r.Get("/sessions/{id}/breakdown", h.GetScoreBreakdown)
	}
	if stats != nil {
		h := NewStatsHandler(stats, log)
		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/stats", h.GetUserStats)
	}
	r.Get("/presets/{exercise_type}", NewPresetHandler(catalog).GetPresets)
	return r
}

// do performs a request, optionally as an authenticated user.
func do(t *testing.T, h http.Handler, method, target, body string, authUser int64) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if authUser > 0 {
		r = r.WithContext(shared.WithUserID(r.Context(), authUser))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func sampleSession(id, userID int64) *domain.Session {
	tw, aw := 0.4, 0.6
	return &domain.Session{
		ID:           id,
		UserID:       userID,
		ExerciseType: domain.ExerciseTypeMemoryCards,
		Difficulty:   domain.DifficultyMedium,
		Config: domain.ExerciseConfig{
			ExerciseType:   domain.ExerciseTypeMemoryCards,
			Difficulty:     domain.DifficultyMedium,
			TimeWeight:     &tw,
			AccuracyWeight: &aw,
		},
		TotalMoves:     10,
		CorrectMoves:   8,
		IncorrectMoves: 2,
		CreatedAt:      testTime,
		UpdatedAt:      testTime,
	}
}

func ptr[T any](v T) *T { return &v }
