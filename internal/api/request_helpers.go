package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/mnemo-api/internal/api/shared"
	"github.com/phrazzld/mnemo-api/internal/domain"
)

// resolveUserID determines the caller. An identity placed in the context
// by the auth middleware wins; an explicit user_id that disagrees with it
// is rejected. Without an authenticated identity the user_id query
// parameter is used, then fallback (the create body's user_id).
func resolveUserID(r *http.Request, fallback *int64) (int64, error) {
	explicit, err := parseOptionalInt64(r, "user_id")
	if err != nil {
		return 0, err
	}
	if explicit == nil {
		explicit = fallback
	}

	if authed, ok := shared.GetUserID(r.Context()); ok {
		if explicit != nil && *explicit != authed {
			return 0, ErrUserMismatch
		}
		return authed, nil
	}

	if explicit == nil {
		return 0, ErrUserIDRequired
	}
	if *explicit <= 0 {
		return 0, domain.NewValidationError("user_id", "must be positive", domain.ErrInvalidID)
	}
	return *explicit, nil
}

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// parseOptionalInt64 returns nil when the query parameter is absent.
func parseOptionalInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be an integer", domain.ErrInvalidFormat)
	}
	return &v, nil
}

// parseBoundedInt reads an integer query parameter, applying def when it
// is absent and rejecting values outside [lo, hi].
func parseBoundedInt(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", domain.ErrInvalidFormat)
	}
	if v < lo || v > hi {
		return 0, domain.NewValidationError(name, "is out of range", domain.ErrValidation)
	}
	return v, nil
}

// parseExerciseType reads an optional exercise_type query parameter.
func parseExerciseType(r *http.Request) (*domain.ExerciseType, error) {
	raw := r.URL.Query().Get("exercise_type")
	if raw == "" {
		return nil, nil
	}
	et, err := domain.ParseExerciseType(raw)
	if err != nil {
		return nil, domain.NewValidationError("exercise_type", "is not a known exercise type", err)
	}
	return &et, nil
}

// parseDifficulty reads an optional difficulty query parameter.
func parseDifficulty(r *http.Request) (*domain.Difficulty, error) {
	raw := r.URL.Query().Get("difficulty")
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDifficulty(raw)
	if err != nil {
		return nil, domain.NewValidationError("difficulty", "is not a known difficulty", err)
	}
	return &d, nil
}
