package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/mnemo-api/internal/api/shared"
	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUserID(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		authUser int64
		fallback *int64
		want     int64
		wantErr  error
	}{
		{"query", "/?user_id=7", 0, nil, 7, nil},
		{"query wins over body", "/?user_id=7", 0, ptr(int64(9)), 7, nil},
		{"body fallback", "/", 0, ptr(int64(9)), 9, nil},
		{"authenticated", "/", 4, nil, 4, nil},
		{"authenticated matching query", "/?user_id=4", 4, nil, 4, nil},
		{"authenticated mismatching query", "/?user_id=5", 4, nil, 0, ErrUserMismatch},
		{"authenticated mismatching body", "/", 4, ptr(int64(5)), 0, ErrUserMismatch},
		{"missing", "/", 0, nil, 0, ErrUserIDRequired},
		{"malformed", "/?user_id=seven", 0, nil, 0, domain.ErrInvalidFormat},
		{"non-positive", "/?user_id=-2", 0, nil, 0, domain.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.authUser > 0 {
				r = r.WithContext(shared.WithUserID(r.Context(), tc.authUser))
			}

			got, err := resolveUserID(r, tc.fallback)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseBoundedInt(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 10, false},
		{"limit=1", 1, false},
		{"limit=100", 100, false},
		{"limit=0", 0, true},
		{"limit=101", 0, true},
		{"limit=ten", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
			got, err := parseBoundedInt(r, "limit", 10, 1, 100)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
