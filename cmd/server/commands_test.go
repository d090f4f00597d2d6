package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/phrazzld/mnemo-api/internal/config"
	"github.com/phrazzld/mnemo-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPresetsListCommand(t *testing.T) {
	out, err := runCmd(t, "presets", "list", "memory_cards")
	require.NoError(t, err)

	var parsed map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	require.Contains(t, parsed, "memory_cards")
	assert.Len(t, parsed, 1)
	assert.NotEmpty(t, parsed["memory_cards"])

	_, err = runCmd(t, "presets", "list", "chess")
	assert.Error(t, err)
}

func TestTokenIssueCommand(t *testing.T) {
	t.Setenv("MNEMO_DATABASE_URL", t.TempDir()+"/unused.db")

	t.Run("requires a secret", func(t *testing.T) {
		t.Setenv("MNEMO_AUTH_JWT_SECRET", "")
		_, err := runCmd(t, "token", "issue", "--user", "5")
		assert.Error(t, err)
	})

	t.Run("issues a verifiable token", func(t *testing.T) {
		t.Setenv("MNEMO_AUTH_JWT_SECRET", testSecret)
		out, err := runCmd(t, "token", "issue", "--user", "5")
		require.NoError(t, err)

		svc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
		require.NoError(t, err)
		claims, err := svc.ValidateToken(context.Background(), strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, int64(5), claims.UserID)
	})
}

func TestMigrateStatusCommand(t *testing.T) {
	t.Setenv("MNEMO_DATABASE_DRIVER", "sqlite")
	t.Setenv("MNEMO_DATABASE_URL", t.TempDir()+"/mnemo.db")
	t.Setenv("MNEMO_SERVER_LOG_LEVEL", "error")

	out, err := runCmd(t, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "pending")

	_, err = runCmd(t, "migrate", "up")
	require.NoError(t, err)

	out, err = runCmd(t, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "applied")
	assert.NotContains(t, out, "pending")
}
