package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fulfillment/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "load", cfg.CandidateRanking)
	assert.Equal(t, 2*time.Minute, cfg.PresenceTTL)
	assert.Equal(t, 5*time.Minute, cfg.SettingsCacheTTL)
	assert.Equal(t, "@every 30s", cfg.PresenceSweepSchedule)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.NotContains(t, cfg.String(), "s3cret")
}

func TestLoadConfig_DotenvAndOverrides(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	content := "JWT_SECRET=from-file\nDB_HOST=db.internal\nCANDIDATE_RANKING=name\nPRESENCE_TTL=45s\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	// set in the environment: wins over the file
	t.Setenv("DB_HOST", "override")
	// cleared after the test: godotenv writes into the process environment
	for _, k := range []string{"JWT_SECRET", "CANDIDATE_RANKING", "PRESENCE_TTL", "LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := cmd.LoadConfig(file)

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "override", cfg.DBHost)
	assert.Equal(t, "name", cfg.CandidateRanking)
	assert.Equal(t, 45*time.Second, cfg.PresenceTTL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Contains(t, cfg.DSN(), "host=override")
}

func TestLoadConfig_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Run("jwt secret is required", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		require.NoError(t, os.Unsetenv("JWT_SECRET"))

		_, err := cmd.LoadConfig(missing)
		require.Error(t, err)
	})

	t.Run("presence ttl must be positive", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("PRESENCE_TTL", "0s")

		_, err := cmd.LoadConfig(missing)
		require.Error(t, err)
	})

	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("SETTINGS_CACHE_TTL", "soon")

		_, err := cmd.LoadConfig(missing)
		require.Error(t, err)
	})
}
