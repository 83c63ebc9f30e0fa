package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Strict)
	require.False(t, cfg.SeedDemo)
	require.Empty(t, cfg.DBPath)
	require.Equal(t, "silent", cfg.DBLogLevel)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, "task-tracker", cfg.JWTIssuer)
	require.Equal(t, ".", cfg.ExportDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TRACKER_STRICT", "false")
	t.Setenv("TRACKER_DB_PATH", "/tmp/tracker.db")
	t.Setenv("TRACKER_DB_LOG_LEVEL", "INFO")
	t.Setenv("TRACKER_SESSION_TTL", "90m")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.Strict)
	require.Equal(t, "/tmp/tracker.db", cfg.DBPath)
	require.Equal(t, 90*time.Minute, cfg.SessionTTL)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("TRACKER_STRICT", "maybe")
	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse env:")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("TRACKER_DB_LOG_LEVEL", "debug")
	_, err := Load()
	require.ErrorContains(t, err, "TRACKER_DB_LOG_LEVEL")

	t.Setenv("TRACKER_DB_LOG_LEVEL", "warn")
	t.Setenv("TRACKER_SESSION_TTL", "-1s")
	_, err = Load()
	require.ErrorContains(t, err, "TRACKER_SESSION_TTL")
}
