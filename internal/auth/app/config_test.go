package app

import (
	"testing"
	"time"

	"github.com/parleyhq/parley/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "chatbot.db", cfg.DatabaseFile)
	require.Equal(t, cryptox.SchemeSHA256, cfg.PasswordScheme)
	require.Equal(t, 30*time.Minute, cfg.ResetTTL)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PARLEY_DATABASE_FILE", "/tmp/other.db")
	t.Setenv("PARLEY_PASSWORD_SCHEME", "argon2id")
	t.Setenv("PARLEY_RESET_TTL", "15m")
	t.Setenv("HOUSEKEEPING_INTERVAL", "5m")

	cfg := LoadConfig()

	require.Equal(t, "/tmp/other.db", cfg.DatabaseFile)
	require.Equal(t, cryptox.SchemeArgon2id, cfg.PasswordScheme)
	require.Equal(t, 15*time.Minute, cfg.ResetTTL)
	require.Equal(t, 5*time.Minute, cfg.HousekeepingInterval)
}

func TestLoadConfigIgnoresBadDuration(t *testing.T) {
	t.Setenv("PARLEY_RESET_TTL", "soon")

	cfg := LoadConfig()
	require.Equal(t, 30*time.Minute, cfg.ResetTTL)
}
