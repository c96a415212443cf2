package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TEAMWORK_DATABASE_URL", "postgres://localhost:5432/teamwork_test")
	t.Setenv("TEAMWORK_AUTH_JWT_SECRET", testSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 10080, cfg.Auth.RefreshTokenLifetimeMinutes)
	assert.Equal(t, "postgres://localhost:5432/teamwork_test", cfg.Database.URL)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TEAMWORK_SERVER_PORT", "9090")
	t.Setenv("TEAMWORK_SERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Run("missing database URL", func(t *testing.T) {
		t.Setenv("TEAMWORK_DATABASE_URL", "")
		t.Setenv("TEAMWORK_AUTH_JWT_SECRET", testSecret)

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("short JWT secret", func(t *testing.T) {
		t.Setenv("TEAMWORK_DATABASE_URL", "postgres://localhost:5432/teamwork_test")
		t.Setenv("TEAMWORK_AUTH_JWT_SECRET", "short")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TEAMWORK_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		assert.Error(t, err)
	})
}
