package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rallyhq/rally/pkg/observability"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("RALLY_JWT_SECRET", "test-secret")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
		assert.Equal(t, "sqlite", cfg.Storage.Type)
		assert.Equal(t, time.Duration(0), cfg.Auth.TokenTTL)
		assert.Equal(t, observability.InfoLevel, cfg.Observability.LogLevel)
		assert.True(t, cfg.Observability.MetricsEnabled)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("RALLY_JWT_SECRET", "test-secret")
		t.Setenv("RALLY_PORT", "9090")
		t.Setenv("RALLY_TOKEN_TTL", "24h")
		t.Setenv("RALLY_STORAGE_TYPE", "postgres")
		t.Setenv("RALLY_POSTGRES_URL", "postgres://localhost/rally")
		t.Setenv("RALLY_LOG_LEVEL", "debug")
		t.Setenv("RALLY_CORS_ORIGINS", "https://a.example, https://b.example")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, "postgres", cfg.Storage.Type)
		assert.Equal(t, observability.DebugLevel, cfg.Observability.LogLevel)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	})

	t.Run("missing JWT secret", func(t *testing.T) {
		t.Setenv("RALLY_JWT_SECRET", "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RALLY_JWT_SECRET")
	})

	t.Run("postgres without URL", func(t *testing.T) {
		t.Setenv("RALLY_JWT_SECRET", "test-secret")
		t.Setenv("RALLY_STORAGE_TYPE", "postgres")
		t.Setenv("RALLY_POSTGRES_URL", "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RALLY_POSTGRES_URL")
	})

	t.Run("invalid storage type", func(t *testing.T) {
		t.Setenv("RALLY_JWT_SECRET", "test-secret")
		t.Setenv("RALLY_STORAGE_TYPE", "mongodb")

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("RALLY_JWT_SECRET", "test-secret")
		t.Setenv("RALLY_PORT", "not-a-port")

		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestEnvHelpers(t *testing.T) {
	t.Run("getEnvInt falls back on garbage", func(t *testing.T) {
		t.Setenv("RALLY_TEST_INT", "abc")
		assert.Equal(t, 42, getEnvInt("RALLY_TEST_INT", 42))
	})

	t.Run("getEnvDuration parses", func(t *testing.T) {
		t.Setenv("RALLY_TEST_DUR", "90s")
		assert.Equal(t, 90*time.Second, getEnvDuration("RALLY_TEST_DUR", time.Minute))
	})

	t.Run("getEnvBool", func(t *testing.T) {
		t.Setenv("RALLY_TEST_BOOL", "false")
		assert.False(t, getEnvBool("RALLY_TEST_BOOL", true))
	})
}
