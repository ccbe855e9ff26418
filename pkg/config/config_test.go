package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "forest", cfg.Model.Provider)
	assert.Equal(t, "models/fetal_health.json", cfg.Model.Path)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MODEL_PROVIDER", "remote")
	t.Setenv("MODEL_URL", "http://inference:9000")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "remote", cfg.Model.Provider)
	assert.Equal(t, "http://inference:9000", cfg.Model.URL)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.RedisAddr())
	assert.True(t, cfg.OTEL.Enabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("OTEL_ENABLED", "sure")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.OTEL.Enabled)
}
