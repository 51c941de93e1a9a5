package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "glamstore", cfg.MongoDatabase)
	assert.Equal(t, 168, cfg.SessionTTLHours)
	assert.True(t, cfg.SeedCatalog)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "70000")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad session ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL_HOURS", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("default secret in production", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		_, err := Load()
		assert.Error(t, err)
	})
}
