package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "GROOVE_MODEL_PATH", "SENTRY_DSN", "CORS_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	assert := assert.New(t)
	assert.Equal("development", cfg.Environment)
	assert.Equal("8080", cfg.Port)
	assert.Equal("", cfg.GrooveModelPath)
	assert.Equal([]string{"*"}, cfg.CORSOrigins)
	assert.Equal("info", cfg.LogLevel)
	assert.False(cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("GROOVE_MODEL_PATH", "/models/groove.gob")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://example.com,")

	cfg := Load()

	assert := assert.New(t)
	assert.True(cfg.IsProduction())
	assert.Equal("9000", cfg.Port)
	assert.Equal("/models/groove.gob", cfg.GrooveModelPath)
	assert.Equal([]string{"http://localhost:3000", "https://example.com"}, cfg.CORSOrigins)
}
