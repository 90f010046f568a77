package config

import (
	"os"
	"strings"
)

// Config holds the runtime configuration. Everything comes from the
// environment (optionally seeded from a .env file).
type Config struct {
	Environment string
	Port        string

	// Path to the groove model file. Empty leaves the groove module unregistered.
	GrooveModelPath string

	SentryDSN   string
	CORSOrigins []string
	LogLevel    string
}

func Load() *Config {
	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		Port:            getEnv("PORT", "8080"),
		GrooveModelPath: getEnv("GROOVE_MODEL_PATH", ""),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
