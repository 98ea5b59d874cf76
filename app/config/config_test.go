package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("METRICS_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("API_SECRET", "")
	t.Setenv("DATA_DIR", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Empty(t, cfg.APISecret)
	assert.Contains(t, cfg.DatabaseURL, "dbname=wishlist")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("API_SECRET", "hunter2")
	t.Setenv("DATA_DIR", "/var/lib/wishlist")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "hunter2", cfg.APISecret)
	assert.Equal(t, "/var/lib/wishlist", cfg.DataDir)
}

func TestNewLoggerLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("not-a-level").GetLevel())
}
