package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL string
	Port        string
	MetricsPort string
	LogLevel    string
	APISecret   string
	DataDir     string
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() *Config {
	// Missing .env is fine, the environment still applies
	_ = godotenv.Load()

	return &Config{
		DatabaseURL: getEnvOrDefault("DATABASE_URL", "host=localhost port=5432 user=postgres dbname=wishlist sslmode=disable"),
		Port:        getEnvOrDefault("PORT", "8080"),
		MetricsPort: getEnvOrDefault("METRICS_PORT", "9090"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		APISecret:   os.Getenv("API_SECRET"),
		DataDir:     getEnvOrDefault("DATA_DIR", "./data"),
	}
}

// NewLogger creates the application logger with the configured level.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return logger
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
