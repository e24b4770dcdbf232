package app

import (
	"os"
	"time"

	"github.com/parleyhq/parley/pkg/cryptox"
)

type Config struct {
	DatabaseFile   string         // Path to the shared SQLite database file (default: ./chatbot.db)
	PasswordScheme cryptox.Scheme // Digest scheme for new passwords (sha256, argon2id) (default: sha256)
	ResetTTL       time.Duration  // Reset token validity window (default: 30m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	HousekeepingInterval time.Duration // Expired-token sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile:         getEnvOrDefault("PARLEY_DATABASE_FILE", "chatbot.db"),
		PasswordScheme:       cryptox.Scheme(getEnvOrDefault("PARLEY_PASSWORD_SCHEME", string(cryptox.SchemeSHA256))),
		ResetTTL:             getEnvDurationOrDefault("PARLEY_RESET_TTL", 30*time.Minute),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
