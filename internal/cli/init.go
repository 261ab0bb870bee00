// Package cli holds the bootstrap shared by cmd/tally and
// cmd/tally-worker: env file, logger, validated config.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"tally/internal/config"
	applog "tally/internal/log"
)

// LoadEnvFile loads a .env file for local development. Missing files are
// fine in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the root logger and installs it as the slog default.
func SetupLogger(level string) *applog.Logger {
	logger := applog.New(applog.Options{Level: applog.ParseLevel(level)})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration or exits the process when it
// is unusable.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}
