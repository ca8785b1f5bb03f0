// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings. Values come from FABLE_* variables.
type Config struct {
	Provider             string        `envconfig:"PROVIDER" default:"openai"`
	Model                string        `envconfig:"MODEL" default:"gpt-3.5-turbo"`
	BaseURL              string        `envconfig:"BASE_URL"`
	RequestTimeout       time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	MaxInternalRevisions int           `envconfig:"MAX_INTERNAL_REVISIONS" default:"1"`
	MaxUserRevisions     int           `envconfig:"MAX_USER_REVISIONS" default:"2"`
	LogLevel             string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("fable", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.MaxInternalRevisions < 0 {
		return nil, fmt.Errorf("FABLE_MAX_INTERNAL_REVISIONS must not be negative, got %d", cfg.MaxInternalRevisions)
	}
	if cfg.MaxUserRevisions < 0 {
		return nil, fmt.Errorf("FABLE_MAX_USER_REVISIONS must not be negative, got %d", cfg.MaxUserRevisions)
	}
	return &cfg, nil
}
