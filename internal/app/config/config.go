// Package config loads process-wide configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrMissingSecretKey is returned when SECRET_KEY is absent. Token
// signing and verification are undefined without it, so startup must
// treat this as fatal.
var ErrMissingSecretKey = errors.New("SECRET_KEY is not set")

// Config holds the environment-derived settings for the service.
type Config struct {
	// Address is the host:port the HTTP server listens on.
	Address string `env:"RUN_ADDRESS" envDefault:":8080"`

	// SecretKey signs and verifies authentication tokens. Rotating it
	// invalidates all outstanding tokens.
	SecretKey string `env:"SECRET_KEY"`

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"600s"`

	// DatabaseDriver selects the storage backend: "sqlite" or "postgres".
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`

	// DatabaseDSN is the driver-specific connection string. For sqlite it
	// is the database file path.
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"task.db"`

	// RunMigrations controls schema auto-migration at startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"true"`

	// LegacyStatusCodes preserves the original API's anomalous success
	// codes (201 for login, user reads, updates and deletes). Set to
	// false for conventional 200s.
	LegacyStatusCodes bool `env:"LEGACY_STATUS_CODES" envDefault:"true"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}
	return cfg, nil
}
