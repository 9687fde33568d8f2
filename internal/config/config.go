// Package config loads server settings from OUTREACH_-prefixed environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the server reads at startup. Timing thresholds
// (OUTREACH_SLOW_QUERY_MS, OUTREACH_SLOW_REQUEST_MS) are read lazily by the
// instrumentation layers and are deliberately not duplicated here.
type Config struct {
	Addr   string `env:"ADDR" envDefault:":8080"`
	DBPath string `env:"DB_PATH" envDefault:"outreach.db"`
	Env    string `env:"ENV" envDefault:"development"`

	// CSRFKey is a 64-char hex secret; required in production.
	CSRFKey string `env:"CSRF_KEY"`

	// Seed account created when the database holds no participants.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// ElevatedRoles overrides the accepted manager role spellings.
	ElevatedRoles []string `env:"ELEVATED_ROLES" envSeparator:","`

	// ResendKey enables donation receipt emails when set.
	ResendKey string `env:"RESEND_KEY"`
	EmailFrom string `env:"EMAIL_FROM" envDefault:"Outreach <receipts@outreach.example>"`

	RateLimitPerSecond int `env:"RATE_LIMIT" envDefault:"10"`
}

// Load parses the environment into a Config.
// PRE: none
// POST: Returns a Config with defaults applied, or an error on malformed values
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "OUTREACH_"}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the server runs with production hardening.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
