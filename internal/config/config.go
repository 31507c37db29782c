// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

// Package config loads process configuration from the environment.
// Configuration is read once at startup and immutable thereafter.
package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/samber/oops"
)

// Config holds the process configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `env:"DATABASE_URL"`

	// TokenSecret signs and verifies bearer tokens. The issuer and
	// verifier share this one secret; a missing secret is fatal at
	// startup.
	TokenSecret string `env:"AUTHGATE_TOKEN_SECRET"`

	// ListenAddr is the API listen address.
	ListenAddr string `env:"AUTHGATE_LISTEN_ADDR" envDefault:":8080"`

	// MetricsAddr is the metrics/health listen address. Empty disables
	// the observability server.
	MetricsAddr string `env:"AUTHGATE_METRICS_ADDR" envDefault:"127.0.0.1:9100"`

	// CORSOrigin is the allowed browser origin. Empty disables CORS
	// headers.
	CORSOrigin string `env:"AUTHGATE_CORS_ORIGIN"`

	// LogFormat selects the slog handler: json or text.
	LogFormat string `env:"AUTHGATE_LOG_FORMAT" envDefault:"json"`
}

// Load parses and validates configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, oops.Code("CONFIG_PARSE_FAILED").Wrap(err)
	}

	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.TokenSecret = strings.TrimSpace(cfg.TokenSecret)

	if cfg.DatabaseURL == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL is required")
	}
	if cfg.TokenSecret == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("AUTHGATE_TOKEN_SECRET is required")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, oops.Code("CONFIG_INVALID").
			Errorf("AUTHGATE_LOG_FORMAT must be 'json' or 'text', got %q", cfg.LogFormat)
	}

	return &cfg, nil
}
