// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/wordalign/internal/logging"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"WORDALIGN_DB_PATH" envDefault:"./data/wordalign.db"`
	ServerHost string `env:"WORDALIGN_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"WORDALIGN_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"WORDALIGN_ENV" envDefault:"development"`
	LogLevel   string `env:"WORDALIGN_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"WORDALIGN_LOG_FORMAT" envDefault:"text"` // text or json

	// HTTP configuration
	CORSAllowedOrigins []string      `env:"WORDALIGN_CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	APIRateLimit       float64       `env:"WORDALIGN_API_RATE_LIMIT" envDefault:"100"` // Requests per second per IP, 0 disables
	APIRateBurst       int           `env:"WORDALIGN_API_RATE_BURST" envDefault:"200"`
	RequestTimeout     time.Duration `env:"WORDALIGN_REQUEST_TIMEOUT" envDefault:"30s"`

	// Seeding configuration
	DoSeed bool `env:"WORDALIGN_DO_SEED" envDefault:"false"` // Insert demo pairs into an empty database
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// RateLimitEnabled returns true if the API rate limiter should be installed.
func (c Config) RateLimitEnabled() bool {
	return c.APIRateLimit > 0
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c *Config) Validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("WORDALIGN_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("WORDALIGN_DB_PATH must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("WORDALIGN_LOG_LEVEL: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("WORDALIGN_LOG_FORMAT must be %q or %q, got %q",
			logging.FormatText, logging.FormatJSON, c.LogFormat)
	}
	if c.APIRateLimit < 0 {
		return fmt.Errorf("WORDALIGN_API_RATE_LIMIT must not be negative, got %v", c.APIRateLimit)
	}
	if c.RateLimitEnabled() && c.APIRateBurst < 1 {
		return fmt.Errorf("WORDALIGN_API_RATE_BURST must be at least 1 when rate limiting is enabled, got %d", c.APIRateBurst)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("WORDALIGN_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}

	origins := c.CORSAllowedOrigins[:0]
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSAllowedOrigins = origins
	return nil
}
