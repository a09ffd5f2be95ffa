// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first (when present) through 'joho/godotenv' so developers do not need to
export variables by hand.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (API client, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Etagere front-end.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote REST API every screen is a view over.
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://127.0.0.1:8001"`
	APITimeout time.Duration `env:"API_TIMEOUT"  envDefault:"10s"`

	// Key-Value Cache (Redis). Empty keeps the catalog cache in-process.
	RedisURL string `env:"REDIS_URL"`

	// CatalogCacheTTL is how long a catalog search page stays cached.
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	// SearchDebounce is the quiet period before a live search is sent upstream.
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"250ms"`

	// CookieSecure marks the session cookie Secure (set behind TLS).
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`

	// DefaultPageSize is the list page size when none is requested.
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
}

// # Configuration Loading

// Load reads an optional .env file, then parses environment variables into a [Config].
func Load() (*Config, error) {

	// A missing .env is the normal case outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current environment onto a [Config] without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects values the API client cannot work with.
func (c *Config) validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
	}

	if c.DefaultPageSize < 1 {
		return fmt.Errorf("config: DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
