// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

// Package config loads and validates Cinelog configuration.
//
// Configuration is loaded via Koanf v2 with layered sources, highest priority
// last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH override)
//  3. Environment variables (CINELOG_API_URL, CINELOG_STORAGE_PATH, ...)
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the root configuration for the client.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Images  ImagesConfig  `koanf:"images"`
	Storage StorageConfig `koanf:"storage"`
	Logging LoggingConfig `koanf:"logging"`
}

// APIConfig configures the HTTP gateway.
type APIConfig struct {
	// BaseURL is the backend API root, e.g. https://api.cinelog.example/api/v1
	BaseURL string `koanf:"base_url"`

	// Timeout bounds every outbound request.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the sustained outbound requests-per-second budget.
	// Zero disables client-side rate limiting.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the rate limiter burst size.
	RateBurst int `koanf:"rate_burst"`

	// BreakerEnabled wraps the gateway in a circuit breaker.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// ImagesConfig configures image URL derivation.
type ImagesConfig struct {
	// BaseURL is the image CDN root.
	BaseURL string `koanf:"base_url"`

	// Placeholder is returned for movies without artwork.
	Placeholder string `koanf:"placeholder"`
}

// StorageConfig configures durable client storage.
type StorageConfig struct {
	// Path is the BadgerDB directory holding tokens and local collections.
	Path string `koanf:"path"`

	// InMemory keeps storage ephemeral; state is lost on exit.
	InMemory bool `koanf:"in_memory"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for contradictions and malformed values.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative, got %f", c.API.RateLimit)
	}
	if c.API.RateLimit > 0 && c.API.RateBurst < 1 {
		return fmt.Errorf("api.rate_burst must be at least 1 when rate limiting is enabled")
	}
	if c.Images.BaseURL == "" {
		return fmt.Errorf("images.base_url is required")
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required unless storage.in_memory is set")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
