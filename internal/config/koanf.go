// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. Defaults load
// first, then the config file, then environment variables.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api",
			Timeout:        30 * time.Second,
			RateLimit:      10,
			RateBurst:      20,
			BreakerEnabled: false,
		},
		Images: ImagesConfig{
			BaseURL:     "https://image.tmdb.org/t/p",
			Placeholder: "/placeholder-movie.png",
		},
		Storage: StorageConfig{
			Path:     defaultStoragePath(),
			InMemory: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// defaultStoragePath puts durable state under the OS user config directory,
// falling back to a dotted directory in $HOME.
func defaultStoragePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "cinelog", "state")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cinelog/state"
	}
	return filepath.Join(home, ".cinelog", "state")
}

// Load builds configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if present)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file, honoring CONFIG_PATH first.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps CINELOG_* environment variable names (lowercased) to
// koanf config paths.
var envMappings = map[string]string{
	"cinelog_api_url":        "api.base_url",
	"cinelog_api_timeout":    "api.timeout",
	"cinelog_api_rate_limit": "api.rate_limit",
	"cinelog_api_rate_burst": "api.rate_burst",
	"cinelog_api_breaker":    "api.breaker_enabled",
	"cinelog_image_base_url": "images.base_url",
	"cinelog_image_fallback": "images.placeholder",
	"cinelog_storage_path":   "storage.path",
	"cinelog_storage_memory": "storage.in_memory",
	"cinelog_log_level":      "logging.level",
	"cinelog_log_format":     "logging.format",
	"cinelog_log_caller":     "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config
// paths. Unknown variables map to empty string and are ignored, so unrelated
// process environment never leaks into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
