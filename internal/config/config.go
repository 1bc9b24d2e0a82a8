// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration for the mount probe and the
// search provider.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ProbeConfig configures the mount responsiveness probe's worker pool.
type ProbeConfig struct {
	// PoolSize is the fixed number of concurrent blocking workers the
	// probe may have outstanding at any time. One worker is consumed per
	// path under check, regardless of how many callers are waiting on it.
	PoolSize int `yaml:"poolSize,omitempty"`

	// DefaultTimeout is used when a caller passes a zero timeout.
	DefaultTimeout time.Duration `yaml:"defaultTimeout,omitempty"`
}

// SearchConfig configures the external search-provider subprocess client.
type SearchConfig struct {
	// Binary is the indexer executable looked up on PATH. Defaults to "sc".
	Binary string `yaml:"binary,omitempty"`

	// BatchSize bounds how many hits are buffered before being flushed to
	// the caller as a batch.
	BatchSize int `yaml:"batchSize,omitempty"`

	// MaxResults is passed to the indexer as --limit.
	MaxResults int `yaml:"maxResults,omitempty"`
}

// Config is the full configuration for both components.
type Config struct {
	LogLevel string       `yaml:"logLevel,omitempty"`
	Probe    ProbeConfig  `yaml:"probe,omitempty"`
	Search   SearchConfig `yaml:"search,omitempty"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		LogLevel: "info",
		Probe: ProbeConfig{
			PoolSize:       3,
			DefaultTimeout: 0,
		},
		Search: SearchConfig{
			Binary:     "sc",
			BatchSize:  100,
			MaxResults: 500,
		},
	}
}

// Load reads a YAML configuration file, applying Defaults for any field
// left unset, then overlays any matching environment variables.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		overlay := Config{}
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		mergeInto(&cfg, overlay)
	}

	applyEnv(&cfg)

	if cfg.Probe.PoolSize <= 0 {
		return Config{}, fmt.Errorf("probe.poolSize must be positive, got %d", cfg.Probe.PoolSize)
	}
	return cfg, nil
}

func mergeInto(base *Config, overlay Config) {
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}
	if overlay.Probe.PoolSize != 0 {
		base.Probe.PoolSize = overlay.Probe.PoolSize
	}
	if overlay.Probe.DefaultTimeout != 0 {
		base.Probe.DefaultTimeout = overlay.Probe.DefaultTimeout
	}
	if overlay.Search.Binary != "" {
		base.Search.Binary = overlay.Search.Binary
	}
	if overlay.Search.BatchSize != 0 {
		base.Search.BatchSize = overlay.Search.BatchSize
	}
	if overlay.Search.MaxResults != 0 {
		base.Search.MaxResults = overlay.Search.MaxResults
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MOUNTPROBE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MOUNTPROBE_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Probe.PoolSize = n
		}
	}
	if v := os.Getenv("MOUNTPROBE_DEFAULT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Probe.DefaultTimeout = d
		}
	}
	if v := os.Getenv("MOUNTPROBE_SEARCH_BINARY"); v != "" {
		cfg.Search.Binary = v
	}
}
