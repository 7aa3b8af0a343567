// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package config provides layered configuration for Reelpick.
//
// Configuration is loaded with Koanf v2 in three layers with clear
// precedence: environment variables override the optional YAML config
// file, which overrides built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Dataset names selectable via catalog.dataset. The split mirrors the
// curated seed data: core is the widely-recognized subset, extended is
// the full catalog.
const (
	DatasetCore     = "core"
	DatasetExtended = "extended"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Storage   StorageConfig   `koanf:"storage"`
	Recommend RecommendConfig `koanf:"recommend"`
	Sampler   SamplerConfig   `koanf:"sampler"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig configures the zerolog global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig selects and locates the catalog dataset. The dataset
// toggle is an explicit configuration value passed to the loader at
// startup, never a flag read deep inside loading logic.
type CatalogConfig struct {
	Dataset      string `koanf:"dataset" validate:"oneof=core extended"`
	CorePath     string `koanf:"core_path" validate:"required"`
	ExtendedPath string `koanf:"extended_path" validate:"required"`
}

// Path returns the catalog file path for the configured dataset.
func (c CatalogConfig) Path() string {
	if c.Dataset == DatasetExtended {
		return c.ExtendedPath
	}
	return c.CorePath
}

// StorageConfig configures judgment persistence.
type StorageConfig struct {
	// Path is the BadgerDB directory for durable judgments.
	Path string `koanf:"path"`

	// InMemory disables durable storage; judgments then live only for
	// the session. Intended for tests and ephemeral runs.
	InMemory bool `koanf:"in_memory"`
}

// RecommendConfig configures the similarity engine and generator.
// The factor weights and the best/average blend are the documented
// default policy; they are exposed here rather than hardcoded.
type RecommendConfig struct {
	DefaultLimit int `koanf:"default_limit" validate:"min=1"`
	MaxLimit     int `koanf:"max_limit" validate:"min=1"`

	GenreWeight   float64 `koanf:"genre_weight" validate:"gte=0"`
	CreatorWeight float64 `koanf:"creator_weight" validate:"gte=0"`
	CastWeight    float64 `koanf:"cast_weight" validate:"gte=0"`
	YearWeight    float64 `koanf:"year_weight" validate:"gte=0"`

	// BestShare is the weight of the best match in the best+average
	// blend; the mean receives 1-BestShare.
	BestShare float64 `koanf:"best_share" validate:"gte=0,lte=1"`
}

// SamplerConfig configures batch sampling.
type SamplerConfig struct {
	MinBatch     int   `koanf:"min_batch" validate:"min=1"`
	MaxBatch     int   `koanf:"max_batch" validate:"min=1"`
	RecentCap    int   `koanf:"recent_cap" validate:"min=1"`
	RecentRetain int   `koanf:"recent_retain" validate:"min=0"`
	Seed         int64 `koanf:"seed"`

	// StarterBias biases the very first batch toward widely-recognized
	// items to maximize early judgment yield.
	StarterBias bool `koanf:"starter_bias"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    8750,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			Dataset:      DatasetCore,
			CorePath:     "data/core-films.json",
			ExtendedPath: "data/seed-films.json",
		},
		Storage: StorageConfig{
			Path:     "data/judgments",
			InMemory: false,
		},
		Recommend: RecommendConfig{
			DefaultLimit:  20,
			MaxLimit:      100,
			GenreWeight:   5.0,
			CreatorWeight: 3.0,
			CastWeight:    2.0,
			YearWeight:    1.0,
			BestShare:     0.7,
		},
		Sampler: SamplerConfig{
			MinBatch:     15,
			MaxBatch:     20,
			RecentCap:    100,
			RecentRetain: 50,
			Seed:         0, // 0 = derive from wall clock
			StarterBias:  true,
		},
	}
}

// Validate checks the configuration for consistency. Struct tags cover
// field-level constraints; cross-field rules are checked explicitly.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("recommend.max_limit (%d) must be >= recommend.default_limit (%d)",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}

	weightSum := c.Recommend.GenreWeight + c.Recommend.CreatorWeight +
		c.Recommend.CastWeight + c.Recommend.YearWeight
	if weightSum <= 0 {
		return fmt.Errorf("recommend factor weights must sum to a positive value, got %g", weightSum)
	}

	if c.Sampler.MaxBatch < c.Sampler.MinBatch {
		return fmt.Errorf("sampler.max_batch (%d) must be >= sampler.min_batch (%d)",
			c.Sampler.MaxBatch, c.Sampler.MinBatch)
	}
	if c.Sampler.RecentRetain > c.Sampler.RecentCap {
		return fmt.Errorf("sampler.recent_retain (%d) must be <= sampler.recent_cap (%d)",
			c.Sampler.RecentRetain, c.Sampler.RecentCap)
	}

	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required unless storage.in_memory is set")
	}

	return nil
}
