// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate, got: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad dataset", func(c *Config) { c.Catalog.Dataset = "full" }},
		{"missing core path", func(c *Config) { c.Catalog.CorePath = "" }},
		{"max limit below default", func(c *Config) { c.Recommend.MaxLimit = 5 }},
		{"zero weights", func(c *Config) {
			c.Recommend.GenreWeight = 0
			c.Recommend.CreatorWeight = 0
			c.Recommend.CastWeight = 0
			c.Recommend.YearWeight = 0
		}},
		{"blend above one", func(c *Config) { c.Recommend.BestShare = 1.5 }},
		{"max batch below min", func(c *Config) { c.Sampler.MaxBatch = 10 }},
		{"retain above cap", func(c *Config) { c.Sampler.RecentRetain = 200 }},
		{"no storage path", func(c *Config) { c.Storage.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestInMemoryStorageNeedsNoPath(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.InMemory = true
	cfg.Storage.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("in-memory storage must not require a path: %v", err)
	}
}

func TestCatalogPathSelection(t *testing.T) {
	c := CatalogConfig{
		Dataset:      DatasetCore,
		CorePath:     "core.json",
		ExtendedPath: "extended.json",
	}
	if got := c.Path(); got != "core.json" {
		t.Errorf("core dataset path = %q, want core.json", got)
	}

	c.Dataset = DatasetExtended
	if got := c.Path(); got != "extended.json" {
		t.Errorf("extended dataset path = %q, want extended.json", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_DATASET", "extended")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SAMPLER_STARTER_BIAS", "false")
	// Ensure no stray config file interferes.
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Catalog.Dataset != DatasetExtended {
		t.Errorf("dataset = %q, want extended", cfg.Catalog.Dataset)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Sampler.StarterBias {
		t.Error("starter bias should be disabled by env override")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 4242\ncatalog:\n  dataset: extended\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 4242 {
		t.Errorf("port = %d, want 4242", cfg.Server.Port)
	}
	if cfg.Catalog.Dataset != DatasetExtended {
		t.Errorf("dataset = %q, want extended", cfg.Catalog.Dataset)
	}
	// Untouched values keep defaults.
	if cfg.Recommend.DefaultLimit != 20 {
		t.Errorf("default limit = %d, want 20", cfg.Recommend.DefaultLimit)
	}
}

func TestEnvTransformSkipsUnknown(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("unmapped env var must be skipped, got %q", got)
	}
	if got := envTransformFunc("HTTP_PORT"); got != "server.port" {
		t.Errorf("HTTP_PORT mapped to %q, want server.port", got)
	}
}
