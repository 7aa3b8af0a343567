// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order
// of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelpick/config.yaml",
	"/etc/reelpick/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
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

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so random environment variables cannot
// pollute the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		"catalog_dataset":       "catalog.dataset",
		"catalog_core_path":     "catalog.core_path",
		"catalog_extended_path": "catalog.extended_path",

		"storage_path":      "storage.path",
		"storage_in_memory": "storage.in_memory",

		"recommend_default_limit":  "recommend.default_limit",
		"recommend_max_limit":      "recommend.max_limit",
		"recommend_genre_weight":   "recommend.genre_weight",
		"recommend_creator_weight": "recommend.creator_weight",
		"recommend_cast_weight":    "recommend.cast_weight",
		"recommend_year_weight":    "recommend.year_weight",
		"recommend_best_share":     "recommend.best_share",

		"sampler_min_batch":     "sampler.min_batch",
		"sampler_max_batch":     "sampler.max_batch",
		"sampler_recent_cap":    "sampler.recent_cap",
		"sampler_recent_retain": "sampler.recent_retain",
		"sampler_seed":          "sampler.seed",
		"sampler_starter_bias":  "sampler.starter_bias",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
