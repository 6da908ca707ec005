// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Package config holds all application configuration.
//
// Configuration is loaded in three layers with Koanf v2:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (config.yaml)
//  3. Environment variables: override any setting
//
// Config is immutable after LoadWithKoanf() and safe for concurrent reads.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8675)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// CORSOrigins lists allowed CORS origins; "*" allows all.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs requests per RateLimitWindow per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// DataConfig holds source file paths and cleaning options.
//
// Environment Variables:
//   - TITLES_PATH: Catalog CSV of title records
//   - BASICS_PATH: External title metadata TSV (identifier, titles, year, type)
//   - RATINGS_PATH: External ratings TSV (identifier, rating, vote count)
//   - ESTIMATE_SEASON_MINUTES: Back-fill minutes for season-only records
//   - EPISODES_PER_SEASON, MINUTES_PER_EPISODE: Estimation factors
//   - STANDARDIZE_GENRES: Strip trailing genre qualifiers
//   - EXPLODE_GENRES: Build the row-per-genre projection
type DataConfig struct {
	TitlesPath  string `koanf:"titles_path"`
	BasicsPath  string `koanf:"basics_path"`
	RatingsPath string `koanf:"ratings_path"`

	EstimateSeasonMinutes bool `koanf:"estimate_season_minutes"`
	EpisodesPerSeason     int  `koanf:"episodes_per_season"`
	MinutesPerEpisode     int  `koanf:"minutes_per_episode"`
	StandardizeGenres     bool `koanf:"standardize_genres"`
	ExplodeGenres         bool `koanf:"explode_genres"`
}

// RecommendConfig holds recommendation endpoint defaults and bounds.
type RecommendConfig struct {
	// DefaultLimit is the result count used when the request omits one.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the requested result count.
	MaxLimit int `koanf:"max_limit"`
}

// CacheConfig holds query result cache settings.
type CacheConfig struct {
	// TTL is the recommendation result cache lifetime. The catalog itself
	// is cached until an explicit reload; this TTL only bounds per-query
	// result reuse.
	TTL time.Duration `koanf:"ttl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Server.RateLimitReqs)
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.TitlesPath == "" {
		return fmt.Errorf("TITLES_PATH is required")
	}
	if c.Data.BasicsPath == "" {
		return fmt.Errorf("BASICS_PATH is required")
	}
	if c.Data.RatingsPath == "" {
		return fmt.Errorf("RATINGS_PATH is required")
	}
	if c.Data.EpisodesPerSeason < 1 {
		return fmt.Errorf("EPISODES_PER_SEASON must be at least 1, got %d", c.Data.EpisodesPerSeason)
	}
	if c.Data.MinutesPerEpisode < 1 {
		return fmt.Errorf("MINUTES_PER_EPISODE must be at least 1, got %d", c.Data.MinutesPerEpisode)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultLimit < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be at least 1, got %d", c.Recommend.DefaultLimit)
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT (%d) must be >= RECOMMEND_DEFAULT_LIMIT (%d)",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
