// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import "time"

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Built-in defaults
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/marquee/config.yaml)
//  3. Environment variables
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Provider  ProviderConfig  `koanf:"provider"`
	Cache     CacheConfig     `koanf:"cache"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Jobs      JobsConfig      `koanf:"jobs"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ProviderConfig configures the external metadata provider (TMDB v3 API).
//
// Environment Variables:
//   - PROVIDER_BASE_URL: API root (default: https://api.themoviedb.org/3)
//   - PROVIDER_ACCESS_TOKEN: bearer token (required)
//   - PROVIDER_LANGUAGE: default response locale (default: es-ES)
//   - PROVIDER_LANGUAGES: comma-separated supported locales
//   - PROVIDER_TIMEOUT: per-request timeout (default: 10s)
//   - PROVIDER_RATE_LIMIT: sustained requests per second (default: 40)
//   - PROVIDER_RATE_BURST: limiter burst (default: 20)
//   - PROVIDER_IMAGE_BASE_URL: artwork CDN root
type ProviderConfig struct {
	BaseURL            string        `koanf:"base_url"`
	AccessToken        string        `koanf:"access_token"`
	DefaultLanguage    string        `koanf:"default_language"`
	SupportedLanguages []string      `koanf:"supported_languages"`
	Timeout            time.Duration `koanf:"timeout"`
	RateLimit          float64       `koanf:"rate_limit"`
	RateBurst          int           `koanf:"rate_burst"`
	ImageBaseURL       string        `koanf:"image_base_url"`
	PosterSize         string        `koanf:"poster_size"`
	BackdropSize       string        `koanf:"backdrop_size"`

	// Circuit breaker trips after BreakerMinRequests with at least
	// BreakerFailureRatio failures and stays open for BreakerOpenTimeout.
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerOpenTimeout  time.Duration `koanf:"breaker_open_timeout"`
}

// CacheConfig configures the metadata cache store.
//
// Environment Variables:
//   - CACHE_BACKEND: badger, sqlite or memory (default: badger)
//   - CACHE_PATH: badger directory or sqlite file (default: /data/metacache)
//   - CACHE_TTL: entry lifetime (default: 24h)
//   - CACHE_STALE_RETENTION: how long expired entries are kept for stale fallback (default: 168h)
//   - CACHE_SWEEP_INTERVAL: sweeper period (default: 1h)
//   - CACHE_STATS_SAMPLE_SIZE: entries sampled for the size estimate (default: 100)
type CacheConfig struct {
	Backend         string        `koanf:"backend"`
	Path            string        `koanf:"path"`
	TTL             time.Duration `koanf:"ttl"`
	StaleRetention  time.Duration `koanf:"stale_retention"`
	SweepInterval   time.Duration `koanf:"sweep_interval"`
	StatsSampleSize int           `koanf:"stats_sample_size"`
}

// CatalogConfig configures where content and user history come from.
type CatalogConfig struct {
	// Source is "file" (JSON or YAML snapshot) or "postgres".
	Source          string        `koanf:"source"`
	Path            string        `koanf:"path"`
	DatabaseURL     string        `koanf:"database_url"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	// IDMapPath is the badger directory for the id mapping table.
	// Empty keeps the table in memory.
	IDMapPath string `koanf:"idmap_path"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	DefaultCount   int           `koanf:"default_count"`
	MaxCount       int           `koanf:"max_count"`
	FavoriteSeeds  int           `koanf:"favorite_seeds"`
	HistorySeeds   int           `koanf:"history_seeds"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	// LegacyIDFallback enables the hash/modulo id mapping for titles that are
	// missing from the mapping table. Results may be wrong; keep it off.
	LegacyIDFallback bool `koanf:"legacy_id_fallback"`
}

// JobsConfig configures background refresh of stale cache entries.
type JobsConfig struct {
	Enabled     bool          `koanf:"enabled"`
	RedisAddr   string        `koanf:"redis_addr"`
	Concurrency int           `koanf:"concurrency"`
	Queue       string        `koanf:"queue"`
	MaxRetry    int           `koanf:"max_retry"`
	UniqueFor   time.Duration `koanf:"unique_for"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
