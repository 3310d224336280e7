// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultSupportedLanguages are the locales the provider is asked for.
var DefaultSupportedLanguages = []string{
	"es-ES", "es-MX", "en-US", "en-GB", "fr-FR", "de-DE", "it-IT", "pt-BR", "pt-PT", "ja-JP",
}

func defaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:             "https://api.themoviedb.org/3",
			DefaultLanguage:     "es-ES",
			SupportedLanguages:  append([]string(nil), DefaultSupportedLanguages...),
			Timeout:             10 * time.Second,
			RateLimit:           40,
			RateBurst:           20,
			ImageBaseURL:        "https://image.tmdb.org/t/p",
			PosterSize:          "w500",
			BackdropSize:        "w1280",
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
			BreakerOpenTimeout:  2 * time.Minute,
		},
		Cache: CacheConfig{
			Backend:         "badger",
			Path:            "/data/metacache",
			TTL:             24 * time.Hour,
			StaleRetention:  7 * 24 * time.Hour,
			SweepInterval:   time.Hour,
			StatsSampleSize: 100,
		},
		Catalog: CatalogConfig{
			Source:          "file",
			Path:            "/data/catalog.json",
			RefreshInterval: 15 * time.Minute,
			IDMapPath:       "/data/idmap",
		},
		Recommend: RecommendConfig{
			DefaultCount:   20,
			MaxCount:       100,
			FavoriteSeeds:  3,
			HistorySeeds:   3,
			RequestTimeout: 10 * time.Second,
		},
		Jobs: JobsConfig{
			Enabled:     false,
			RedisAddr:   "127.0.0.1:6379",
			Concurrency: 4,
			Queue:       "metacache",
			MaxRetry:    5,
			UniqueFor:   10 * time.Minute,
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
//
// Precedence is ENV > File > Defaults. The result is validated.
func LoadWithKoanf() (*Config, error) {
	return loadWithKoanf((*Config).Validate)
}

// LoadOffline loads configuration like LoadWithKoanf but validates it with
// ValidateOffline, so PROVIDER_ACCESS_TOKEN may be unset.
func LoadOffline() (*Config, error) {
	return loadWithKoanf((*Config).ValidateOffline)
}

func loadWithKoanf(validate func(*Config) error) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// PROVIDER_ACCESS_TOKEN -> provider.access_token, CACHE_TTL -> cache.ttl
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
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

// sliceConfigPaths are parsed as comma-separated lists when they come from the environment.
var sliceConfigPaths = []string{
	"provider.supported_languages",
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"provider_base_url":              "provider.base_url",
	"provider_access_token":          "provider.access_token",
	"tmdb_access_token":              "provider.access_token",
	"provider_language":              "provider.default_language",
	"provider_languages":             "provider.supported_languages",
	"provider_timeout":               "provider.timeout",
	"provider_rate_limit":            "provider.rate_limit",
	"provider_rate_burst":            "provider.rate_burst",
	"provider_image_base_url":        "provider.image_base_url",
	"provider_poster_size":           "provider.poster_size",
	"provider_backdrop_size":         "provider.backdrop_size",
	"provider_breaker_min_requests":  "provider.breaker_min_requests",
	"provider_breaker_failure_ratio": "provider.breaker_failure_ratio",
	"provider_breaker_open_timeout":  "provider.breaker_open_timeout",

	"cache_backend":           "cache.backend",
	"cache_path":              "cache.path",
	"cache_ttl":               "cache.ttl",
	"cache_stale_retention":   "cache.stale_retention",
	"cache_sweep_interval":    "cache.sweep_interval",
	"cache_stats_sample_size": "cache.stats_sample_size",

	"catalog_source":           "catalog.source",
	"catalog_path":             "catalog.path",
	"catalog_database_url":     "catalog.database_url",
	"database_url":             "catalog.database_url",
	"catalog_refresh_interval": "catalog.refresh_interval",
	"idmap_path":               "catalog.idmap_path",

	"recommend_default_count":      "recommend.default_count",
	"recommend_max_count":          "recommend.max_count",
	"recommend_favorite_seeds":     "recommend.favorite_seeds",
	"recommend_history_seeds":      "recommend.history_seeds",
	"recommend_request_timeout":    "recommend.request_timeout",
	"recommend_legacy_id_fallback": "recommend.legacy_id_fallback",

	"jobs_enabled":     "jobs.enabled",
	"redis_addr":       "jobs.redis_addr",
	"jobs_concurrency": "jobs.concurrency",
	"jobs_queue":       "jobs.queue",
	"jobs_max_retry":   "jobs.max_retry",
	"jobs_unique_for":  "jobs.unique_for",

	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - PROVIDER_ACCESS_TOKEN -> provider.access_token
//   - CACHE_BACKEND -> cache.backend
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
