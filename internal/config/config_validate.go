// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateOffline is Validate without the provider credential, for tools
// that work on local stores and never call the provider.
func (c *Config) ValidateOffline() error {
	return c.validate(false)
}

func (c *Config) validate(requireToken bool) error {
	validators := []func() error{
		func() error { return c.validateProvider(requireToken) },
		c.validateCache,
		c.validateCatalog,
		c.validateRecommend,
		c.validateJobs,
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateProvider(requireToken bool) error {
	if requireToken && c.Provider.AccessToken == "" {
		return fmt.Errorf("PROVIDER_ACCESS_TOKEN is required")
	}
	if err := validateAPIURL(c.Provider.BaseURL, "PROVIDER_BASE_URL"); err != nil {
		return err
	}
	if err := validateAPIURL(c.Provider.ImageBaseURL, "PROVIDER_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if len(c.Provider.SupportedLanguages) == 0 {
		return fmt.Errorf("PROVIDER_LANGUAGES must list at least one locale")
	}
	if !containsFold(c.Provider.SupportedLanguages, c.Provider.DefaultLanguage) {
		return fmt.Errorf("PROVIDER_LANGUAGE %q must be one of PROVIDER_LANGUAGES", c.Provider.DefaultLanguage)
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive")
	}
	if c.Provider.RateLimit <= 0 || c.Provider.RateBurst < 1 {
		return fmt.Errorf("PROVIDER_RATE_LIMIT must be positive and PROVIDER_RATE_BURST at least 1")
	}
	if c.Provider.BreakerFailureRatio <= 0 || c.Provider.BreakerFailureRatio > 1 {
		return fmt.Errorf("PROVIDER_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	return nil
}

var validCacheBackends = map[string]bool{
	"badger": true,
	"sqlite": true,
	"memory": true,
}

func (c *Config) validateCache() error {
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: badger, sqlite, memory")
	}
	if c.Cache.Backend != "memory" && c.Cache.Path == "" {
		return fmt.Errorf("CACHE_PATH is required for the %s backend", c.Cache.Backend)
	}
	if c.Cache.TTL < time.Hour {
		return fmt.Errorf("CACHE_TTL must be at least 1h")
	}
	if c.Cache.StaleRetention < 0 {
		return fmt.Errorf("CACHE_STALE_RETENTION must not be negative")
	}
	if c.Cache.SweepInterval < time.Minute {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be at least 1m")
	}
	if c.Cache.StatsSampleSize < 1 || c.Cache.StatsSampleSize > 10000 {
		return fmt.Errorf("CACHE_STATS_SAMPLE_SIZE must be between 1 and 10000")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case "file":
		if c.Catalog.Path == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=file")
		}
	case "postgres":
		if err := validatePostgresURL(c.Catalog.DatabaseURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of: file, postgres")
	}
	if c.Catalog.RefreshInterval < time.Minute {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must be at least 1m")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxCount < 1 || r.MaxCount > 500 {
		return fmt.Errorf("RECOMMEND_MAX_COUNT must be between 1 and 500")
	}
	if r.DefaultCount < 1 || r.DefaultCount > r.MaxCount {
		return fmt.Errorf("RECOMMEND_DEFAULT_COUNT must be between 1 and RECOMMEND_MAX_COUNT")
	}
	if r.FavoriteSeeds < 0 || r.HistorySeeds < 0 {
		return fmt.Errorf("RECOMMEND_FAVORITE_SEEDS and RECOMMEND_HISTORY_SEEDS must not be negative")
	}
	if r.RequestTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateJobs() error {
	if !c.Jobs.Enabled {
		return nil
	}
	if c.Jobs.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when JOBS_ENABLED=true")
	}
	if c.Jobs.Concurrency < 1 {
		return fmt.Errorf("JOBS_CONCURRENCY must be at least 1")
	}
	if c.Jobs.Queue == "" {
		return fmt.Errorf("JOBS_QUEUE must not be empty")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// ShouldWarnAboutCORS reports a wildcard CORS origin in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && containsFold(c.Security.CORSOrigins, "*")
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
