// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/config"
)

// Config contains engine settings.
type Config struct {
	// MaxCount caps N for every request.
	MaxCount int

	// FavoriteSeeds is how many favorites seed provider recommendations.
	FavoriteSeeds int

	// HistorySeeds is how many recently watched titles seed "similar" lookups.
	HistorySeeds int

	// RequestTimeout bounds all provider calls of one request. Zero disables it.
	RequestTimeout time.Duration
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxCount:       100,
		FavoriteSeeds:  3,
		HistorySeeds:   3,
		RequestTimeout: 10 * time.Second,
	}
}

// ConfigFrom converts the application config section.
func ConfigFrom(c *config.RecommendConfig) Config {
	return Config{
		MaxCount:       c.MaxCount,
		FavoriteSeeds:  c.FavoriteSeeds,
		HistorySeeds:   c.HistorySeeds,
		RequestTimeout: c.RequestTimeout,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxCount < 1 {
		return fmt.Errorf("max count must be at least 1, got %d", c.MaxCount)
	}
	if c.FavoriteSeeds < 0 || c.HistorySeeds < 0 {
		return fmt.Errorf("seed counts must not be negative")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}
