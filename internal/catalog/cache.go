// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// Cache keeps the most recent snapshot of a Source in memory. Readers never
// block on a refresh; a failed refresh keeps the previous snapshot.
type Cache struct {
	src     Source
	current atomic.Pointer[Snapshot]
	load    singleflight.Group
	logger  zerolog.Logger
}

// NewCache wraps src. Nothing is loaded until Current or Refresh is called.
func NewCache(src Source) *Cache {
	return &Cache{src: src, logger: logging.WithComponent("catalog")}
}

// Current returns the cached snapshot, loading it on first use.
func (c *Cache) Current(ctx context.Context) (*Snapshot, error) {
	if s := c.current.Load(); s != nil {
		return s, nil
	}
	return c.Refresh(ctx)
}

// Refresh reloads the snapshot from the source. Concurrent callers share
// one load.
func (c *Cache) Refresh(ctx context.Context) (*Snapshot, error) {
	v, err, _ := c.load.Do("snapshot", func() (any, error) {
		s, err := c.src.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		c.current.Store(s)
		c.logger.Debug().
			Int("items", len(s.Items)).
			Int("genres", len(s.Genres)).
			Int("tags", len(s.Tags)).
			Msg("Catalog snapshot loaded")
		return s, nil
	})
	if err != nil {
		if prev := c.current.Load(); prev != nil {
			c.logger.Warn().Err(err).Msg("Catalog refresh failed, keeping previous snapshot")
			return prev, nil
		}
		return nil, err
	}
	return v.(*Snapshot), nil
}

// UserContext passes through to the source.
func (c *Cache) UserContext(ctx context.Context, userID string) (*models.UserContext, error) {
	return c.src.UserContext(ctx, userID)
}
