// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheMaintainer is the maintenance surface of *metacache.Gateway.
type CacheMaintainer interface {
	PurgeExpired(ctx context.Context, before time.Time) (int, error)
	Compact(ctx context.Context) error
}

// SweeperService deletes cache entries that have been expired for longer
// than the retention window, then compacts the store.
//
// Expired entries inside the window are kept so they can still be served
// stale while the provider is down.
type SweeperService struct {
	cache     CacheMaintainer
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	logger    zerolog.Logger
}

// NewSweeperService creates the sweeper. A non-positive interval means 1h.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSweeperService(cache CacheMaintainer, interval, retention time.Duration, logger zerolog.Logger) *SweeperService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention < 0 {
		retention = 0
	}
	return &SweeperService{
		cache:     cache,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		logger:    logger.With().Str("service", "cache-sweeper").Logger(),
	}
}

// Serve implements suture.Service.
func (s *SweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SweeperService) sweep(ctx context.Context) {
	n, err := s.cache.PurgeExpired(ctx, s.now().Add(-s.retention))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Cache purge failed")
		return
	}
	if n == 0 {
		return
	}
	if err := s.cache.Compact(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Cache compaction failed")
	}
	s.logger.Info().Int("purged", n).Msg("Expired cache entries purged")
}

// String returns the service name for logging.
func (s *SweeperService) String() string {
	return "cache-sweeper"
}
