// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/models"
)

// CatalogRefresher reloads the catalog. *catalog.Cache satisfies it.
type CatalogRefresher interface {
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

// IDIndexer persists catalog id mappings. *idmap.Indexer satisfies it.
type IDIndexer interface {
	Index(ctx context.Context, items []models.ContentItem) (int, error)
}

// CatalogServiceConfig configures the catalog indexer.
type CatalogServiceConfig struct {
	// RefreshInterval is how often the catalog is reloaded. Default: 5m.
	RefreshInterval time.Duration

	// RefreshTimeout bounds one reload plus indexing. Default: 2m.
	RefreshTimeout time.Duration
}

// CatalogService reloads the catalog on an interval and records the
// external ids of every loaded item in the id mapping table.
type CatalogService struct {
	catalog CatalogRefresher
	indexer IDIndexer
	config  CatalogServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewCatalogService creates the indexer service. indexer may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogService(c CatalogRefresher, indexer IDIndexer, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 5 * time.Minute
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 2 * time.Minute
	}
	return &CatalogService{
		catalog: c,
		indexer: indexer,
		config:  cfg,
		logger:  logger.With().Str("service", "catalog-indexer").Logger(),
		name:    "catalog-indexer",
	}
}

// Serve implements suture.Service. The first refresh runs immediately.
// Refresh failures are logged and retried on the next tick; the previous
// snapshot stays in use.
func (s *CatalogService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("refresh_interval", s.config.RefreshInterval).Msg("Catalog indexer starting")
	s.refresh(ctx)

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *CatalogService) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.config.RefreshTimeout)
	defer cancel()

	start := time.Now()
	snap, err := s.catalog.Refresh(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Catalog refresh failed")
		return
	}

	indexed := 0
	if s.indexer != nil {
		indexed, err = s.indexer.Index(ctx, snap.Items)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Id mapping index failed")
		}
	}

	s.logger.Debug().
		Int("items", len(snap.Items)).
		Int("indexed", indexed).
		Dur("duration", time.Since(start)).
		Msg("Catalog refreshed")
}

// String returns the service name for logging.
func (s *CatalogService) String() string {
	return s.name
}
