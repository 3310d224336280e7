// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/idmap"
	"github.com/tomtom215/marquee/internal/metacache"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/normalize"
	"github.com/tomtom215/marquee/internal/provider"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Recommender builds recommendation and similarity lists.
// *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) ([]models.ContentItem, error)
	SimilarTo(ctx context.Context, seed *models.ContentItem, catalog []models.ContentItem, n int) ([]models.ContentItem, error)
}

// CacheAdmin is the metadata cache surface exposed over HTTP.
// *metacache.Gateway satisfies it.
type CacheAdmin interface {
	Stats(ctx context.Context) (*metacache.Stats, error)
	ClearCache(ctx context.Context, prefix string) (int, error)
	SetTTL(hours int) error
	Ready(ctx context.Context) error
}

// Catalog supplies the current catalog snapshot and user context.
// *catalog.Cache satisfies it.
type Catalog interface {
	Current(ctx context.Context) (*catalog.Snapshot, error)
	UserContext(ctx context.Context, userID string) (*models.UserContext, error)
}

// Deps are the collaborators the handlers need.
type Deps struct {
	Engine     Recommender
	Cache      CacheAdmin
	Catalog    Catalog
	Provider   *provider.Service
	Normalizer *normalize.Normalizer
	Resolver   *idmap.Resolver
	Recommend  config.RecommendConfig
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommendations and similar titles
//   - handlers_cache.go: cache stats, clear and TTL
//   - handlers_metadata.go: single title lookup
//   - handlers_health.go: liveness and readiness
type Handler struct {
	engine     Recommender
	cache      CacheAdmin
	catalog    Catalog
	provider   *provider.Service
	normalizer *normalize.Normalizer
	resolver   *idmap.Resolver

	defaultCount int
	maxCount     int
	startTime    time.Time
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	maxCount := d.Recommend.MaxCount
	if maxCount <= 0 {
		maxCount = recommend.DefaultConfig().MaxCount
	}
	defaultCount := d.Recommend.DefaultCount
	if defaultCount <= 0 || defaultCount > maxCount {
		defaultCount = min(20, maxCount)
	}
	return &Handler{
		engine:       d.Engine,
		cache:        d.Cache,
		catalog:      d.Catalog,
		provider:     d.Provider,
		normalizer:   d.Normalizer,
		resolver:     d.Resolver,
		defaultCount: defaultCount,
		maxCount:     maxCount,
		startTime:    time.Now(),
	}
}
