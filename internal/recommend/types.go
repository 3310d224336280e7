// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/provider"
)

// Pipeline names used in logs and metrics.
const (
	PipelineRecommend = "recommend"
	PipelineSimilar   = "similar"
)

// Strategy names.
const (
	StrategyGenreDiscovery  = "genre_discovery"
	StrategyFavorites       = "favorites"
	StrategyHistory         = "history"
	StrategyPopularity      = "popularity"
	StrategySimilar         = "similar"
	StrategyRecommendations = "recommendations"
	StrategyEraDiscovery    = "era_discovery"
	StrategyLocal           = "local"
)

// Provider is the subset of the provider facade the engine uses. Every call
// goes through the metadata cache.
type Provider interface {
	Discover(ctx context.Context, media string, q provider.DiscoverQuery) (*provider.PagedResults, error)
	Similar(ctx context.Context, media string, id int64) (*provider.PagedResults, error)
	Recommendations(ctx context.Context, media string, id int64) (*provider.PagedResults, error)
	Popular(ctx context.Context, media string) (*provider.PagedResults, error)
}

// Request is one recommendation request.
type Request struct {
	// UserID may be empty for anonymous requests.
	UserID string

	// History is ordered oldest first. Entries whose content id is not in
	// Catalog are ignored.
	History []models.WatchEntry

	Favorites []models.ContentItem

	// Catalog is the full local catalog; results are always drawn from it.
	Catalog []models.ContentItem

	Genres []models.Genre
	Tags   []models.Tag

	// N is the number of items wanted.
	N int
}

// anonymous reports whether the request carries no personal signal.
func (r *Request) anonymous() bool {
	return r.UserID == "" && len(r.History) == 0 && len(r.Favorites) == 0
}
