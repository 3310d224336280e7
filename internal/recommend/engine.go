// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/idmap"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/normalize"
	"github.com/tomtom215/marquee/internal/provider"
)

// ErrInvalidCount is returned for negative item counts.
var ErrInvalidCount = errors.New("count must not be negative")

// Engine produces recommendation lists. It is safe for concurrent use; all
// request state lives in the call.
type Engine struct {
	cfg      Config
	provider Provider
	resolver *idmap.Resolver
	logger   zerolog.Logger
}

// NewEngine creates an engine. Provider calls are expected to go through
// the metadata cache.
func NewEngine(cfg Config, p Provider, resolver *idmap.Resolver) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if p == nil {
		return nil, errors.New("recommend: provider is required")
	}
	if resolver == nil {
		return nil, errors.New("recommend: id resolver is required")
	}
	return &Engine{
		cfg:      cfg,
		provider: p,
		resolver: resolver,
		logger:   logging.WithComponent("recommend"),
	}, nil
}

// Recommend returns up to req.N catalog items for the user, never items the
// user watched or favorited. Provider failures degrade the result instead
// of failing it.
func (e *Engine) Recommend(ctx context.Context, req Request) ([]models.ContentItem, error) {
	n, err := e.count(req.N)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []models.ContentItem{}, nil
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	idx := newCatalogIndex(req.Catalog)
	logger := logging.Enrich(ctx, e.logger).With().
		Str("pipeline", PipelineRecommend).
		Str("user_id", req.UserID).
		Int("n", n).
		Logger()

	profile := &Profile{}
	if !req.anonymous() {
		profile = ExtractProfile(idx.watched(req.History), req.Favorites)
	}

	r := &run{
		pipeline: PipelineRecommend,
		provider: e.provider,
		mapper:   e.resolver.Bind(req.Catalog),
		acc:      newAccumulator(n, profile.Excludes),
		logger:   logger,
	}

	strategies := []strategy{{StrategyPopularity, popularity}}
	if !req.anonymous() {
		strategies = []strategy{
			{StrategyGenreDiscovery, genreDiscovery(profile)},
			{StrategyFavorites, e.favorites(req.Favorites)},
			{StrategyHistory, e.history(idx.watched(req.History))},
			{StrategyPopularity, popularity},
		}
	}
	runStrategies(ctx, r, strategies)

	out := idx.collect(r.acc, n, profile.Excludes)
	if len(out) < n {
		out = idx.pad(out, n, profile.Excludes, rankByLocalPopularity)
	}

	metrics.RecordResultSize(PipelineRecommend, len(out))
	logger.Debug().Int("accumulated", r.acc.Len()).Int("returned", len(out)).Msg("Recommendations built")
	return out, nil
}

// SimilarTo returns up to n catalog items like seed. The seed never appears
// in the result.
func (e *Engine) SimilarTo(ctx context.Context, seedItem *models.ContentItem, catalog []models.ContentItem, n int) ([]models.ContentItem, error) {
	n, err := e.count(n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []models.ContentItem{}, nil
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	idx := newCatalogIndex(catalog)
	logger := logging.Enrich(ctx, e.logger).With().
		Str("pipeline", PipelineSimilar).
		Str("content_id", seedItem.ID).
		Int("n", n).
		Logger()

	notSeed := func(id string) bool { return id == seedItem.ID }
	r := &run{
		pipeline: PipelineSimilar,
		provider: e.provider,
		mapper:   e.resolver.Bind(catalog),
		acc:      newAccumulator(n, notSeed),
		logger:   logger,
	}

	var seeds []seed
	if media, ext, ok := r.mapper.External(ctx, seedItem); ok {
		seeds = []seed{{media: media, externalID: ext}}
	}

	runStrategies(ctx, r, []strategy{
		{StrategySimilar, func(ctx context.Context, r *run) error {
			return lookupEach(ctx, r, seeds, 1, r.provider.Similar)
		}},
		{StrategyRecommendations, func(ctx context.Context, r *run) error {
			return lookupEach(ctx, r, seeds, 1, r.provider.Recommendations)
		}},
		{StrategyEraDiscovery, eraDiscovery(seedItem, seeds)},
	})

	out := idx.collect(r.acc, n, notSeed)
	if len(out) < n {
		out = idx.pad(out, n, notSeed, func(c []*models.ContentItem) []*models.ContentItem {
			return rankByContentScore(seedItem, c)
		})
		metrics.RecordStrategy(PipelineSimilar, StrategyLocal, metrics.OutcomeOK)
	}

	metrics.RecordResultSize(PipelineSimilar, len(out))
	logger.Debug().Int("accumulated", r.acc.Len()).Int("returned", len(out)).Msg("Similar items built")
	return out, nil
}

func (e *Engine) count(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	return min(n, e.cfg.MaxCount), nil
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.cfg.RequestTimeout)
}

// genreDiscovery queries discover with the profile's top genres, for the
// profile's most frequent provider media.
func genreDiscovery(p *Profile) func(context.Context, *run) error {
	return func(ctx context.Context, r *run) error {
		media := models.MediaMovie
		if len(p.TopMedia) > 0 {
			media = p.TopMedia[0]
		}
		ids := normalize.GenreIDs(p.TopGenres, media)
		if len(ids) == 0 {
			return errNoSeeds
		}
		res, err := r.provider.Discover(ctx, media, provider.DiscoverQuery{GenreIDs: ids})
		if err != nil {
			return err
		}
		r.merge(ctx, media, res)
		return nil
	}
}

// favorites asks for provider recommendations for the first favorites.
// Favorites without a provider id still use up a slot.
func (e *Engine) favorites(favs []models.ContentItem) func(context.Context, *run) error {
	return func(ctx context.Context, r *run) error {
		seeds := resolveSeeds(ctx, r.mapper, favs, false, e.cfg.FavoriteSeeds)
		return lookupEach(ctx, r, seeds, e.cfg.FavoriteSeeds, r.provider.Recommendations)
	}
}

// history asks for titles similar to the most recently watched items.
func (e *Engine) history(watched []models.ContentItem) func(context.Context, *run) error {
	return func(ctx context.Context, r *run) error {
		seeds := resolveSeeds(ctx, r.mapper, watched, true, e.cfg.HistorySeeds)
		return lookupEach(ctx, r, seeds, e.cfg.HistorySeeds, r.provider.Similar)
	}
}

func popularity(ctx context.Context, r *run) error {
	res, err := r.provider.Popular(ctx, models.MediaMovie)
	if err != nil {
		return err
	}
	r.merge(ctx, models.MediaMovie, res)
	return nil
}

// eraDiscovery queries discover with the seed's genres constrained to the
// seed's year.
func eraDiscovery(item *models.ContentItem, seeds []seed) func(context.Context, *run) error {
	return func(ctx context.Context, r *run) error {
		media := item.ProviderMedia()
		if len(seeds) > 0 {
			media = seeds[0].media
		}
		ids := normalize.GenreIDs(item.Genres, media)
		if len(ids) == 0 {
			return errNoSeeds
		}
		q := provider.DiscoverQuery{GenreIDs: ids}
		if y, ok := item.YearInt(); ok {
			q.Year = y
		}
		res, err := r.provider.Discover(ctx, media, q)
		if err != nil {
			return err
		}
		r.merge(ctx, media, res)
		return nil
	}
}

// resolveSeeds maps the first limit distinct items to provider ids, dropping
// items without one. reverse walks items from the end. Repeated ids (a
// rewatch) count once, and items past the limit are never looked up.
func resolveSeeds(ctx context.Context, m *idmap.Mapper, items []models.ContentItem, reverse bool, limit int) []seed {
	if limit <= 0 {
		return nil
	}
	seen := make(map[string]struct{}, limit)
	seeds := make([]seed, 0, limit)
	for i := range items {
		if len(seen) >= limit {
			break
		}
		item := &items[i]
		if reverse {
			item = &items[len(items)-1-i]
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		if media, ext, ok := m.External(ctx, item); ok {
			seeds = append(seeds, seed{media: media, externalID: ext})
		}
	}
	return seeds
}
