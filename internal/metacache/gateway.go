// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultStatsSampleSize bounds how many entries Stats reads to estimate size.
const DefaultStatsSampleSize = 100

var errGatewayClosed = errors.New("metacache gateway closed")

// Upstream performs a live provider request.
type Upstream interface {
	Get(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error)
}

// StaleHook is notified whenever an expired entry is served because the
// provider failed.
type StaleHook interface {
	StaleServed(ctx context.Context, endpoint string, params map[string]string)
}

// Config holds gateway settings.
type Config struct {
	TTL             time.Duration
	StatsSampleSize int
}

// Gateway is a read-through cache in front of the metadata provider.
// Responses are stored per (endpoint, params) key and served until they
// expire; when the provider fails an expired entry is served instead of an
// error. It is safe for concurrent use.
type Gateway struct {
	upstream Upstream
	open     OpenFunc

	mu      sync.RWMutex
	store   Store
	closed  bool
	connect singleflight.Group

	ttl        atomic.Int64
	sampleSize int
	staleHook  atomic.Pointer[StaleHook]

	now    func() time.Time
	logger zerolog.Logger
}

// NewGateway creates a gateway. The store is opened on first use. upstream
// may be nil for tooling that only inspects or clears the cache.
func NewGateway(cfg Config, upstream Upstream, open OpenFunc) *Gateway {
	sample := cfg.StatsSampleSize
	if sample <= 0 {
		sample = DefaultStatsSampleSize
	}
	g := &Gateway{
		upstream:   upstream,
		open:       open,
		sampleSize: sample,
		now:        time.Now,
		logger:     logging.WithComponent("metacache"),
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	g.ttl.Store(int64(ttl))
	return g
}

// SetStaleHook registers h for stale-served notifications. nil removes it.
func (g *Gateway) SetStaleHook(h StaleHook) {
	if h == nil {
		g.staleHook.Store(nil)
		return
	}
	g.staleHook.Store(&h)
}

// TTL returns the lifetime given to newly written entries.
func (g *Gateway) TTL() time.Duration {
	return time.Duration(g.ttl.Load())
}

// SetTTL changes the lifetime of entries written from now on. Existing
// entries keep their expiry.
func (g *Gateway) SetTTL(hours int) error {
	if hours <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, hours)
	}
	g.ttl.Store(int64(time.Duration(hours) * time.Hour))
	g.logger.Info().Int("ttl_hours", hours).Msg("Metadata cache TTL updated")
	return nil
}

// Fetch returns the provider response for endpoint and params, from cache
// when a fresh entry exists. forceRefresh skips the cache lookup but still
// falls back to a stale entry when the provider fails.
func (g *Gateway) Fetch(ctx context.Context, endpoint string, params map[string]string, forceRefresh bool) (json.RawMessage, error) {
	key := KeyFor(endpoint, params)
	now := g.now()

	store, storeErr := g.acquire(ctx)
	if storeErr != nil {
		g.logger.Warn().Err(storeErr).Str("key", key).Msg("Metadata cache unavailable, fetching live")
	}

	var cached *Entry
	if store != nil && !forceRefresh {
		cached = g.lookup(ctx, store, key)
		if cached != nil && cached.Valid(now) {
			metrics.RecordCacheRequest(endpoint, metrics.ResultHit)
			return cached.Payload, nil
		}
	}
	metrics.RecordCacheRequest(endpoint, metrics.ResultMiss)

	if g.upstream == nil {
		return nil, ErrNoUpstream
	}

	payload, err := g.upstream.Get(ctx, endpoint, params)
	if err == nil {
		if store != nil {
			g.write(ctx, store, key, endpoint, payload, now)
		}
		return payload, nil
	}

	if store != nil && cached == nil {
		cached = g.lookup(context.WithoutCancel(ctx), store, key)
	}
	if cached == nil {
		metrics.RecordCacheRequest(endpoint, metrics.ResultError)
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, endpoint, err)
	}

	metrics.RecordCacheRequest(endpoint, metrics.ResultStale)
	logger := logging.Enrich(ctx, g.logger)
	logger.Warn().
		Err(err).
		Str("key", key).
		Time("expired_at", cached.ExpiresAt).
		Msg("Provider failed, serving stale cache entry")
	if h := g.staleHook.Load(); h != nil {
		(*h).StaleServed(ctx, endpoint, params)
	}
	return cached.Payload, nil
}

// Refresh re-fetches endpoint from the provider and overwrites the cached
// entry. Unlike Fetch it never falls back to a stale entry, so a failed
// provider call is returned to the caller.
func (g *Gateway) Refresh(ctx context.Context, endpoint string, params map[string]string) error {
	if g.upstream == nil {
		return ErrNoUpstream
	}
	store, err := g.acquire(ctx)
	if err != nil {
		return err
	}
	payload, err := g.upstream.Get(ctx, endpoint, params)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, endpoint, err)
	}
	g.write(ctx, store, KeyFor(endpoint, params), endpoint, payload, g.now())
	return nil
}

func (g *Gateway) lookup(ctx context.Context, store Store, key string) *Entry {
	e, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			g.logger.Warn().Err(err).Str("key", key).Msg("Metadata cache read failed")
		}
		return nil
	}
	return e
}

func (g *Gateway) write(ctx context.Context, store Store, key, endpoint string, payload json.RawMessage, now time.Time) {
	e := &Entry{
		Key:       key,
		Endpoint:  endpoint,
		Payload:   payload,
		CreatedAt: now.UTC(),
		ExpiresAt: now.Add(g.TTL()).UTC(),
	}
	err := store.Put(context.WithoutCancel(ctx), e)
	metrics.RecordCacheWrite(err)
	if err != nil {
		g.logger.Warn().Err(err).Str("key", key).Msg("Metadata cache write failed")
	}
}

// acquire returns the open store, opening it on first use. Concurrent first
// callers share one open attempt; a failed attempt is retried by the next
// caller.
func (g *Gateway) acquire(ctx context.Context) (Store, error) {
	g.mu.RLock()
	store, closed := g.store, g.closed
	g.mu.RUnlock()
	if closed {
		return nil, errGatewayClosed
	}
	if store != nil {
		return store, nil
	}

	v, err, _ := g.connect.Do("store", func() (any, error) {
		g.mu.RLock()
		existing := g.store
		g.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		s, err := g.open(context.WithoutCancel(ctx))
		metrics.RecordStoreConnect(err)
		if err != nil {
			return nil, fmt.Errorf("open metadata cache store: %w", err)
		}

		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed {
			s.Close()
			return nil, errGatewayClosed
		}
		g.store = s
		g.logger.Info().Msg("Metadata cache store opened")
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Store), nil
}

// ClearCache deletes entries whose key starts with prefix; "" deletes all.
func (g *Gateway) ClearCache(ctx context.Context, prefix string) (int, error) {
	store, err := g.acquire(ctx)
	if err != nil {
		return 0, err
	}
	n, err := store.DeletePrefix(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	g.logger.Info().Str("prefix", prefix).Int("deleted", n).Msg("Metadata cache cleared")
	return n, nil
}

// PurgeExpired deletes entries that expired before the given time.
func (g *Gateway) PurgeExpired(ctx context.Context, before time.Time) (int, error) {
	store, err := g.acquire(ctx)
	if err != nil {
		return 0, err
	}
	n, err := store.DeleteExpiredBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("purge expired: %w", err)
	}
	metrics.MetacachePurged.Add(float64(n))
	return n, nil
}

// Compact reclaims disk space on stores that support it.
func (g *Gateway) Compact(ctx context.Context) error {
	store, err := g.acquire(ctx)
	if err != nil {
		return err
	}
	if c, ok := store.(interface{ RunGC() error }); ok {
		return c.RunGC()
	}
	return nil
}

// Ready reports whether the backing store can be opened.
func (g *Gateway) Ready(ctx context.Context) error {
	_, err := g.acquire(ctx)
	return err
}

// Close releases the store. Further calls fail.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	if g.store == nil {
		return nil
	}
	err := g.store.Close()
	g.store = nil
	return err
}
