// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package idmap

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// Miss directions for metrics.
const (
	DirectionToInternal = "to_internal"
	DirectionToExternal = "to_external"
)

// legacyExternalRange bounds ids produced by the legacy mapping.
const legacyExternalRange = 1_000_000

// Resolver translates ids between the catalog and the provider.
type Resolver struct {
	store  Store
	legacy bool
	logger zerolog.Logger
}

// NewResolver creates a resolver over store. legacyFallback enables the
// hash/modulo mapping for ids with no explicit mapping; it produces
// arbitrary matches and is meant only for catalogs that were never indexed.
func NewResolver(store Store, legacyFallback bool) *Resolver {
	return &Resolver{store: store, legacy: legacyFallback, logger: logging.WithComponent("idmap")}
}

// Bind returns a Mapper for one request over the given catalog.
func (r *Resolver) Bind(catalog []models.ContentItem) *Mapper {
	m := &Mapper{
		resolver: r,
		catalog:  catalog,
		byExt:    make(map[string]string, len(catalog)),
		known:    make(map[string]struct{}, len(catalog)),
	}
	for i := range catalog {
		item := &catalog[i]
		m.known[item.ID] = struct{}{}
		if item.HasExternalID() {
			k := externalKey(item.ProviderMedia(), *item.ExternalID)
			if _, dup := m.byExt[k]; !dup {
				m.byExt[k] = item.ID
			}
		}
	}
	return m
}

// Mapper resolves ids for a single request. Lookups consult the catalog's
// own external ids, then the persisted table, then (when enabled) the
// legacy mapping. Unresolved ids are counted and reported as misses.
type Mapper struct {
	resolver *Resolver
	catalog  []models.ContentItem
	byExt    map[string]string
	known    map[string]struct{}
	warnOnce sync.Once
}

// Internal returns the catalog id for a provider id. Ids from the table that
// are not present in the bound catalog count as misses.
func (m *Mapper) Internal(ctx context.Context, media string, externalID int64) (string, bool) {
	if id, ok := m.byExt[externalKey(media, externalID)]; ok {
		return id, true
	}

	id, err := m.resolver.store.Internal(ctx, media, externalID)
	if err == nil {
		if _, ok := m.known[id]; ok {
			return id, true
		}
	} else if !errors.Is(err, ErrNotMapped) {
		m.resolver.logger.Warn().Err(err).Int64("external_id", externalID).Msg("Id mapping lookup failed")
	}

	if m.resolver.legacy && len(m.catalog) > 0 {
		m.warnLegacy()
		metrics.RecordIDMapLegacy(DirectionToInternal)
		idx := externalID % int64(len(m.catalog))
		if idx < 0 {
			idx += int64(len(m.catalog))
		}
		return m.catalog[idx].ID, true
	}

	metrics.RecordIDMapMiss(DirectionToInternal)
	return "", false
}

// External returns the provider media and id for a catalog item.
func (m *Mapper) External(ctx context.Context, item *models.ContentItem) (string, int64, bool) {
	if item.HasExternalID() {
		return item.ProviderMedia(), *item.ExternalID, true
	}

	mp, err := m.resolver.store.External(ctx, item.ID)
	if err == nil {
		return mp.Media, mp.ExternalID, true
	}
	if !errors.Is(err, ErrNotMapped) {
		m.resolver.logger.Warn().Err(err).Str("content_id", item.ID).Msg("Id mapping lookup failed")
	}

	if m.resolver.legacy {
		m.warnLegacy()
		metrics.RecordIDMapLegacy(DirectionToExternal)
		return item.ProviderMedia(), LegacyExternalID(item), true
	}

	metrics.RecordIDMapMiss(DirectionToExternal)
	return "", 0, false
}

func (m *Mapper) warnLegacy() {
	m.warnOnce.Do(func() {
		m.resolver.logger.Warn().Msg("Legacy id fallback in use; recommendations may reference unrelated titles")
	})
}

// LegacyExternalID derives a provider id by hashing title and year. It is
// deterministic but has no relation to the real provider title.
func LegacyExternalID(item *models.ContentItem) int64 {
	h := fnv.New32a()
	h.Write([]byte(item.Title + "|" + item.Year))
	return int64(h.Sum32()%legacyExternalRange) + 1
}
