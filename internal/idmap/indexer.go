// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package idmap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// Open returns a badger-backed store at path, or an in-memory store when
// path is empty.
func Open(path string) (Store, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}
	return OpenBadgerStore(path)
}

// Indexer records mappings for catalog items that carry a provider id.
type Indexer struct {
	store  Store
	now    func() time.Time
	logger zerolog.Logger
}

// NewIndexer creates an indexer writing to store.
func NewIndexer(store Store) *Indexer {
	return &Indexer{store: store, now: time.Now, logger: logging.WithComponent("idmap")}
}

// Index writes one mapping per item with an external id and returns how
// many were written. Items without one are skipped.
func (ix *Indexer) Index(ctx context.Context, items []models.ContentItem) (int, error) {
	now := ix.now().UTC()
	n := 0
	for i := range items {
		item := &items[i]
		if !item.HasExternalID() || item.ID == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		m := Mapping{
			InternalID: item.ID,
			Media:      item.ProviderMedia(),
			ExternalID: *item.ExternalID,
			UpdatedAt:  now,
		}
		if err := ix.store.Put(ctx, m); err != nil {
			return n, fmt.Errorf("index %s: %w", item.ID, err)
		}
		n++
	}
	ix.logger.Debug().Int("indexed", n).Int("catalog_size", len(items)).Msg("Catalog id mappings indexed")
	return n, nil
}
