// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import "github.com/tomtom215/marquee/internal/models"

// catalogIndex gives id lookups over a catalog slice. The first item wins
// when ids repeat.
type catalogIndex struct {
	items []*models.ContentItem
	byID  map[string]*models.ContentItem
}

func newCatalogIndex(catalog []models.ContentItem) *catalogIndex {
	idx := &catalogIndex{
		items: make([]*models.ContentItem, 0, len(catalog)),
		byID:  make(map[string]*models.ContentItem, len(catalog)),
	}
	for i := range catalog {
		item := &catalog[i]
		if _, dup := idx.byID[item.ID]; dup || item.ID == "" {
			continue
		}
		idx.byID[item.ID] = item
		idx.items = append(idx.items, item)
	}
	return idx
}

// watched resolves history entries to catalog items, keeping history order.
func (idx *catalogIndex) watched(history []models.WatchEntry) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(history))
	for _, h := range history {
		if item, ok := idx.byID[h.ContentID]; ok {
			out = append(out, *item)
		}
	}
	return out
}

// collect returns the catalog items for accumulated ids in accumulation
// order, skipping excluded ids, at most n.
func (idx *catalogIndex) collect(acc *accumulator, n int, excluded func(string) bool) []models.ContentItem {
	out := make([]models.ContentItem, 0, n)
	for _, id := range acc.ids {
		if len(out) >= n {
			break
		}
		item, ok := idx.byID[id]
		if !ok || excluded(id) {
			continue
		}
		out = append(out, *item)
	}
	return out
}

// pad appends items not yet in out, ordered by rank, until out has n items.
func (idx *catalogIndex) pad(out []models.ContentItem, n int, excluded func(string) bool,
	rank func([]*models.ContentItem) []*models.ContentItem,
) []models.ContentItem {
	taken := make(map[string]struct{}, len(out))
	for i := range out {
		taken[out[i].ID] = struct{}{}
	}

	candidates := make([]*models.ContentItem, 0, len(idx.items))
	for _, item := range idx.items {
		if _, ok := taken[item.ID]; ok || excluded(item.ID) {
			continue
		}
		candidates = append(candidates, item)
	}

	for _, item := range rank(candidates) {
		if len(out) >= n {
			break
		}
		out = append(out, *item)
	}
	return out
}
