// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"sort"

	"github.com/tomtom215/marquee/internal/models"
)

// MaxTopGenres is the number of genres kept in a profile.
const MaxTopGenres = 5

// Profile summarizes a user's taste. It is computed per request and never
// stored.
type Profile struct {
	TopGenres       []string
	TopContentTypes []models.ContentType
	TopMedia        []string
	WatchedIDs      map[string]struct{}
	FavoriteIDs     map[string]struct{}
}

// Excludes reports whether id was watched or favorited.
func (p *Profile) Excludes(id string) bool {
	if _, ok := p.WatchedIDs[id]; ok {
		return true
	}
	_, ok := p.FavoriteIDs[id]
	return ok
}

// ExtractProfile counts genres and content types over the union (by id) of
// watched items and favorites. Ties keep first-appearance order, watched
// items first.
func ExtractProfile(watched, favorites []models.ContentItem) *Profile {
	p := &Profile{
		WatchedIDs:  make(map[string]struct{}, len(watched)),
		FavoriteIDs: make(map[string]struct{}, len(favorites)),
	}

	genres := newCounter[string]()
	types := newCounter[models.ContentType]()
	media := newCounter[string]()
	seen := make(map[string]struct{}, len(watched)+len(favorites))

	count := func(item *models.ContentItem) {
		if _, dup := seen[item.ID]; dup {
			return
		}
		seen[item.ID] = struct{}{}
		for _, g := range item.Genres {
			genres.add(g)
		}
		if item.Type != "" {
			types.add(item.Type)
			media.add(item.ProviderMedia())
		}
	}

	for i := range watched {
		p.WatchedIDs[watched[i].ID] = struct{}{}
		count(&watched[i])
	}
	for i := range favorites {
		p.FavoriteIDs[favorites[i].ID] = struct{}{}
		count(&favorites[i])
	}

	p.TopGenres = genres.top(MaxTopGenres)
	p.TopContentTypes = types.top(0)
	p.TopMedia = media.top(0)
	return p
}

// counter tallies values and remembers first appearance for tie-breaks.
type counter[T comparable] struct {
	counts map[T]int
	order  []T
}

func newCounter[T comparable]() *counter[T] {
	return &counter[T]{counts: make(map[T]int)}
}

func (c *counter[T]) add(v T) {
	if _, ok := c.counts[v]; !ok {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

// top returns values by descending count; limit 0 returns all.
func (c *counter[T]) top(limit int) []T {
	out := append([]T(nil), c.order...)
	sort.SliceStable(out, func(i, j int) bool {
		return c.counts[out[i]] > c.counts[out[j]]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
