// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/marquee/internal/idmap"
	"github.com/tomtom215/marquee/internal/models"
)

// countingStore records every internal id looked up through External.
type countingStore struct {
	idmap.Store
	mu     sync.Mutex
	lookup []string
}

func (c *countingStore) External(ctx context.Context, internalID string) (idmap.Mapping, error) {
	c.mu.Lock()
	c.lookup = append(c.lookup, internalID)
	c.mu.Unlock()
	return c.Store.External(ctx, internalID)
}

func seedIDs(seeds []seed) []int64 {
	out := make([]int64, len(seeds))
	for i, s := range seeds {
		out[i] = s.externalID
	}
	return out
}

func TestResolveSeeds(t *testing.T) {
	catalog := sixItemCatalog()
	noExt := item("x1", models.ContentTypeMovie, "2003", 0, 0, "Action")
	mapper := idmap.NewResolver(idmap.NewMemoryStore(), false).Bind(catalog)

	tests := []struct {
		name    string
		items   []models.ContentItem
		reverse bool
		limit   int
		want    string
	}{
		{"first three", catalog, false, 3, "[101 102 103]"},
		{"last three", catalog, true, 3, "[106 105 104]"},
		{"rewatch counts once", []models.ContentItem{catalog[2], catalog[3], catalog[0], catalog[1], catalog[0]}, true, 3, "[101 102 104]"},
		{"unmapped favorite uses a slot", []models.ContentItem{catalog[0], noExt, catalog[1], catalog[2]}, false, 3, "[101 102]"},
		{"limit zero", catalog, false, 0, "[]"},
		{"fewer items than limit", catalog[:2], false, 3, "[101 102]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveSeeds(context.Background(), mapper, tt.items, tt.reverse, tt.limit)
			if fmt.Sprint(seedIDs(got)) != tt.want {
				t.Errorf("resolveSeeds() = %v, want %v", seedIDs(got), tt.want)
			}
		})
	}
}

func TestResolveSeeds_StopsAtLimit(t *testing.T) {
	store := &countingStore{Store: idmap.NewMemoryStore()}
	var items []models.ContentItem
	for i := 1; i <= 10; i++ {
		items = append(items, item(fmt.Sprintf("u%d", i), models.ContentTypeMovie, "2000", 0, 0, "Drama"))
	}
	mapper := idmap.NewResolver(store, false).Bind(items)

	resolveSeeds(context.Background(), mapper, items, false, 3)

	if got := strings.Join(store.lookup, ","); got != "u1,u2,u3" {
		t.Errorf("External lookups = %s, want u1,u2,u3", got)
	}
}

func TestRecommend_FavoriteSeedsAreFirstThreeFavorites(t *testing.T) {
	catalog := sixItemCatalog()
	noExt := item("x1", models.ContentTypeMovie, "2003", 0, 0, "Action")
	catalog = append(catalog, noExt)
	p := &fakeProvider{}
	e := newTestEngine(t, p)

	_, err := e.Recommend(context.Background(), Request{
		UserID:    "u1",
		Favorites: []models.ContentItem{catalog[0], noExt, catalog[1], catalog[2]},
		Catalog:   catalog,
		N:         5,
	})
	if err != nil {
		t.Fatal(err)
	}

	var recs []string
	for _, c := range p.calls {
		if strings.HasSuffix(c, "/recommendations") {
			recs = append(recs, c)
		}
	}
	if fmt.Sprint(recs) != "[movie/101/recommendations movie/102/recommendations]" {
		t.Errorf("recommendation calls = %v, want 101 and 102 only", recs)
	}
}

func TestNewEngine_RequiresDependencies(t *testing.T) {
	resolver := idmap.NewResolver(idmap.NewMemoryStore(), false)
	if _, err := NewEngine(DefaultConfig(), &fakeProvider{}, nil); err == nil {
		t.Error("NewEngine(nil resolver) error = nil, want error")
	}
	if _, err := NewEngine(DefaultConfig(), nil, resolver); err == nil {
		t.Error("NewEngine(nil provider) error = nil, want error")
	}
}
