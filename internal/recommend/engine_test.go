// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/tomtom215/marquee/internal/idmap"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/normalize"
	"github.com/tomtom215/marquee/internal/provider"
)

var errProviderDown = errors.New("provider down")

// fakeProvider answers every endpoint from fixed id lists. A nil list means
// the call fails.
type fakeProvider struct {
	mu              sync.Mutex
	discover        []int64
	similar         []int64
	recommendations []int64
	popular         []int64
	calls           []string
	discoverQueries []provider.DiscoverQuery
}

func (f *fakeProvider) page(name string, ids []int64) (*provider.PagedResults, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	if ids == nil {
		return nil, errProviderDown
	}
	res := &provider.PagedResults{Page: 1}
	for _, id := range ids {
		res.Results = append(res.Results, provider.ListItem{ID: id})
	}
	return res, nil
}

func (f *fakeProvider) Discover(_ context.Context, media string, q provider.DiscoverQuery) (*provider.PagedResults, error) {
	f.mu.Lock()
	f.discoverQueries = append(f.discoverQueries, q)
	f.mu.Unlock()
	return f.page("discover/"+media, f.discover)
}

func (f *fakeProvider) Similar(_ context.Context, media string, id int64) (*provider.PagedResults, error) {
	return f.page(fmt.Sprintf("%s/%d/similar", media, id), f.similar)
}

func (f *fakeProvider) Recommendations(_ context.Context, media string, id int64) (*provider.PagedResults, error) {
	return f.page(fmt.Sprintf("%s/%d/recommendations", media, id), f.recommendations)
}

func (f *fakeProvider) Popular(_ context.Context, media string) (*provider.PagedResults, error) {
	return f.page(media+"/popular", f.popular)
}

func newTestEngine(t *testing.T, p Provider) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), p, idmap.NewResolver(idmap.NewMemoryStore(), false))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func item(id string, typ models.ContentType, year string, views int64, ext int64, genres ...string) models.ContentItem {
	it := models.ContentItem{ID: id, Title: id, Type: typ, Year: year, ViewCount: views, Genres: genres}
	if ext > 0 {
		it.ExternalID = models.Int64Ptr(ext)
	}
	return it
}

// sixItemCatalog spans two genres.
func sixItemCatalog() []models.ContentItem {
	return []models.ContentItem{
		item("m1", models.ContentTypeMovie, "2001", 5, 101, "Action"),
		item("m2", models.ContentTypeMovie, "2010", 50, 102, "Action"),
		item("m3", models.ContentTypeMovie, "2015", 50, 103, "Drama"),
		item("m4", models.ContentTypeMovie, "1999", 0, 104, "Drama"),
		item("m5", models.ContentTypeMovie, "2020", 0, 105, "Action"),
		item("m6", models.ContentTypeMovie, "unknown", 0, 106, "Drama"),
	}
}

func ids(items []models.ContentItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestRecommend_ProviderDownFallsBackToLocalPopularity(t *testing.T) {
	catalog := sixItemCatalog()
	e := newTestEngine(t, &fakeProvider{})

	// Local popularity over the five non-favorite items:
	// m3 (50, 2015), m2 (50, 2010), m5 (0, 2020), m4 (0, 1999), m6 (0, unknown).
	want := []string{"m3", "m2", "m5", "m4", "m6"}

	for n := 1; n <= 6; n++ {
		got, err := e.Recommend(context.Background(), Request{
			UserID:    "u1",
			Favorites: []models.ContentItem{catalog[0]},
			Catalog:   catalog,
			N:         n,
		})
		if err != nil {
			t.Fatalf("Recommend(n=%d) error = %v", n, err)
		}
		wantN := want[:min(n, len(want))]
		if fmt.Sprint(ids(got)) != fmt.Sprint(wantN) {
			t.Errorf("Recommend(n=%d) = %v, want %v", n, ids(got), wantN)
		}
	}
}

func TestRecommend_AnonymousUsesOnlyPopularity(t *testing.T) {
	p := &fakeProvider{popular: []int64{105, 999, 103}}
	e := newTestEngine(t, p)

	got, err := e.Recommend(context.Background(), Request{Catalog: sixItemCatalog(), N: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.calls) != 1 || p.calls[0] != "movie/popular" {
		t.Errorf("provider calls = %v, want only movie/popular", p.calls)
	}
	// Popular ids first (unknown 999 dropped), then local padding.
	if want := "[m5 m3 m2 m1]"; fmt.Sprint(ids(got)) != want {
		t.Errorf("Recommend() = %v, want %v", ids(got), want)
	}
}

func TestRecommend_PipelineOrder(t *testing.T) {
	catalog := sixItemCatalog()
	p := &fakeProvider{
		discover:        []int64{104},
		recommendations: []int64{105, 104},
		similar:         []int64{106},
		popular:         []int64{103},
	}
	e := newTestEngine(t, p)

	got, err := e.Recommend(context.Background(), Request{
		UserID:    "u1",
		History:   []models.WatchEntry{{ContentID: "m1"}, {ContentID: "missing"}},
		Favorites: []models.ContentItem{catalog[1]},
		Catalog:   catalog,
		N:         4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := "[m4 m5 m6 m3]"; fmt.Sprint(ids(got)) != want {
		t.Errorf("Recommend() = %v, want %v", ids(got), want)
	}
	if len(p.discoverQueries) != 1 || fmt.Sprint(p.discoverQueries[0].GenreIDs) != "[28]" {
		t.Errorf("discover queries = %+v, want genre 28", p.discoverQueries)
	}
	wantCalls := "[discover/movie movie/102/recommendations movie/101/similar movie/popular]"
	if fmt.Sprint(p.calls) != wantCalls {
		t.Errorf("calls = %v, want %v", p.calls, wantCalls)
	}
}

func TestRecommend_StrategyFailureDoesNotAbort(t *testing.T) {
	catalog := sixItemCatalog()
	p := &fakeProvider{similar: []int64{103}} // discover, recommendations, popular fail
	e := newTestEngine(t, p)

	got, err := e.Recommend(context.Background(), Request{
		UserID:  "u1",
		History: []models.WatchEntry{{ContentID: "m1"}},
		Catalog: catalog,
		N:       1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "m3" {
		t.Errorf("Recommend() = %v, want [m3] from history strategy", ids(got))
	}
}

func TestRecommend_StopsWhenFull(t *testing.T) {
	p := &fakeProvider{discover: []int64{102, 103, 104}, popular: []int64{105}}
	e := newTestEngine(t, p)

	_, err := e.Recommend(context.Background(), Request{
		UserID:  "u1",
		History: []models.WatchEntry{{ContentID: "m1"}},
		Catalog: sixItemCatalog(),
		N:       2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.calls) != 1 {
		t.Errorf("calls = %v, want only discover", p.calls)
	}
}

func TestRecommend_SeriesProfileDiscoversTV(t *testing.T) {
	catalog := []models.ContentItem{
		item("s1", models.ContentTypeSeries, "2011", 0, 1399, "Drama", "Fantasy"),
		item("s2", models.ContentTypeSeries, "2016", 0, 66732, "Sci-Fi"),
	}
	p := &fakeProvider{discover: []int64{66732}}
	e := newTestEngine(t, p)

	got, err := e.Recommend(context.Background(), Request{
		UserID:  "u",
		History: []models.WatchEntry{{ContentID: "s1"}},
		Catalog: catalog,
		N:       1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.calls) == 0 || p.calls[0] != "discover/tv" {
		t.Fatalf("calls = %v, want discover/tv first", p.calls)
	}
	if fmt.Sprint(p.discoverQueries[0].GenreIDs) != "[18 10765]" {
		t.Errorf("GenreIDs = %v, want [18 10765]", p.discoverQueries[0].GenreIDs)
	}
	if len(got) != 1 || got[0].ID != "s2" {
		t.Errorf("Recommend() = %v, want [s2]", ids(got))
	}
}

// animatedSeriesCatalog holds two animated series as the normalizer
// produces them: type animation, provider media tv.
func animatedSeriesCatalog() []models.ContentItem {
	n := normalize.New(normalize.Images{}, "en-US")
	animation := []provider.Genre{{ID: normalize.GenreAnimation, Name: "Animation"}}
	a := n.Series(&provider.SeriesDetails{ID: 1399, Name: "Arcane", FirstAirDate: "2021-11-06", Genres: animation})
	a.ID = "s1"
	b := n.Series(&provider.SeriesDetails{ID: 66732, Name: "Invincible", FirstAirDate: "2021-03-25", Genres: animation})
	b.ID = "s2"
	return []models.ContentItem{a, b}
}

func TestSimilarTo_AnimatedSeriesUsesTV(t *testing.T) {
	catalog := animatedSeriesCatalog()
	seed := catalog[0]
	if seed.Type != models.ContentTypeAnimation {
		t.Fatalf("seed Type = %q, want animation", seed.Type)
	}
	p := &fakeProvider{similar: []int64{66732}, recommendations: []int64{}, discover: []int64{}}
	e := newTestEngine(t, p)

	got, err := e.SimilarTo(context.Background(), &seed, catalog, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[tv/1399/similar]"; fmt.Sprint(p.calls) != want {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
	if len(got) != 1 || got[0].ID != "s2" {
		t.Errorf("SimilarTo() = %v, want [s2]", ids(got))
	}
}

func TestSimilarTo_AnimatedSeriesEraDiscoveryUsesTV(t *testing.T) {
	catalog := animatedSeriesCatalog()
	seed := catalog[0]
	p := &fakeProvider{similar: []int64{}, recommendations: []int64{}, discover: []int64{66732}}
	e := newTestEngine(t, p)

	if _, err := e.SimilarTo(context.Background(), &seed, catalog, 1); err != nil {
		t.Fatal(err)
	}
	want := "[tv/1399/similar tv/1399/recommendations discover/tv]"
	if fmt.Sprint(p.calls) != want {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
}

func TestRecommend_AnimatedSeriesProfileDiscoversTV(t *testing.T) {
	catalog := animatedSeriesCatalog()
	p := &fakeProvider{discover: []int64{66732}}
	e := newTestEngine(t, p)

	got, err := e.Recommend(context.Background(), Request{
		UserID:  "u",
		History: []models.WatchEntry{{ContentID: "s1"}},
		Catalog: catalog,
		N:       1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.calls) == 0 || p.calls[0] != "discover/tv" {
		t.Fatalf("calls = %v, want discover/tv first", p.calls)
	}
	if len(got) != 1 || got[0].ID != "s2" {
		t.Errorf("Recommend() = %v, want [s2]", ids(got))
	}
}

func TestRecommend_Counts(t *testing.T) {
	e := newTestEngine(t, &fakeProvider{})
	if _, err := e.Recommend(context.Background(), Request{N: -1}); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Recommend(N=-1) error = %v, want ErrInvalidCount", err)
	}
	got, err := e.Recommend(context.Background(), Request{Catalog: sixItemCatalog()})
	if err != nil || len(got) != 0 {
		t.Errorf("Recommend(N=0) = %v, %v; want empty", got, err)
	}
}

func TestSimilarTo_LocalScoreRanksCloseMatchFirst(t *testing.T) {
	seed := item("seed", models.ContentTypeMovie, "2000", 0, 0, "Action", "Thriller")
	catalog := []models.ContentItem{
		item("far", models.ContentTypeSeries, "1970", 100, 0, "Romance"),
		item("near", models.ContentTypeMovie, "2003", 0, 0, "Thriller", "Action"),
		seed,
	}
	e := newTestEngine(t, &fakeProvider{})

	got, err := e.SimilarTo(context.Background(), &seed, catalog, 5)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[near far]"; fmt.Sprint(ids(got)) != want {
		t.Errorf("SimilarTo() = %v, want %v", ids(got), want)
	}
}

func TestSimilarTo_ProviderOrderThenEra(t *testing.T) {
	catalog := sixItemCatalog()
	seed := catalog[0]
	p := &fakeProvider{
		similar:         []int64{101, 103},
		recommendations: []int64{103, 104},
		discover:        []int64{105},
	}
	e := newTestEngine(t, p)

	got, err := e.SimilarTo(context.Background(), &seed, catalog, 4)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[m3 m4 m5 m2]"; fmt.Sprint(ids(got)) != want {
		t.Errorf("SimilarTo() = %v, want %v", ids(got), want)
	}
	if len(p.discoverQueries) != 1 || p.discoverQueries[0].Year != 2001 {
		t.Errorf("discover queries = %+v, want year 2001", p.discoverQueries)
	}
}

// TestResultInvariants checks no duplicates, no excluded ids, |result| <= n,
// and |result| == n whenever the catalog can supply n eligible items.
func TestResultInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	types := []models.ContentType{models.ContentTypeMovie, models.ContentTypeSeries, models.ContentTypeDocumentary}
	genres := []string{"Action", "Drama", "Comedia", "Terror", "Western"}

	randomIDs := func(max int) []int64 {
		if rng.IntN(4) == 0 {
			return nil // failing call
		}
		out := make([]int64, rng.IntN(12))
		for i := range out {
			out[i] = int64(1 + rng.IntN(max+10)) // includes unmapped ids
		}
		return out
	}

	for iter := 0; iter < 200; iter++ {
		size := 1 + rng.IntN(25)
		catalog := make([]models.ContentItem, size)
		for i := range catalog {
			var ext int64
			if rng.IntN(3) > 0 {
				ext = int64(1 + rng.IntN(size))
			}
			catalog[i] = item(fmt.Sprintf("c%d", rng.IntN(size+5)), types[rng.IntN(len(types))],
				fmt.Sprint(1980+rng.IntN(45)), int64(rng.IntN(5)), ext, genres[rng.IntN(len(genres))])
		}
		p := &fakeProvider{
			discover:        randomIDs(size),
			similar:         randomIDs(size),
			recommendations: randomIDs(size),
			popular:         randomIDs(size),
		}
		e := newTestEngine(t, p)
		n := rng.IntN(size + 3)

		var favorites []models.ContentItem
		var history []models.WatchEntry
		if rng.IntN(2) == 0 {
			favorites = append(favorites, catalog[rng.IntN(size)])
			history = append(history, models.WatchEntry{ContentID: catalog[rng.IntN(size)].ID})
		}
		req := Request{UserID: "u", Favorites: favorites, History: history, Catalog: catalog, N: n}

		got, err := e.Recommend(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		excluded := map[string]bool{}
		for _, f := range favorites {
			excluded[f.ID] = true
		}
		for _, h := range history {
			excluded[h.ContentID] = true
		}
		checkResult(t, "Recommend", got, n, eligible(catalog, excluded))
		for _, it := range got {
			if excluded[it.ID] {
				t.Fatalf("Recommend returned excluded id %s", it.ID)
			}
		}

		seed := catalog[rng.IntN(size)]
		sim, err := e.SimilarTo(context.Background(), &seed, catalog, n)
		if err != nil {
			t.Fatal(err)
		}
		checkResult(t, "SimilarTo", sim, n, eligible(catalog, map[string]bool{seed.ID: true}))
		for _, it := range sim {
			if it.ID == seed.ID {
				t.Fatalf("SimilarTo returned its seed %s", seed.ID)
			}
		}
	}
}

func eligible(catalog []models.ContentItem, excluded map[string]bool) int {
	seen := map[string]bool{}
	for _, it := range catalog {
		if !excluded[it.ID] {
			seen[it.ID] = true
		}
	}
	return len(seen)
}

func checkResult(t *testing.T, name string, got []models.ContentItem, n, available int) {
	t.Helper()
	if len(got) > n {
		t.Fatalf("%s returned %d items, n = %d", name, len(got), n)
	}
	if want := min(n, available); len(got) != want {
		t.Fatalf("%s returned %d items, want %d", name, len(got), want)
	}
	seen := map[string]bool{}
	for _, it := range got {
		if seen[it.ID] {
			t.Fatalf("%s returned duplicate id %s", name, it.ID)
		}
		seen[it.ID] = true
	}
}
