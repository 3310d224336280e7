// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func TestExtractProfile(t *testing.T) {
	watched := []models.ContentItem{
		item("a", models.ContentTypeSeries, "2010", 0, 0, "Drama", "Crime"),
		item("b", models.ContentTypeMovie, "2011", 0, 0, "Comedy"),
		item("a", models.ContentTypeSeries, "2010", 0, 0, "Drama", "Crime"), // rewatch
	}
	favorites := []models.ContentItem{
		item("c", models.ContentTypeSeries, "2012", 0, 0, "Crime", "Western", "War", "Music", "Horror"),
		item("b", models.ContentTypeMovie, "2011", 0, 0, "Comedy"), // also watched
	}

	p := ExtractProfile(watched, favorites)

	// Crime 2, then ties by first appearance.
	if got, want := fmt.Sprint(p.TopGenres), "[Crime Drama Comedy Western War]"; got != want {
		t.Errorf("TopGenres = %s, want %s", got, want)
	}
	if got, want := fmt.Sprint(p.TopContentTypes), "[series movie]"; got != want {
		t.Errorf("TopContentTypes = %s, want %s", got, want)
	}
	if got, want := fmt.Sprint(p.TopMedia), "[tv movie]"; got != want {
		t.Errorf("TopMedia = %s, want %s", got, want)
	}
	if len(p.WatchedIDs) != 2 || len(p.FavoriteIDs) != 2 {
		t.Errorf("WatchedIDs = %v, FavoriteIDs = %v", p.WatchedIDs, p.FavoriteIDs)
	}
	for _, id := range []string{"a", "b", "c"} {
		if !p.Excludes(id) {
			t.Errorf("Excludes(%q) = false", id)
		}
	}
	if p.Excludes("z") {
		t.Error("Excludes(z) = true")
	}
}

func TestExtractProfile_Empty(t *testing.T) {
	p := ExtractProfile(nil, nil)
	if len(p.TopGenres) != 0 || len(p.TopContentTypes) != 0 || p.Excludes("x") {
		t.Errorf("empty profile = %+v", p)
	}
}

func TestContentScore(t *testing.T) {
	seed := models.ContentItem{ID: "s", Type: models.ContentTypeMovie, Year: "2000",
		Genres: []string{"Action", "Drama"}, Tags: []string{"heist", "noir"}}

	tests := []struct {
		name string
		c    models.ContentItem
		want int
	}{
		{"nothing shared", models.ContentItem{Type: models.ContentTypeSeries, Year: "1980"}, 0},
		{"same type", models.ContentItem{Type: models.ContentTypeMovie, Year: "1980"}, 2},
		{"year boundary", models.ContentItem{Year: "2005"}, 1},
		{"year outside", models.ContentItem{Year: "2006"}, 0},
		{"unknown year", models.ContentItem{Year: models.UnknownYear}, 0},
		{"genres case-insensitive", models.ContentItem{Genres: []string{"action", "DRAMA", "Drama"}}, 4},
		{"tags", models.ContentItem{Tags: []string{"noir"}}, 1},
		{"everything", models.ContentItem{Type: models.ContentTypeMovie, Year: "1997",
			Genres: []string{"Drama", "Action"}, Tags: []string{"heist", "noir"}}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentScore(&seed, &tt.c); got != tt.want {
				t.Errorf("ContentScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	bad := DefaultConfig()
	bad.MaxCount = 0
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted MaxCount 0")
	}
}
