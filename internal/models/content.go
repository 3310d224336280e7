// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"strconv"
	"time"
)

// ContentType classifies a catalog item.
type ContentType string

// Content types.
const (
	ContentTypeMovie       ContentType = "movie"
	ContentTypeSeries      ContentType = "series"
	ContentTypeDocumentary ContentType = "documentary"
	ContentTypeAnimation   ContentType = "animation"
)

// UnknownYear is stored when no release year can be derived.
const UnknownYear = "unknown"

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeMovie, ContentTypeSeries, ContentTypeDocumentary, ContentTypeAnimation:
		return true
	}
	return false
}

// Media returns the provider media segment ("movie" or "tv") guessed from
// the type alone. Documentaries and animation are guessed as movies, so
// items should carry ContentItem.Media when they come from the provider.
func (t ContentType) Media() string {
	if t == ContentTypeSeries {
		return MediaTV
	}
	return MediaMovie
}

// Provider media segments.
const (
	MediaMovie = "movie"
	MediaTV    = "tv"
)

// ValidMedia reports whether m is a provider media segment.
func ValidMedia(m string) bool {
	return m == MediaMovie || m == MediaTV
}

// ContentItem is a normalized catalog entry.
type ContentItem struct {
	ID            string      `json:"id" yaml:"id"`
	Title         string      `json:"title" yaml:"title"`
	OriginalTitle string      `json:"original_title,omitempty" yaml:"original_title"`
	Year          string      `json:"year" yaml:"year"`
	Type          ContentType `json:"type" yaml:"type"`
	Media         string      `json:"media,omitempty" yaml:"media"`
	PosterURL     *string     `json:"poster_url" yaml:"poster_url"`
	BackdropURL   *string     `json:"backdrop_url" yaml:"backdrop_url"`
	Overview      string      `json:"overview,omitempty" yaml:"overview"`
	Genres        []string    `json:"genres" yaml:"genres"`
	Tags          []string    `json:"tags,omitempty" yaml:"tags"`
	Cast          []string    `json:"cast,omitempty" yaml:"cast"`
	Directors     []string    `json:"directors,omitempty" yaml:"directors"`
	Writers       []string    `json:"writers,omitempty" yaml:"writers"`
	ExternalID    *int64      `json:"external_id,omitempty" yaml:"external_id"`
	Rating        *float64    `json:"rating,omitempty" yaml:"rating"`
	ViewCount     int64       `json:"view_count,omitempty" yaml:"view_count"`
}

// YearInt returns the numeric year and whether the item has one.
func (c *ContentItem) YearInt() (int, bool) {
	if len(c.Year) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(c.Year)
	if err != nil {
		return 0, false
	}
	return y, true
}

// ProviderMedia returns the provider media segment of the item: Media when
// set, otherwise the guess from Type.
func (c *ContentItem) ProviderMedia() string {
	if ValidMedia(c.Media) {
		return c.Media
	}
	return c.Type.Media()
}

// HasExternalID reports whether the item carries a provider id.
func (c *ContentItem) HasExternalID() bool {
	return c.ExternalID != nil && *c.ExternalID > 0
}

// Genre is a catalog genre.
type Genre struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Tag is a free-form catalog label.
type Tag struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// WatchEntry is one item of a user's viewing history.
type WatchEntry struct {
	ContentID string    `json:"content_id" yaml:"content_id"`
	WatchedAt time.Time `json:"watched_at" yaml:"watched_at"`
}

// UserContext is the per-user signal used by the recommendation engine.
// History is ordered oldest first.
type UserContext struct {
	UserID    string        `json:"user_id" yaml:"user_id"`
	History   []WatchEntry  `json:"history" yaml:"history"`
	Favorites []ContentItem `json:"favorites" yaml:"favorites"`
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }
