// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// Fetcher is the cache gateway seen from the provider facade.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params map[string]string, forceRefresh bool) (json.RawMessage, error)
}

// DiscoverQuery narrows a discover request.
type DiscoverQuery struct {
	GenreIDs []int64
	// Year constrains primary_release_year (movies) or first_air_date_year
	// (series). Zero means any year.
	Year int
}

// Service is the typed view of the provider endpoints the application uses.
// All calls go through the Fetcher so they are cached.
type Service struct {
	fetcher  Fetcher
	locales  *Locales
	language string
}

// NewService creates a facade over fetcher using the locale table's default language.
func NewService(fetcher Fetcher, locales *Locales) *Service {
	return &Service{fetcher: fetcher, locales: locales, language: locales.Default()}
}

// WithLanguage returns a copy that requests lang, resolved against the
// locale table (unsupported values fall back to the default).
func (s *Service) WithLanguage(lang string) *Service {
	cp := *s
	cp.language = s.locales.Resolve(lang)
	return &cp
}

// Language returns the resolved request language.
func (s *Service) Language() string {
	return s.language
}

// Movie fetches movie details with credits.
func (s *Service) Movie(ctx context.Context, id int64) (*MovieDetails, error) {
	return fetchAs[MovieDetails](ctx, s, "movie/"+strconv.FormatInt(id, 10),
		map[string]string{"append_to_response": "credits"})
}

// Series fetches series details with credits.
func (s *Service) Series(ctx context.Context, id int64) (*SeriesDetails, error) {
	return fetchAs[SeriesDetails](ctx, s, "tv/"+strconv.FormatInt(id, 10),
		map[string]string{"append_to_response": "credits"})
}

// Similar fetches titles similar to id.
func (s *Service) Similar(ctx context.Context, media string, id int64) (*PagedResults, error) {
	return fetchAs[PagedResults](ctx, s, titleEndpoint(media, id, "similar"), nil)
}

// Recommendations fetches the provider's recommendations for id.
func (s *Service) Recommendations(ctx context.Context, media string, id int64) (*PagedResults, error) {
	return fetchAs[PagedResults](ctx, s, titleEndpoint(media, id, "recommendations"), nil)
}

// Popular fetches the provider's popularity list.
func (s *Service) Popular(ctx context.Context, media string) (*PagedResults, error) {
	return fetchAs[PagedResults](ctx, s, mediaSegment(media)+"/popular", nil)
}

// Discover runs a genre/year discovery query sorted by popularity. Genres are
// OR-ed.
func (s *Service) Discover(ctx context.Context, media string, q DiscoverQuery) (*PagedResults, error) {
	params := map[string]string{"sort_by": "popularity.desc"}
	if len(q.GenreIDs) > 0 {
		ids := make([]string, len(q.GenreIDs))
		for i, id := range q.GenreIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		params["with_genres"] = strings.Join(ids, "|")
	}
	if q.Year > 0 {
		yearParam := "primary_release_year"
		if mediaSegment(media) == models.MediaTV {
			yearParam = "first_air_date_year"
		}
		params[yearParam] = strconv.Itoa(q.Year)
	}
	return fetchAs[PagedResults](ctx, s, "discover/"+mediaSegment(media), params)
}

func fetchAs[T any](ctx context.Context, s *Service, endpoint string, params map[string]string) (*T, error) {
	merged := make(map[string]string, len(params)+1)
	for k, v := range params {
		merged[k] = v
	}
	merged["language"] = s.language

	raw, err := s.fetcher.Fetch(ctx, endpoint, merged, false)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return &out, nil
}

func titleEndpoint(media string, id int64, suffix string) string {
	return mediaSegment(media) + "/" + strconv.FormatInt(id, 10) + "/" + suffix
}

func mediaSegment(media string) string {
	if media == models.MediaTV {
		return models.MediaTV
	}
	return models.MediaMovie
}
