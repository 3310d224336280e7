// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package normalize

import (
	"math"
	"strings"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/provider"
)

// MaxCast is the number of credited cast names kept per title.
const MaxCast = 10

var (
	movieDirectorJobs  = []string{"Director"}
	seriesDirectorJobs = []string{"Director", "Executive Producer", "Creator"}
	writerJobs         = []string{"Writer", "Screenplay", "Story", "Novel", "Teleplay"}
)

// Images builds artwork URLs.
type Images struct {
	BaseURL      string
	PosterSize   string
	BackdropSize string
}

// ImagesFromConfig reads the artwork settings of the provider config.
func ImagesFromConfig(cfg *config.ProviderConfig) Images {
	return Images{
		BaseURL:      cfg.ImageBaseURL,
		PosterSize:   cfg.PosterSize,
		BackdropSize: cfg.BackdropSize,
	}
}

// Poster returns the poster URL for path, or nil when path is empty.
func (i Images) Poster(path string) *string {
	return i.url(orDefault(i.PosterSize, "w500"), path)
}

// Backdrop returns the backdrop URL for path, or nil when path is empty.
func (i Images) Backdrop(path string) *string {
	return i.url(orDefault(i.BackdropSize, "w1280"), path)
}

func (i Images) url(size, path string) *string {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := strings.TrimRight(i.BaseURL, "/") + "/" + size + path
	return &u
}

// Normalizer converts provider payloads into content items. It holds no
// mutable state.
type Normalizer struct {
	images   Images
	language string
}

// New creates a normalizer. language selects genre names for list items,
// which carry only genre ids.
func New(images Images, language string) *Normalizer {
	return &Normalizer{images: images, language: language}
}

// Movie normalizes movie details.
func (n *Normalizer) Movie(m *provider.MovieDetails) models.ContentItem {
	item := models.ContentItem{
		Title:         firstNonEmpty(m.Title, m.OriginalTitle),
		OriginalTitle: firstNonEmpty(m.OriginalTitle, m.Title),
		Year:          Year(m.ReleaseDate),
		Media:         models.MediaMovie,
		Overview:      m.Overview,
		PosterURL:     n.images.Poster(m.PosterPath),
		BackdropURL:   n.images.Backdrop(m.BackdropPath),
		ExternalID:    models.Int64Ptr(m.ID),
		Rating:        Rating(m.VoteAverage, m.VoteCount),
	}
	ids := fillGenres(&item, m.Genres)
	item.Type = contentType(ids, models.ContentTypeMovie)

	if m.Credits != nil {
		item.Cast = castNames(m.Credits.Cast)
		item.Directors = crewWithJobs(m.Credits.Crew, movieDirectorJobs, nil)
		item.Writers = crewWithJobs(m.Credits.Crew, writerJobs, nil)
	}
	return item
}

// Series normalizes series details. Series creators count as directors.
func (n *Normalizer) Series(s *provider.SeriesDetails) models.ContentItem {
	item := models.ContentItem{
		Title:         firstNonEmpty(s.Name, s.OriginalName),
		OriginalTitle: firstNonEmpty(s.OriginalName, s.Name),
		Year:          Year(s.FirstAirDate),
		Media:         models.MediaTV,
		Overview:      s.Overview,
		PosterURL:     n.images.Poster(s.PosterPath),
		BackdropURL:   n.images.Backdrop(s.BackdropPath),
		ExternalID:    models.Int64Ptr(s.ID),
		Rating:        Rating(s.VoteAverage, s.VoteCount),
	}
	ids := fillGenres(&item, s.Genres)
	item.Type = contentType(ids, models.ContentTypeSeries)

	creators := make([]string, 0, len(s.CreatedBy))
	for _, c := range s.CreatedBy {
		creators = append(creators, c.Name)
	}
	if s.Credits != nil {
		item.Cast = castNames(s.Credits.Cast)
		item.Directors = crewWithJobs(s.Credits.Crew, seriesDirectorJobs, creators)
		item.Writers = crewWithJobs(s.Credits.Crew, writerJobs, nil)
	} else {
		item.Directors = crewWithJobs(nil, nil, creators)
	}
	return item
}

// ListItem normalizes an entry of a paged list (discover, similar, popular).
// media is "movie" or "tv"; an item's own media_type takes precedence.
func (n *Normalizer) ListItem(li *provider.ListItem, media string) models.ContentItem {
	base := models.ContentTypeMovie
	title, original, date := li.Title, li.OriginalTitle, li.ReleaseDate
	if models.ValidMedia(li.MediaType) {
		media = li.MediaType
	}
	if media != models.MediaTV {
		media = models.MediaMovie
	}
	if media == models.MediaTV {
		base = models.ContentTypeSeries
		title, original, date = li.Name, li.OriginalName, li.FirstAirDate
	}

	item := models.ContentItem{
		Title:         firstNonEmpty(title, original),
		OriginalTitle: firstNonEmpty(original, title),
		Year:          Year(date),
		Media:         media,
		Overview:      li.Overview,
		PosterURL:     n.images.Poster(li.PosterPath),
		BackdropURL:   n.images.Backdrop(li.BackdropPath),
		ExternalID:    models.Int64Ptr(li.ID),
		Rating:        Rating(li.VoteAverage, -1),
		Type:          contentType(li.GenreIDs, base),
	}
	for _, id := range li.GenreIDs {
		if name, ok := GenreName(id, n.language); ok {
			item.Genres = appendUnique(item.Genres, name)
		}
	}
	return item
}

// Year returns the first four characters of date when they are all digits,
// otherwise models.UnknownYear.
func Year(date string) string {
	if len(date) < 4 {
		return models.UnknownYear
	}
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return models.UnknownYear
		}
	}
	return date[:4]
}

// Rating copies a 0-10 community score rounded to one decimal. The source is
// already on a 10-point scale. voteCount 0 means unrated; negative means the
// count is not known, in which case a zero average is treated as unrated.
func Rating(voteAverage float64, voteCount int) *float64 {
	if voteCount == 0 || (voteCount < 0 && voteAverage == 0) {
		return nil
	}
	r := math.Round(voteAverage*10) / 10
	r = math.Max(0, math.Min(10, r))
	return &r
}

func contentType(genreIDs []int64, base models.ContentType) models.ContentType {
	var animation bool
	for _, id := range genreIDs {
		switch id {
		case GenreDocumentary:
			return models.ContentTypeDocumentary
		case GenreAnimation:
			animation = true
		}
	}
	if animation {
		return models.ContentTypeAnimation
	}
	return base
}

func fillGenres(item *models.ContentItem, genres []provider.Genre) []int64 {
	ids := make([]int64, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
		item.Genres = appendUnique(item.Genres, g.Name)
	}
	return ids
}

func castNames(cast []provider.CastMember) []string {
	n := min(len(cast), MaxCast)
	out := make([]string, 0, n)
	for _, c := range cast[:n] {
		out = append(out, c.Name)
	}
	return out
}

// crewWithJobs returns names of crew whose job is in jobs, followed by
// extra, de-duplicated in order.
func crewWithJobs(crew []provider.CrewMember, jobs, extra []string) []string {
	var out []string
	for _, c := range crew {
		for _, j := range jobs {
			if c.Job == j {
				out = appendUnique(out, c.Name)
				break
			}
		}
	}
	for _, name := range extra {
		out = appendUnique(out, name)
	}
	return out
}

func appendUnique(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
