// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the content and user data structures shared by the
normalizer, the recommendation engine, the catalog sources and the HTTP API.

Key Components:

  - ContentItem: normalized title (movie, series, documentary, animation)
  - Genre, Tag: catalog taxonomy entries
  - WatchEntry: one item of a user's viewing history
  - UserContext: history and favorites loaded for a recommendation request

Usage Example:

	import "github.com/tomtom215/marquee/internal/models"

	item := models.ContentItem{
	    ID:     "c-42",
	    Title:  "Arrival",
	    Year:   "2016",
	    Type:   models.ContentTypeMovie,
	    Genres: []string{"Drama", "Science Fiction"},
	}

Thread Safety:

Models are plain values with no internal synchronization. Slices inside a
ContentItem must not be mutated once the item is shared between goroutines.
*/
package models
