// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/metacache"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/provider"
	"github.com/tomtom215/marquee/internal/validation"
)

// Metadata handles GET /api/v1/metadata/{media}/{externalID}?language=
//
// The title is fetched through the metadata cache and normalized. When the
// catalog holds the title its catalog id is filled in.
//
// @Summary Normalized title metadata
// @Description Fetches a movie or series through the metadata cache and returns it as a content item. Serves stale cached data when the provider is down.
// @Tags Metadata
// @Produce json
// @Param media path string true "Provider media" Enums(movie, tv)
// @Param externalID path int true "Provider id"
// @Param language query string false "Locale, e.g. es-ES; unsupported values use the default"
// @Success 200 {object} APIResponse{data=models.ContentItem} "Normalized title"
// @Failure 400 {object} APIResponse "Invalid media or id"
// @Failure 404 {object} APIResponse "Title not found"
// @Failure 503 {object} APIResponse "Provider unavailable and nothing cached"
// @Router /metadata/{media}/{externalID} [get]
func (h *Handler) Metadata(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	externalID, err := strconv.ParseInt(chi.URLParam(r, "externalID"), 10, 64)
	if err != nil {
		rw.Invalid("externalID must be an integer")
		return
	}
	q := MetadataQuery{
		Media:      chi.URLParam(r, "media"),
		ExternalID: externalID,
		Language:   r.URL.Query().Get("language"),
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		rw.ValidationFailed(verr)
		return
	}

	svc := h.provider
	if q.Language != "" {
		svc = svc.WithLanguage(q.Language)
	}

	var item models.ContentItem
	if q.Media == models.MediaTV {
		var details *provider.SeriesDetails
		details, err = svc.Series(ctx, q.ExternalID)
		if err == nil {
			item = h.normalizer.Series(details)
		}
	} else {
		var details *provider.MovieDetails
		details, err = svc.Movie(ctx, q.ExternalID)
		if err == nil {
			item = h.normalizer.Movie(details)
		}
	}
	switch {
	case provider.IsNotFound(err):
		rw.NotFound("Title not found")
		return
	case errors.Is(err, metacache.ErrUpstreamUnavailable):
		rw.ServiceUnavailable("Metadata provider unavailable")
		return
	case err != nil:
		rw.InternalError("Failed to load metadata", err)
		return
	}

	if snap, serr := h.catalog.Current(ctx); serr == nil && h.resolver != nil {
		if id, ok := h.resolver.Bind(snap.Items).Internal(ctx, q.Media, q.ExternalID); ok {
			item.ID = id
		}
	}
	rw.Success(item)
}
