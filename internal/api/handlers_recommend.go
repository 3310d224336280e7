// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// ItemsResponse is the data payload of list endpoints.
type ItemsResponse struct {
	Items []models.ContentItem `json:"items"`
	Count int                  `json:"count"`
}

func itemsResponse(items []models.ContentItem) ItemsResponse {
	if items == nil {
		items = []models.ContentItem{}
	}
	return ItemsResponse{Items: items, Count: len(items)}
}

// Recommendations handles GET /api/v1/recommendations?user_id=&count=
//
// Provider outages never fail this endpoint; the list degrades to local
// popularity. Unknown users get 404.
//
// @Summary Recommendations for a user
// @Description Blends genre discovery, favorites, watch history and popularity. Without user_id the list is popularity based. Items the user watched or favorited are excluded.
// @Tags Recommendations
// @Produce json
// @Param user_id query string false "Catalog user id"
// @Param count query int false "Number of items (default from config)"
// @Success 200 {object} APIResponse{data=ItemsResponse} "Recommended items"
// @Failure 400 {object} APIResponse "Invalid count or user id"
// @Failure 404 {object} APIResponse "Unknown user"
// @Failure 500 {object} APIResponse "Catalog unavailable"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	count, err := queryInt(r, "count", h.defaultCount)
	if err != nil {
		rw.Invalid(err.Error())
		return
	}
	q := RecommendationsQuery{UserID: r.URL.Query().Get("user_id"), Count: count}
	if !h.validCount(rw, &q, q.Count) {
		return
	}

	snap, err := h.catalog.Current(ctx)
	if err != nil {
		rw.InternalError("Catalog unavailable", err)
		return
	}

	req := recommend.Request{
		UserID:  q.UserID,
		Catalog: snap.Items,
		Genres:  snap.Genres,
		Tags:    snap.Tags,
		N:       q.Count,
	}
	if q.UserID != "" {
		uc, err := h.catalog.UserContext(ctx, q.UserID)
		switch {
		case errors.Is(err, catalog.ErrUserNotFound):
			rw.NotFound("User not found")
			return
		case err != nil:
			rw.InternalError("Failed to load user context", err)
			return
		}
		req.History = uc.History
		req.Favorites = uc.Favorites
	}

	items, err := h.engine.Recommend(ctx, req)
	if err != nil {
		rw.InternalError("Failed to build recommendations", err)
		return
	}
	rw.Success(itemsResponse(items))
}

// Similar handles GET /api/v1/similar/{contentID}?count=
//
// @Summary Items similar to a catalog item
// @Description Provider similar and recommended titles, era-constrained genre discovery, then a local content score. The item itself is never returned.
// @Tags Recommendations
// @Produce json
// @Param contentID path string true "Catalog content id"
// @Param count query int false "Number of items (default from config)"
// @Success 200 {object} APIResponse{data=ItemsResponse} "Similar items"
// @Failure 400 {object} APIResponse "Invalid count"
// @Failure 404 {object} APIResponse "Unknown content id"
// @Failure 500 {object} APIResponse "Catalog unavailable"
// @Router /similar/{contentID} [get]
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	count, err := queryInt(r, "count", h.defaultCount)
	if err != nil {
		rw.Invalid(err.Error())
		return
	}
	q := SimilarQuery{ContentID: chi.URLParam(r, "contentID"), Count: count}
	if !h.validCount(rw, &q, q.Count) {
		return
	}

	snap, err := h.catalog.Current(ctx)
	if err != nil {
		rw.InternalError("Catalog unavailable", err)
		return
	}
	seed, err := snap.Item(q.ContentID)
	if err != nil {
		rw.NotFound("Content not found")
		return
	}

	items, err := h.engine.SimilarTo(ctx, seed, snap.Items, q.Count)
	if err != nil {
		rw.InternalError("Failed to build similar titles", err)
		return
	}
	rw.Success(itemsResponse(items))
}

// validCount validates q and checks count against the configured maximum,
// writing the error response when either fails.
func (h *Handler) validCount(rw *ResponseWriter, q any, count int) bool {
	if verr := validation.ValidateStruct(q); verr != nil {
		rw.ValidationFailed(verr)
		return false
	}
	if count > h.maxCount {
		rw.Invalid(fmt.Sprintf("count must be at most %d", h.maxCount))
		return false
	}
	return true
}
