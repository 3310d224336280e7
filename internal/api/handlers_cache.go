// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/tomtom215/marquee/internal/validation"
)

// ClearCacheResponse reports how many entries were removed.
type ClearCacheResponse struct {
	Deleted int    `json:"deleted"`
	Prefix  string `json:"prefix"`
}

// TTLResponse echoes the TTL now in force.
type TTLResponse struct {
	TTLHours int `json:"ttl_hours"`
}

// CacheStats handles GET /api/v1/cache/stats.
//
// @Summary Metadata cache statistics
// @Description Entry counts (total, valid, expired), a sampled size estimate, entries per endpoint prefix, and creation/expiry bounds.
// @Tags Cache
// @Produce json
// @Success 200 {object} APIResponse{data=metacache.Stats} "Cache statistics"
// @Failure 500 {object} APIResponse "Cache store unavailable"
// @Router /cache/stats [get]
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	stats, err := h.cache.Stats(r.Context())
	if err != nil {
		rw.InternalError("Failed to read cache statistics", err)
		return
	}
	rw.Success(stats)
}

// ClearCache handles POST /api/v1/cache/clear with an optional
// {"prefix": "..."} body. No prefix clears everything.
//
// @Summary Clear cached provider responses
// @Description Deletes entries whose key starts with prefix, or every entry when the body or prefix is empty.
// @Tags Cache
// @Accept json
// @Produce json
// @Param request body ClearCacheRequest false "Endpoint prefix to clear"
// @Success 200 {object} APIResponse{data=ClearCacheResponse} "Entries deleted"
// @Failure 400 {object} APIResponse "Invalid prefix"
// @Failure 429 {object} APIResponse "Rate limit exceeded"
// @Failure 500 {object} APIResponse "Cache store unavailable"
// @Router /cache/clear [post]
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ClearCacheRequest
	if err := decodeBody(r, &req); err != nil {
		rw.Invalid(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationFailed(verr)
		return
	}

	n, err := h.cache.ClearCache(r.Context(), req.Prefix)
	if err != nil {
		rw.InternalError("Failed to clear cache", err)
		return
	}
	rw.Success(ClearCacheResponse{Deleted: n, Prefix: req.Prefix})
}

// SetTTL handles PUT /api/v1/cache/ttl with {"hours": n}.
//
// @Summary Set the cache TTL
// @Description Sets the time-to-live for entries written from now on. Existing entries keep their expiry. Non-positive values are rejected and the previous TTL stays.
// @Tags Cache
// @Accept json
// @Produce json
// @Param request body SetTTLRequest true "TTL in hours"
// @Success 200 {object} APIResponse{data=TTLResponse} "TTL in force"
// @Failure 400 {object} APIResponse "Invalid TTL"
// @Failure 429 {object} APIResponse "Rate limit exceeded"
// @Router /cache/ttl [put]
func (h *Handler) SetTTL(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SetTTLRequest
	if err := decodeBody(r, &req); err != nil {
		rw.Invalid(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationFailed(verr)
		return
	}

	if err := h.cache.SetTTL(req.Hours); err != nil {
		rw.Invalid(err.Error())
		return
	}
	rw.Success(TTLResponse{TTLHours: req.Hours})
}
