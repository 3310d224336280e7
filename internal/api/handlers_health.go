// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"
)

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status  string            `json:"status"`
	Uptime  float64           `json:"uptime_seconds"`
	Checks  map[string]string `json:"checks,omitempty"`
	Catalog *CatalogSummary   `json:"catalog,omitempty"`
}

// CatalogSummary describes the loaded catalog snapshot.
type CatalogSummary struct {
	Items    int       `json:"items"`
	LoadedAt time.Time `json:"loaded_at"`
}

// HealthLive handles GET /api/v1/health/live. It only reports that the
// process is serving.
//
// @Summary Liveness check
// @Description Returns 200 while the process serves requests, regardless of dependencies.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status: "ok",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready. It checks the metadata cache
// store and the catalog and returns 503 when either fails.
//
// @Summary Readiness check
// @Description Returns 200 when the metadata cache store and the catalog snapshot are available, 503 otherwise.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Service is ready"
// @Failure 503 {object} APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	status := HealthStatus{
		Status: "ok",
		Uptime: time.Since(h.startTime).Seconds(),
		Checks: map[string]string{"cache": "ok", "catalog": "ok"},
	}
	if err := h.cache.Ready(ctx); err != nil {
		status.Status = "unavailable"
		status.Checks["cache"] = err.Error()
	}
	snap, err := h.catalog.Current(ctx)
	if err != nil {
		status.Status = "unavailable"
		status.Checks["catalog"] = err.Error()
	} else {
		status.Catalog = &CatalogSummary{Items: len(snap.Items), LoadedAt: snap.LoadedAt}
	}

	if status.Status != "ok" {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service not ready", status)
		return
	}
	rw.Success(status)
}
