// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// RecommendationsQuery is GET /api/v1/recommendations.
type RecommendationsQuery struct {
	UserID string `query:"user_id" validate:"omitempty,max=128,cachekey"`
	Count  int    `query:"count" validate:"min=1"`
}

// SimilarQuery is GET /api/v1/similar/{contentID}.
type SimilarQuery struct {
	ContentID string `query:"content_id" validate:"required,max=128"`
	Count     int    `query:"count" validate:"min=1"`
}

// ClearCacheRequest is the optional body of POST /api/v1/cache/clear.
type ClearCacheRequest struct {
	Prefix string `json:"prefix" validate:"omitempty,max=256,cachekey"`
}

// SetTTLRequest is the body of PUT /api/v1/cache/ttl.
type SetTTLRequest struct {
	Hours int `json:"hours" validate:"min=1"`
}

// MetadataQuery is GET /api/v1/metadata/{media}/{externalID}.
type MetadataQuery struct {
	Media      string `query:"media" validate:"required,media"`
	ExternalID int64  `query:"external_id" validate:"min=1"`
	Language   string `query:"language" validate:"omitempty,max=16"`
}

// queryInt reads an integer query parameter, returning def when it is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

// decodeBody decodes an optional JSON body into dst. An empty body leaves
// dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
