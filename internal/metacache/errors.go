// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import "errors"

var (
	// ErrUpstreamUnavailable means the provider call failed and no cached
	// entry (fresh or stale) exists for the key.
	ErrUpstreamUnavailable = errors.New("metadata provider unavailable and nothing cached")

	// ErrInvalidTTL is returned by SetTTL for non-positive values.
	ErrInvalidTTL = errors.New("ttl must be a positive number of hours")

	// ErrNotFound is returned by Store.Get for unknown keys.
	ErrNotFound = errors.New("cache entry not found")

	// ErrNoUpstream is returned by Fetch on a gateway built without a provider
	// (operator tooling).
	ErrNoUpstream = errors.New("gateway has no upstream")
)
