// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides the HTTP middleware shared by the API router.

  - RequestID: X-Request-ID propagation and request/correlation ids for logging
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for clients that send Accept-Encoding: gzip

All middleware uses the func(http.Handler) http.Handler shape so it plugs
into chi's r.Use directly.
*/
package middleware
