// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP REST API layer for Marquee.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers, split by area across handlers_*.go
  - ResponseWriter: the standard JSON envelope used by every endpoint
  - ChiMiddleware: CORS and per-IP rate limiting

Endpoints:

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/recommendations?user_id=&count=
	GET  /api/v1/similar/{contentID}?count=
	GET  /api/v1/metadata/{media}/{externalID}?language=
	GET  /api/v1/cache/stats
	POST /api/v1/cache/clear     {"prefix": "movie/"}
	PUT  /api/v1/cache/ttl       {"hours": 48}
	GET  /metrics
	GET  /swagger/*             OpenAPI document and UI

Response Format:

All API responses share one envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Errors set success to false and carry an error object with a machine
readable code (VALIDATION_ERROR, NOT_FOUND, TOO_MANY_REQUESTS,
INTERNAL_ERROR, SERVICE_UNAVAILABLE).

Recommendation and similarity endpoints never fail because the metadata
provider is down; they fall back to catalog-only results.
*/
package api
