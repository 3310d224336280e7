// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// General API information for swag. Regenerate docs/ after changing any
// handler annotation:
//
//	swag init -g cmd/server/docs.go -o docs --parseInternal
//
// @title Marquee API
// @version 1.0
// @description Metadata cache and recommendation service in front of a movie/TV metadata provider.
// @description
// @description ## Degradation
// @description
// @description Recommendation and similarity endpoints never fail on provider outages. They return
// @description whatever the strategy pipeline produced, padded from the local catalog.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "VALIDATION_ERROR", "message": "count must be at least 1"},
// @description   "meta": {"timestamp": "2026-03-01T12:00:00Z", "duration_ms": 1}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/marquee/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Recommendations
// @tag.description Recommendation and similarity lists built from the catalog and the provider
//
// @tag.name Metadata
// @tag.description Normalized provider metadata served through the cache
//
// @tag.name Cache
// @tag.description Metadata cache statistics and administration
//
// @tag.name Health
// @tag.description Liveness and readiness checks
package main
