// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

  - HTTPServerService: ListenAndServe with graceful shutdown
  - CatalogService: periodic catalog reload and id mapping index
  - SweeperService: purge of long-expired cache entries and store compaction

Each wrapper translates its component's lifecycle into Serve(ctx) and
implements fmt.Stringer so suture's event log can name it.
*/
package services
