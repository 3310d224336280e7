// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog supplies the content catalog and per-user history that the
// recommendation engine works over.
//
// Two read-only sources exist: FileSource parses a JSON or YAML snapshot and
// PostgresSource queries the content service's tables through pgx. Cache holds
// the latest snapshot in memory and is refreshed by the catalog indexer
// service.
package catalog
