// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package normalize turns provider movie, series and list payloads into
// models.ContentItem. It is the only place provider response shapes are
// translated; every function is pure.
//
// The package also carries the bilingual genre vocabulary used to map catalog
// genre names (English or Spanish) to provider genre ids.
package normalize
