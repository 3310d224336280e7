// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metacache is the persistent read-through cache in front of the
metadata provider.

Every provider request is identified by its endpoint and query parameters.
KeyFor turns the pair into a stable key (parameters sorted by name), and the
Gateway serves a stored response until it expires. When the provider fails,
an expired entry is served instead of an error; only a key that was never
cached yields ErrUpstreamUnavailable.

# Storage Backends

  - BadgerStore: embedded key-value store with a sorted expiry index
  - SQLiteStore: single file database (modernc.org/sqlite, no cgo)
  - MemoryStore: process memory, for tests and ephemeral deployments

The store is opened lazily. Concurrent first requests share one open attempt
and, while the store cannot be opened, the gateway keeps answering with live
provider calls.

# Usage

	gw := metacache.NewGateway(metacache.Config{TTL: 24 * time.Hour},
		providerClient, metacache.Open(&cfg.Cache))
	defer gw.Close()

	raw, err := gw.Fetch(ctx, "movie/603/similar", map[string]string{"language": "es-ES"}, false)
*/
package metacache
