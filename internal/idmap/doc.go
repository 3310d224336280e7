// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package idmap translates between catalog content ids and provider ids.

Mappings are written by the Indexer whenever the catalog is loaded, one per
item that carries a provider id. Recommendation requests Bind a Resolver to
their catalog and translate through the returned Mapper:

 1. the bound catalog's own external ids
 2. the persisted mapping table
 3. the legacy hash/modulo mapping, only when explicitly enabled

A provider id that resolves to nothing is dropped by the caller and counted
in marquee_idmap_misses_total.
*/
package idmap
