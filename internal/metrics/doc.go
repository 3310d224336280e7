// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics defines the Prometheus collectors exported at /metrics.

Collectors are package-level promauto vectors so any package can record
without plumbing a registry:

  - marquee_metacache_*: gateway hits, misses, stale serves, writes, purges
  - marquee_provider_*: upstream latency and error kinds
  - circuit_breaker_*: provider circuit breaker state
  - marquee_recommend_*: strategy outcomes and result sizes
  - marquee_idmap_*: mapping misses and legacy fallback use
  - marquee_jobs_*: stale refresh queue
  - api_*: HTTP request counts and latency

Provider endpoints are labelled through EndpointLabel so numeric ids do not
explode label cardinality.
*/
package metrics
