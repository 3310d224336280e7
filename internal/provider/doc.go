// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package provider talks to the external metadata provider (a TMDB v3 shaped
REST API).

Two layers live here:

  - Client performs raw GET requests: bearer authentication, locale
    validation with fallback, a token bucket rate limiter, HTTP 429 retry
    with Retry-After support, and a gobreaker circuit breaker. It returns the
    undecoded JSON body and is the upstream of the metadata cache gateway.
  - Service is the typed facade the rest of the application uses. It never
    calls Client directly; every request goes through a Fetcher (the cache
    gateway) and the payload is decoded into the structs in types.go.

Typical wiring:

	client := provider.NewClient(&cfg.Provider)
	gateway := metacache.NewGateway(metacache.Config{TTL: cfg.Cache.TTL}, client, open)
	svc := provider.NewService(gateway, provider.NewLocales(cfg.Provider.SupportedLanguages, cfg.Provider.DefaultLanguage))
	similar, err := svc.Similar(ctx, models.MediaMovie, 603)
*/
package provider
