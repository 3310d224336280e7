// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import (
	"net/url"
	"sort"
	"strings"
)

// KeyFor builds the cache key for a request: the endpoint, then the params
// sorted by name. Param order never changes the key, and the endpoint is
// always a literal prefix of the key so ClearCache can match by prefix.
//
//	KeyFor("discover/movie", {"with_genres": "28", "language": "es-ES"})
//	  == "discover/movie?language=es-ES&with_genres=28"
func KeyFor(endpoint string, params map[string]string) string {
	endpoint = strings.Trim(endpoint, "/")
	if len(params) == 0 {
		return endpoint
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	for i, name := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[name]))
	}
	return b.String()
}

// EndpointPrefix returns the first path segment of an endpoint or key
// ("movie/603/similar?language=es-ES" -> "movie"). Stats group by it.
func EndpointPrefix(keyOrEndpoint string) string {
	s := strings.TrimLeft(keyOrEndpoint, "/")
	if i := strings.IndexAny(s, "/?"); i >= 0 {
		return s[:i]
	}
	return s
}
