// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/url"
)

// validateAPIURL validates an HTTP/HTTPS API root. Unlike a plain base URL a
// path is allowed (e.g. /3 for the TMDB API version) but a query is not.
func validateAPIURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}

// validatePostgresURL checks a libpq style connection URL.
func validatePostgresURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("CATALOG_DATABASE_URL is required when CATALOG_SOURCE=postgres")
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("CATALOG_DATABASE_URL failed to parse URL: %w", err)
	}
	if parsedURL.Scheme != "postgres" && parsedURL.Scheme != "postgresql" {
		return fmt.Errorf("CATALOG_DATABASE_URL scheme must be postgres or postgresql, got: %s", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("CATALOG_DATABASE_URL host is required")
	}
	return nil
}
