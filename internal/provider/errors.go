// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package provider

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("provider circuit open")

	// ErrRateLimited is returned when HTTP 429 persists after all retries.
	ErrRateLimited = errors.New("provider rate limit exceeded")
)

// StatusError is a non-2xx provider response.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider %s: request failed with status %d: %s", e.Endpoint, e.Status, e.Body)
}

// NotFound reports whether the provider has no such resource.
func (e *StatusError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// clientFault reports 4xx responses other than 429. They say nothing about
// provider health and must not trip the breaker.
func clientFault(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Status >= 400 && se.Status < 500 && se.Status != http.StatusTooManyRequests
}

// IsNotFound reports whether err is a provider 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.NotFound()
}
