// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/config"
)

func testConfig(baseURL string) *config.ProviderConfig {
	return &config.ProviderConfig{
		BaseURL:             baseURL,
		AccessToken:         "secret-token",
		DefaultLanguage:     "es-ES",
		SupportedLanguages:  []string{"es-ES", "en-US"},
		Timeout:             2 * time.Second,
		RateLimit:           1000,
		RateBurst:           100,
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.5,
		BreakerOpenTimeout:  time.Minute,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(testConfig(srv.URL))
	c.retryBaseDelay = time.Millisecond
	return c, srv
}

func TestClient_Get_AuthAndLanguage(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     string
	}{
		{"supported", "en-US", "en-US"},
		{"case folded", "en-us", "en-US"},
		{"unsupported falls back", "xx-XX", "es-ES"},
		{"missing uses default", "", "es-ES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth, gotLang, gotPath, gotGenres string
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotLang = r.URL.Query().Get("language")
				gotGenres = r.URL.Query().Get("with_genres")
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
			})

			params := map[string]string{"with_genres": "28|12"}
			if tt.language != "" {
				params["language"] = tt.language
			}
			body, err := c.Get(context.Background(), "discover/movie", params)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !strings.Contains(string(body), `"page":1`) {
				t.Errorf("body = %s", body)
			}
			if gotAuth != "Bearer secret-token" {
				t.Errorf("Authorization = %q", gotAuth)
			}
			if gotLang != tt.want {
				t.Errorf("language = %q, want %q", gotLang, tt.want)
			}
			if gotPath != "/discover/movie" {
				t.Errorf("path = %q", gotPath)
			}
			if gotGenres != "28|12" {
				t.Errorf("with_genres = %q", gotGenres)
			}
		})
	}
}

func TestClient_Get_StatusError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status_message":"The resource you requested could not be found."}`, http.StatusNotFound)
	})

	_, err := c.Get(context.Background(), "movie/999999", nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Get() error = %v, want *StatusError", err)
	}
	if se.Status != http.StatusNotFound || !IsNotFound(err) {
		t.Errorf("status = %d", se.Status)
	}
	if !strings.Contains(se.Body, "could not be found") {
		t.Errorf("body = %q", se.Body)
	}
}

func TestClient_Get_RetriesOn429(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"id":603}`))
	})

	if _, err := c.Get(context.Background(), "movie/603", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestClient_Get_RateLimitExhausted(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Get(context.Background(), "movie/603", nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Get() error = %v, want ErrRateLimited", err)
	}
}

func TestClient_Get_InvalidJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	if _, err := c.Get(context.Background(), "movie/popular", nil); err == nil {
		t.Fatal("Get() accepted a non-JSON body")
	}
}

func TestClient_CircuitOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 3; i++ {
		_, _ = c.Get(context.Background(), "movie/popular", nil)
	}
	if c.BreakerState() != "open" {
		t.Fatalf("BreakerState() = %s, want open", c.BreakerState())
	}

	_, err := c.Get(context.Background(), "movie/popular", nil)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Get() error = %v, want ErrCircuitOpen", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream calls = %d, want 3 (open circuit must not call out)", got)
	}
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 5; i++ {
		_, _ = c.Get(context.Background(), "movie/1", nil)
	}
	if c.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %s, want closed", c.BreakerState())
	}
}
