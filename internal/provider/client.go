// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// maxErrorBodySize caps how much of an error response is kept for diagnostics.
const maxErrorBodySize = 64 * 1024

// maxBodySize caps successful response bodies.
const maxBodySize = 8 << 20

const (
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// Client performs authenticated GET requests against the provider.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *breaker
	locales    *Locales
	logger     zerolog.Logger

	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a provider client from configuration.
func NewClient(cfg *config.ProviderConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		token:          cfg.AccessToken,
		httpClient:     &http.Client{Timeout: timeout},
		limiter:        rate.NewLimiter(limit, burst),
		breaker:        newBreaker("metadata-provider", cfg),
		locales:        NewLocales(cfg.SupportedLanguages, cfg.DefaultLanguage),
		logger:         logging.WithComponent("provider"),
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
	}
}

// Locales returns the client's locale table.
func (c *Client) Locales() *Locales {
	return c.locales
}

// BreakerState reports the circuit breaker state (closed, half-open, open).
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// Get fetches endpoint (relative to the base URL, e.g. "movie/603/similar")
// with params and returns the raw JSON body. The language param is validated
// against the supported locale table and replaced by the default when
// missing or unsupported.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	reqURL := c.buildURL(endpoint, params)

	return c.breaker.execute(func() (json.RawMessage, error) {
		start := time.Now()
		body, err := c.get(ctx, endpoint, reqURL)
		metrics.RecordProviderRequest(endpoint, time.Since(start))
		return body, err
	})
}

func (c *Client) buildURL(endpoint string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	q.Set("language", c.locales.Resolve(params["language"]))

	return fmt.Sprintf("%s/%s?%s", c.baseURL, strings.TrimLeft(endpoint, "/"), q.Encode())
}

// get performs the request, retrying HTTP 429 with exponential backoff
// (Retry-After wins when present).
func (c *Client) get(ctx context.Context, endpoint, reqURL string) (json.RawMessage, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.RecordProviderError("rate_limit")
			return nil, fmt.Errorf("provider %s: rate limiter: %w", endpoint, err)
		}

		resp, err := c.do(ctx, reqURL)
		if err != nil {
			metrics.RecordProviderError("transport")
			return nil, fmt.Errorf("provider %s: %w", endpoint, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			resp.Body.Close()

			if attempt >= c.maxRetries {
				metrics.RecordProviderError("rate_limit")
				return nil, fmt.Errorf("provider %s: %w after %d retries", endpoint, ErrRateLimited, c.maxRetries)
			}

			delay := c.retryBaseDelay * (1 << attempt)
			if secs, convErr := strconv.Atoi(retryAfter); convErr == nil && secs >= 0 {
				delay = time.Duration(secs) * time.Second
			}
			c.logger.Warn().Str("endpoint", endpoint).Dur("retry_delay", delay).
				Int("attempt", attempt+1).Msg("Provider rate limited (HTTP 429), retrying")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			continue
		}

		return c.readBody(endpoint, resp)
	}
}

func (c *Client) do(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) readBody(endpoint string, resp *http.Response) (json.RawMessage, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordProviderError("status")
		return nil, &StatusError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     string(readBodyForError(resp.Body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		metrics.RecordProviderError("transport")
		return nil, fmt.Errorf("provider %s: read body: %w", endpoint, err)
	}
	if !json.Valid(body) {
		metrics.RecordProviderError("decode")
		return nil, fmt.Errorf("provider %s: %w", endpoint, errInvalidJSON)
	}
	return json.RawMessage(body), nil
}

var errInvalidJSON = errors.New("response is not valid JSON")

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
