// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Refresher re-fetches a cache entry without stale fallback.
// *metacache.Gateway satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, endpoint string, params map[string]string) error
}

// Handler processes refresh tasks.
type Handler struct {
	refresher Refresher
	logger    zerolog.Logger
}

// NewHandler creates a handler that refreshes through r.
func NewHandler(r Refresher) *Handler {
	return &Handler{refresher: r, logger: logging.WithComponent("jobs")}
}

// ProcessTask implements asynq.Handler.
func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) (err error) {
	defer func() { metrics.RecordJobProcessed(err) }()

	p, err := ParseRefreshPayload(t.Payload())
	if err != nil {
		h.logger.Error().Err(err).Str("task", t.Type()).Msg("Dropping malformed refresh task")
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}

	start := time.Now()
	if err := h.refresher.Refresh(ctx, p.Endpoint, p.Params); err != nil {
		h.logger.Warn().Err(err).Str("endpoint", p.Endpoint).Msg("Refresh failed, will retry")
		return err
	}
	h.logger.Debug().
		Str("endpoint", p.Endpoint).
		Dur("duration", time.Since(start)).
		Msg("Cache entry refreshed")
	return nil
}

// NewServeMux routes refresh tasks to h.
func NewServeMux(h *Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TaskRefreshEntry, h)
	return mux
}
