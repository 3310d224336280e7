// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package jobs

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metacache"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Enqueue outcomes.
const (
	OutcomeEnqueued  = "enqueued"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)

// enqueueTimeout bounds one Redis round trip.
const enqueueTimeout = 2 * time.Second

// maxInFlight caps background enqueues started by StaleServed. Stale hits
// beyond it are dropped; the entry stays stale and the next hit retries.
const maxInFlight = 64

// TaskClient is the subset of *asynq.Client the Enqueuer uses.
type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Enqueuer schedules refresh tasks for stale cache entries.
type Enqueuer struct {
	client TaskClient
	opts   []asynq.Option
	logger zerolog.Logger

	inflight chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
}

var _ metacache.StaleHook = (*Enqueuer)(nil)

// NewEnqueuer creates an enqueuer over client using the queue, retry and
// uniqueness settings in cfg.
func NewEnqueuer(client TaskClient, cfg *config.JobsConfig) *Enqueuer {
	opts := []asynq.Option{asynq.MaxRetry(cfg.MaxRetry)}
	if cfg.Queue != "" {
		opts = append(opts, asynq.Queue(cfg.Queue))
	}
	if cfg.UniqueFor > 0 {
		opts = append(opts, asynq.Unique(cfg.UniqueFor))
	}
	return &Enqueuer{
		client:   client,
		opts:     opts,
		logger:   logging.WithComponent("jobs"),
		inflight: make(chan struct{}, maxInFlight),
	}
}

// NewRedisClient creates an asynq client for cfg.RedisAddr.
func NewRedisClient(cfg *config.JobsConfig) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
}

// StaleServed implements metacache.StaleHook. The enqueue runs in the
// background so the caller that was served the stale entry never waits on
// Redis; outcomes are only logged and counted.
func (e *Enqueuer) StaleServed(ctx context.Context, endpoint string, params map[string]string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	select {
	case e.inflight <- struct{}{}:
	default:
		e.mu.Unlock()
		logging.Enrich(ctx, e.logger).Warn().Str("endpoint", endpoint).Msg("Refresh enqueue backlog full, dropping")
		metrics.RecordJobEnqueued(OutcomeDropped)
		return
	}
	e.wg.Add(1)
	e.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	params = maps.Clone(params)
	go func() {
		defer e.wg.Done()
		defer func() { <-e.inflight }()
		metrics.RecordJobEnqueued(e.Enqueue(ctx, endpoint, params))
	}()
}

// Enqueue schedules a refresh and returns the outcome.
func (e *Enqueuer) Enqueue(ctx context.Context, endpoint string, params map[string]string) string {
	logger := logging.Enrich(ctx, e.logger).With().Str("endpoint", endpoint).Logger()

	task, err := NewRefreshTask(endpoint, params, e.opts...)
	if err != nil {
		logger.Warn().Err(err).Msg("Refresh task rejected")
		return OutcomeFailed
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()

	info, err := e.client.EnqueueContext(ctx, task)
	switch {
	case errors.Is(err, asynq.ErrDuplicateTask), errors.Is(err, asynq.ErrTaskIDConflict):
		logger.Debug().Msg("Refresh already queued")
		return OutcomeDuplicate
	case err != nil:
		logger.Warn().Err(err).Msg("Failed to enqueue refresh task")
		return OutcomeFailed
	}
	logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("Refresh task enqueued")
	return OutcomeEnqueued
}

// Close waits for background enqueues, then releases the underlying client.
// StaleServed calls after Close are ignored.
func (e *Enqueuer) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.wg.Wait()
	return e.client.Close()
}
