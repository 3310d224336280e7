// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

// TaskServer is the subset of *asynq.Server the Worker drives.
type TaskServer interface {
	Start(handler asynq.Handler) error
	Shutdown()
}

// Worker runs the asynq server as a supervised service.
type Worker struct {
	server  TaskServer
	handler asynq.Handler
	name    string
}

// NewWorker creates a worker for cfg that routes tasks to h.
func NewWorker(cfg *config.JobsConfig, h *Handler) *Worker {
	queue := cfg.Queue
	if queue == "" {
		queue = "default"
	}
	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{queue: 1},
		Logger:      asynqLogger{logging.WithComponent("asynq")},
	})
	return newWorker(srv, NewServeMux(h))
}

func newWorker(srv TaskServer, handler asynq.Handler) *Worker {
	return &Worker{server: srv, handler: handler, name: "refresh-worker"}
}

// Serve implements suture.Service.
func (w *Worker) Serve(ctx context.Context) error {
	if err := w.server.Start(w.handler); err != nil {
		return fmt.Errorf("start job worker: %w", err)
	}
	<-ctx.Done()
	w.server.Shutdown()
	return ctx.Err()
}

// String returns the service name for logging.
func (w *Worker) String() string {
	return w.name
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	logger zerolog.Logger
}

func (l asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
