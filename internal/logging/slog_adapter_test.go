// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))

	logger.With("service", "sweeper").WithGroup("restart").Warn("service failed",
		"attempt", 3, "backoff", 2*time.Second, slog.Group("cause", "kind", "panic"))

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"service failed"`,
		`"service":"sweeper"`,
		`"restart.attempt":3`,
		`"restart.cause.kind":"panic"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want string
	}{
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
		{slog.LevelError + 4, "error"},
	}
	for _, tt := range tests {
		if got := toZerologLevel(tt.in).String(); got != tt.want {
			t.Errorf("toZerologLevel(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
