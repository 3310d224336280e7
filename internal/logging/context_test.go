// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || CorrelationIDFromContext(ctx) != "" {
		t.Fatal("empty context returned ids")
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithNewCorrelationID(ctx)

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
	if got := CorrelationIDFromContext(ctx); len(got) != 8 {
		t.Errorf("correlation id %q, want 8 chars", got)
	}
	if len(GenerateRequestID()) != 36 {
		t.Error("GenerateRequestID() is not a UUID")
	}
}

func TestCtx_AddsIDs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithCorrelationID(ContextWithRequestID(context.Background(), "req-9"), "abcd1234")
	Ctx(ctx).Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-9"`) || !strings.Contains(out, `"correlation_id":"abcd1234"`) {
		t.Errorf("Ctx() output missing ids: %s", out)
	}
}

func TestEnrich(t *testing.T) {
	var buf bytes.Buffer
	base := NewTestLogger(&buf).With().Str("component", "api").Logger()

	l := Enrich(ContextWithRequestID(context.Background(), "r-2"), base)
	l.Info().Msg("x")

	out := buf.String()
	if !strings.Contains(out, `"component":"api"`) || !strings.Contains(out, `"request_id":"r-2"`) {
		t.Errorf("Enrich() output = %s", out)
	}
}
