// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package jobs refreshes stale metadata cache entries in the background.

When the gateway serves an expired entry because the provider failed, the
Enqueuer (registered as the gateway's StaleHook) puts a metacache:refresh
task on an asynq queue. The task is unique per cache key for
jobs.unique_for, so a burst of stale reads produces one refresh. The Worker
runs the Handler, which re-fetches the entry without stale fallback so a
still-failing provider surfaces as an error and asynq retries with backoff.

Malformed payloads are dropped with asynq.SkipRetry.
*/
package jobs
