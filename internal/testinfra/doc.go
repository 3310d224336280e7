// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package testinfra starts Docker containers for integration tests.
//
// Everything here sits behind the integration build tag:
//
//	go test -tags integration ./internal/catalog/... ./internal/jobs/...
//
// Tests call SkipIfNoDocker first so the suite degrades to a skip on
// machines without a Docker daemon.
//
//	pg, err := testinfra.NewPostgresContainer(ctx)
//	require.NoError(t, err)
//	testinfra.CleanupContainer(t, pg)
//	src, err := catalog.OpenPostgresSource(ctx, pg.URL)
package testinfra
