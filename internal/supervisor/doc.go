// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor provides process supervision for Marquee using suture v4.

Every long-running component runs as a suture.Service in a three-layer tree:

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogService (catalog reload + id mapping index)
	│   └── SweeperService (expired entry purge + compaction)
	├── JobsSupervisor ("jobs-layer")
	│   └── jobs.Worker (background stale refresh, when enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's decaying failure counter.
Layers count failures independently, so a worker that cannot reach its
broker backs off without restarting the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogService(catalogCache, indexer, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Service Interface

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning nil stops the service for good; returning an error restarts it.
On context cancellation services return promptly with ctx.Err().

UnstoppedServiceReport lists services that ignored the shutdown timeout.
*/
package supervisor
