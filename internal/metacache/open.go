// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/config"
)

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns an OpenFunc for the configured backend. Nothing is opened
// until the gateway first needs the store.
func Open(cfg *config.CacheConfig) OpenFunc {
	backend, path := cfg.Backend, cfg.Path
	return func(ctx context.Context) (Store, error) {
		switch backend {
		case BackendBadger:
			return OpenBadgerStore(path)
		case BackendSQLite:
			return OpenSQLiteStore(ctx, path)
		case BackendMemory:
			return NewMemoryStore(), nil
		default:
			return nil, fmt.Errorf("unknown cache backend %q", backend)
		}
	}
}

// StaticStore returns an OpenFunc that always yields s.
func StaticStore(s Store) OpenFunc {
	return func(context.Context) (Store, error) { return s, nil }
}
