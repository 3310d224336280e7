// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// Entry is one cached provider response.
type Entry struct {
	Key       string          `json:"key"`
	Endpoint  string          `json:"endpoint"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Valid reports whether the entry is fresh at now.
func (e *Entry) Valid(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// EntryMeta is an entry without its payload.
type EntryMeta struct {
	Key       string
	Endpoint  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store persists cache entries. There is at most one entry per key; Put
// replaces it. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the entry for key regardless of expiry, or ErrNotFound.
	Get(ctx context.Context, key string) (*Entry, error)

	// Put inserts or replaces the entry for e.Key.
	Put(ctx context.Context, e *Entry) error

	// DeletePrefix removes entries whose key starts with prefix ("" removes
	// everything) and returns how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)

	// DeleteExpiredBefore removes entries with ExpiresAt before cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error)

	// List returns metadata for every entry.
	List(ctx context.Context) ([]EntryMeta, error)

	Close() error
}

// OpenFunc opens the backing store. The gateway calls it lazily.
type OpenFunc func(ctx context.Context) (Store, error)
