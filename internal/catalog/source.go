// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
)

var (
	// ErrUserNotFound is returned by UserContext for unknown users.
	ErrUserNotFound = errors.New("user not found")

	// ErrContentNotFound is returned for content ids missing from the catalog.
	ErrContentNotFound = errors.New("content not found")
)

// Source kinds accepted by Open.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Snapshot is a point-in-time copy of the catalog. Items keep source order,
// which is the tie-breaker for every ranking built on top of it.
type Snapshot struct {
	Items    []models.ContentItem
	Genres   []models.Genre
	Tags     []models.Tag
	LoadedAt time.Time

	byID map[string]int
}

// NewSnapshot indexes items by id. The first item with a given id wins.
func NewSnapshot(items []models.ContentItem, genres []models.Genre, tags []models.Tag) *Snapshot {
	s := &Snapshot{
		Items:    items,
		Genres:   genres,
		Tags:     tags,
		LoadedAt: time.Now(),
		byID:     make(map[string]int, len(items)),
	}
	for i := range items {
		if _, dup := s.byID[items[i].ID]; !dup {
			s.byID[items[i].ID] = i
		}
	}
	return s
}

// Item returns the catalog item with the given id.
func (s *Snapshot) Item(id string) (*models.ContentItem, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, id)
	}
	return &s.Items[i], nil
}

// Source supplies the catalog and per-user signals. Implementations are
// read-only and safe for concurrent use.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	UserContext(ctx context.Context, userID string) (*models.UserContext, error)
	Close() error
}

// Open builds the source named by cfg.Source.
func Open(ctx context.Context, cfg *config.CatalogConfig) (Source, error) {
	switch cfg.Source {
	case SourceFile, "":
		return NewFileSource(cfg.Path), nil
	case SourcePostgres:
		return OpenPostgresSource(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
