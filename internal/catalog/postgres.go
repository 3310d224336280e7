// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/marquee/internal/models"
)

// PostgresSchema is the catalog layout PostgresSource reads. The tables are
// owned by the content service; marquee never writes to them.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS content (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	original_title TEXT,
	year           TEXT,
	type           TEXT NOT NULL,
	media          TEXT,
	poster_url     TEXT,
	backdrop_url   TEXT,
	overview       TEXT,
	external_id    BIGINT,
	rating         DOUBLE PRECISION,
	view_count     BIGINT NOT NULL DEFAULT 0,
	position       SERIAL
);
CREATE TABLE IF NOT EXISTS genres (id TEXT PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS tags (id TEXT PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS content_genres (
	content_id TEXT NOT NULL REFERENCES content(id),
	genre_id   TEXT NOT NULL REFERENCES genres(id),
	position   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (content_id, genre_id)
);
CREATE TABLE IF NOT EXISTS content_tags (
	content_id TEXT NOT NULL REFERENCES content(id),
	tag_id     TEXT NOT NULL REFERENCES tags(id),
	PRIMARY KEY (content_id, tag_id)
);
CREATE TABLE IF NOT EXISTS watch_history (
	user_id    TEXT NOT NULL REFERENCES users(id),
	content_id TEXT NOT NULL REFERENCES content(id),
	watched_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS favorites (
	user_id    TEXT NOT NULL REFERENCES users(id),
	content_id TEXT NOT NULL REFERENCES content(id),
	added_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, content_id)
);
`

const (
	contentQuery = `
SELECT id, title, COALESCE(original_title, ''), COALESCE(year, ''), type, COALESCE(media, ''),
       poster_url, backdrop_url, COALESCE(overview, ''), external_id, rating, view_count
FROM content
ORDER BY position, id`

	contentGenresQuery = `
SELECT cg.content_id, g.name
FROM content_genres cg JOIN genres g ON g.id = cg.genre_id
ORDER BY cg.content_id, cg.position, g.name`

	contentTagsQuery = `
SELECT ct.content_id, t.name
FROM content_tags ct JOIN tags t ON t.id = ct.tag_id
ORDER BY ct.content_id, t.name`

	historyQuery = `
SELECT content_id, watched_at FROM watch_history
WHERE user_id = $1
ORDER BY watched_at ASC`

	favoritesQuery = `
SELECT c.id, c.title, COALESCE(c.original_title, ''), COALESCE(c.year, ''), c.type, COALESCE(c.media, ''),
       c.poster_url, c.backdrop_url, COALESCE(c.overview, ''), c.external_id, c.rating, c.view_count
FROM favorites f JOIN content c ON c.id = f.content_id
WHERE f.user_id = $1
ORDER BY f.added_at ASC`
)

// PostgresSource reads the catalog from a Postgres database through a pgx
// connection pool.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// OpenPostgresSource connects to databaseURL and verifies the connection.
func OpenPostgresSource(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect catalog database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// Snapshot implements Source.
func (p *PostgresSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	rows, err := p.pool.Query(ctx, contentQuery)
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(items))
	for i := range items {
		index[items[i].ID] = i
	}
	if err := p.attachLabels(ctx, contentGenresQuery, items, index, func(it *models.ContentItem, name string) {
		it.Genres = append(it.Genres, name)
	}); err != nil {
		return nil, fmt.Errorf("query content genres: %w", err)
	}
	if err := p.attachLabels(ctx, contentTagsQuery, items, index, func(it *models.ContentItem, name string) {
		it.Tags = append(it.Tags, name)
	}); err != nil {
		return nil, fmt.Errorf("query content tags: %w", err)
	}

	genres, err := p.namedRows(ctx, "SELECT id, name FROM genres ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	tags, err := p.namedRows(ctx, "SELECT id, name FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}

	g := make([]models.Genre, len(genres))
	for i, r := range genres {
		g[i] = models.Genre{ID: r[0], Name: r[1]}
	}
	t := make([]models.Tag, len(tags))
	for i, r := range tags {
		t[i] = models.Tag{ID: r[0], Name: r[1]}
	}
	return NewSnapshot(items, g, t), nil
}

// UserContext implements Source. History is oldest first.
func (p *PostgresSource) UserContext(ctx context.Context, userID string) (*models.UserContext, error) {
	var exists bool
	if err := p.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	rows, err := p.pool.Query(ctx, historyQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query watch history: %w", err)
	}
	history, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.WatchEntry, error) {
		var w models.WatchEntry
		err := row.Scan(&w.ContentID, &w.WatchedAt)
		return w, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan watch history: %w", err)
	}

	rows, err = p.pool.Query(ctx, favoritesQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	favorites, err := collectItems(rows)
	if err != nil {
		return nil, err
	}

	return &models.UserContext{UserID: userID, History: history, Favorites: favorites}, nil
}

// Close implements Source.
func (p *PostgresSource) Close() error {
	p.pool.Close()
	return nil
}

func collectItems(rows pgx.Rows) ([]models.ContentItem, error) {
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ContentItem, error) {
		var (
			it      models.ContentItem
			typ     string
			viewCnt int64
		)
		err := row.Scan(&it.ID, &it.Title, &it.OriginalTitle, &it.Year, &typ, &it.Media,
			&it.PosterURL, &it.BackdropURL, &it.Overview, &it.ExternalID, &it.Rating, &viewCnt)
		it.Type = models.ContentType(typ)
		it.ViewCount = viewCnt
		if it.Year == "" {
			it.Year = models.UnknownYear
		}
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan content: %w", err)
	}
	return items, nil
}

func (p *PostgresSource) attachLabels(ctx context.Context, query string, items []models.ContentItem,
	index map[string]int, add func(*models.ContentItem, string),
) error {
	pairs, err := p.namedRows(ctx, query)
	if err != nil {
		return err
	}
	for _, pr := range pairs {
		if i, ok := index[pr[0]]; ok {
			add(&items[i], pr[1])
		}
	}
	return nil
}

// namedRows runs a two-column text query.
func (p *PostgresSource) namedRows(ctx context.Context, query string) ([][2]string, error) {
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) ([2]string, error) {
		var r [2]string
		err := row.Scan(&r[0], &r[1])
		return r, err
	})
}
