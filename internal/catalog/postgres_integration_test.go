// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

//go:build integration

package catalog

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/marquee/internal/testinfra"
)

const seedSQL = `
INSERT INTO users (id) VALUES ('u1'), ('u2');
INSERT INTO content (id, title, year, type, media, external_id, view_count) VALUES
	('m1', 'Heat', '1995', 'movie', 'movie', 949, 7),
	('s1', 'Dark', '2017', 'series', NULL, 70523, 3),
	('a1', 'Arcane', '2021', 'animation', 'tv', 94605, 1),
	('d1', 'Untitled', NULL, 'documentary', NULL, NULL, 0);
INSERT INTO genres (id, name) VALUES ('g1', 'Crime'), ('g2', 'Drama');
INSERT INTO tags (id, name) VALUES ('t1', 'heist');
INSERT INTO content_genres (content_id, genre_id, position) VALUES
	('m1', 'g2', 1), ('m1', 'g1', 0), ('s1', 'g2', 0);
INSERT INTO content_tags (content_id, tag_id) VALUES ('m1', 't1');
INSERT INTO watch_history (user_id, content_id, watched_at) VALUES
	('u1', 's1', '2026-01-03T00:00:00Z'),
	('u1', 'm1', '2026-01-01T00:00:00Z');
INSERT INTO favorites (user_id, content_id) VALUES ('u1', 'm1');
`

func TestPostgresSource(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	ctx := context.Background()

	pg, err := testinfra.NewPostgresContainer(ctx)
	require.NoError(t, err)
	testinfra.CleanupContainer(t, pg)

	pool, err := pgxpool.New(ctx, pg.URL)
	require.NoError(t, err)
	defer pool.Close()
	_, err = pool.Exec(ctx, PostgresSchema)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, seedSQL)
	require.NoError(t, err)

	src, err := OpenPostgresSource(ctx, pg.URL)
	require.NoError(t, err)
	defer src.Close()

	snap, err := src.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Items, 4)

	heat, err := snap.Item("m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Crime", "Drama"}, heat.Genres)
	assert.Equal(t, []string{"heist"}, heat.Tags)
	assert.Equal(t, int64(949), *heat.ExternalID)
	assert.Equal(t, int64(7), heat.ViewCount)

	arcane, err := snap.Item("a1")
	require.NoError(t, err)
	assert.Equal(t, "tv", arcane.ProviderMedia())
	dark, err := snap.Item("s1")
	require.NoError(t, err)
	assert.Equal(t, "tv", dark.ProviderMedia(), "media falls back to the type")

	doc, err := snap.Item("d1")
	require.NoError(t, err)
	assert.Equal(t, "unknown", doc.Year)
	assert.Nil(t, doc.ExternalID)

	uc, err := src.UserContext(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, uc.History, 2)
	assert.Equal(t, "m1", uc.History[0].ContentID, "history is oldest first")
	require.Len(t, uc.Favorites, 1)
	assert.Equal(t, "Heat", uc.Favorites[0].Title)

	empty, err := src.UserContext(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, empty.History)

	_, err = src.UserContext(ctx, "u3")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
