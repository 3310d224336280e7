// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS metacache_entries (
	cache_key  TEXT PRIMARY KEY,
	endpoint   TEXT NOT NULL,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_metacache_expires_at ON metacache_entries(expires_at);
`

// SQLiteStore implements Store on a single SQLite file. Timestamps are unix
// nanoseconds.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path and applies the schema.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}
	// One writer at a time; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createEntriesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate metacache schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*Entry, error) {
	var (
		e                  Entry
		created, expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT cache_key, endpoint, payload, created_at, expires_at FROM metacache_entries WHERE cache_key = ?`,
		key,
	).Scan(&e.Key, &e.Endpoint, &e.Payload, &created, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select entry: %w", err)
	}
	e.CreatedAt = time.Unix(0, created).UTC()
	e.ExpiresAt = time.Unix(0, expiresAt).UTC()
	return &e, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, e *Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metacache_entries (cache_key, endpoint, payload, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
			endpoint = excluded.endpoint,
			payload = excluded.payload,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`,
		e.Key, e.Endpoint, []byte(e.Payload), e.CreatedAt.UnixNano(), e.ExpiresAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

// DeletePrefix implements Store. The comparison is literal (no LIKE
// wildcards).
func (s *SQLiteStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	var (
		res sql.Result
		err error
	)
	if prefix == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM metacache_entries`)
	} else {
		res, err = s.db.ExecContext(ctx,
			`DELETE FROM metacache_entries WHERE substr(cache_key, 1, length(?)) = ?`,
			prefix, prefix)
	}
	if err != nil {
		return 0, fmt.Errorf("delete by prefix: %w", err)
	}
	return affected(res)
}

// DeleteExpiredBefore implements Store.
func (s *SQLiteStore) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM metacache_entries WHERE expires_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}
	return affected(res)
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]EntryMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cache_key, endpoint, created_at, expires_at FROM metacache_entries ORDER BY expires_at`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []EntryMeta
	for rows.Next() {
		var (
			m                  EntryMeta
			created, expiresAt int64
		)
		if err := rows.Scan(&m.Key, &m.Endpoint, &created, &expiresAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		m.CreatedAt = time.Unix(0, created).UTC()
		m.ExpiresAt = time.Unix(0, expiresAt).UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func affected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
