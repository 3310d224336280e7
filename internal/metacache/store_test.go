// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

func storeFactories() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(*testing.T) Store { return NewMemoryStore() },
		"badger": func(t *testing.T) Store {
			db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
			if err != nil {
				t.Fatalf("open badger: %v", err)
			}
			t.Cleanup(func() { db.Close() })
			return NewBadgerStore(db)
		},
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "metacache.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			return s
		},
	}
}

var storeEpoch = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

func entryAt(key string, created time.Time, ttl time.Duration) *Entry {
	return &Entry{
		Key:       key,
		Endpoint:  key,
		Payload:   json.RawMessage(`{"k":"` + key + `"}`),
		CreatedAt: created,
		ExpiresAt: created.Add(ttl),
	}
}

func TestStores(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Run("get missing", func(t *testing.T) {
				s := factory(t)
				defer s.Close()
				if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
					t.Errorf("Get() error = %v, want ErrNotFound", err)
				}
			})
			t.Run("put replaces", func(t *testing.T) { testPutReplaces(t, factory(t)) })
			t.Run("delete prefix", func(t *testing.T) { testDeletePrefix(t, factory(t)) })
			t.Run("delete expired", func(t *testing.T) { testDeleteExpired(t, factory(t)) })
		})
	}
}

func testPutReplaces(t *testing.T, s Store) {
	defer s.Close()
	ctx := context.Background()

	if err := s.Put(ctx, entryAt("movie/1", storeEpoch, time.Hour)); err != nil {
		t.Fatal(err)
	}
	updated := entryAt("movie/1", storeEpoch.Add(time.Hour), 2*time.Hour)
	updated.Payload = json.RawMessage(`{"v":2}`)
	if err := s.Put(ctx, updated); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "movie/1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got.Payload) != `{"v":2}` {
		t.Errorf("Payload = %s, want replaced value", got.Payload)
	}
	if !got.ExpiresAt.Equal(updated.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, updated.ExpiresAt)
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 {
		t.Fatalf("List() = %d entries, want 1 (one entry per key)", len(metas))
	}
	if metas[0].Endpoint != "movie/1" || !metas[0].CreatedAt.Equal(updated.CreatedAt) {
		t.Errorf("List()[0] = %+v", metas[0])
	}
}

func testDeletePrefix(t *testing.T, s Store) {
	defer s.Close()
	ctx := context.Background()
	for _, k := range []string{"movie/1", "movie/1/similar", "movie/2", "tv/1", "movie_x"} {
		if err := s.Put(ctx, entryAt(k, storeEpoch, time.Hour)); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.DeletePrefix(ctx, "movie/1")
	if err != nil || n != 2 {
		t.Fatalf("DeletePrefix(movie/1) = %d, %v; want 2", n, err)
	}
	n, err = s.DeletePrefix(ctx, "movie%")
	if err != nil || n != 0 {
		t.Fatalf("DeletePrefix(movie%%) = %d, %v; want 0 (no wildcards)", n, err)
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, m := range metas {
		keys = append(keys, m.Key)
	}
	sort.Strings(keys)
	if len(keys) != 3 || keys[0] != "movie/2" || keys[1] != "movie_x" || keys[2] != "tv/1" {
		t.Errorf("remaining keys = %v", keys)
	}

	n, err = s.DeletePrefix(ctx, "")
	if err != nil || n != 3 {
		t.Fatalf("DeletePrefix(\"\") = %d, %v; want 3", n, err)
	}
}

func testDeleteExpired(t *testing.T, s Store) {
	defer s.Close()
	ctx := context.Background()
	for i, ttl := range []time.Duration{time.Hour, 2 * time.Hour, 48 * time.Hour} {
		key := []string{"a", "b", "c"}[i]
		if err := s.Put(ctx, entryAt(key, storeEpoch, ttl)); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.DeleteExpiredBefore(ctx, storeEpoch.Add(3*time.Hour))
	if err != nil || n != 2 {
		t.Fatalf("DeleteExpiredBefore() = %d, %v; want 2", n, err)
	}
	if _, err := s.Get(ctx, "c"); err != nil {
		t.Errorf("Get(c) error = %v, want surviving entry", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(a) error = %v, want ErrNotFound", err)
	}
}

func TestParseExpiryKey(t *testing.T) {
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	k := expiryKey(at, "discover/movie?language=es-ES")

	gotAt, gotKey, ok := parseExpiryKey(k)
	if !ok {
		t.Fatalf("parseExpiryKey(%q) failed", k)
	}
	if !gotAt.Equal(at) || gotKey != "discover/movie?language=es-ES" {
		t.Errorf("parseExpiryKey() = %v, %q", gotAt, gotKey)
	}
	if _, _, ok := parseExpiryKey([]byte("metacache:exp:notanumber:x")); ok {
		t.Error("parseExpiryKey accepted a malformed key")
	}
}

func openBadgerStore(t *testing.T) (*BadgerStore, *badger.DB) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewBadgerStore(db), db
}

// assertBadgerIndexed fails when an entry lacks its expiry key or an expiry
// key points at a missing entry or a different expiry.
func assertBadgerIndexed(t *testing.T, s *BadgerStore) {
	t.Helper()
	ctx := context.Background()
	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	indexed := make(map[string]bool, len(metas))
	for _, m := range metas {
		e, err := s.Get(ctx, m.Key)
		if err != nil {
			t.Errorf("expiry key for %q has no entry: %v", m.Key, err)
			continue
		}
		if !e.ExpiresAt.Equal(m.ExpiresAt) {
			t.Errorf("expiry key for %q = %v, entry expires %v", m.Key, m.ExpiresAt, e.ExpiresAt)
		}
		indexed[m.Key] = true
	}

	err = s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(entryKeyPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key()[len(prefix):])
			if !indexed[key] {
				t.Errorf("entry %q has no expiry key", key)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("scan entries: %v", err)
	}
}

func TestBadgerStore_PurgeSpansBatches(t *testing.T) {
	s, _ := openBadgerStore(t)
	ctx := context.Background()

	total := 2*purgeBatchSize + 7
	for i := 0; i < total; i++ {
		key := fmt.Sprintf("movie/%d", i)
		if err := s.Put(ctx, entryAt(key, storeEpoch, time.Duration(i+1)*time.Second)); err != nil {
			t.Fatalf("Put(%s) error = %v", key, err)
		}
	}
	if err := s.Put(ctx, entryAt("tv/1", storeEpoch, time.Hour)); err != nil {
		t.Fatalf("Put(tv/1) error = %v", err)
	}

	n, err := s.DeleteExpiredBefore(ctx, storeEpoch.Add(time.Duration(purgeBatchSize+3)*time.Second))
	if err != nil || n != purgeBatchSize+2 {
		t.Fatalf("DeleteExpiredBefore() = %d, %v; want %d", n, err, purgeBatchSize+2)
	}
	assertBadgerIndexed(t, s)

	n, err = s.DeletePrefix(ctx, "movie/")
	if err != nil || n != total-(purgeBatchSize+2) {
		t.Fatalf("DeletePrefix() = %d, %v; want %d", n, err, total-(purgeBatchSize+2))
	}
	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(metas) != 1 || metas[0].Key != "tv/1" {
		t.Errorf("List() after purge = %+v, want only tv/1", metas)
	}
	assertBadgerIndexed(t, s)
}

func TestBadgerStore_DeleteExpiredBefore_StaleIndexKeepsEntry(t *testing.T) {
	s, db := openBadgerStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, entryAt("movie/603", storeEpoch, 48*time.Hour)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	// An expiry key left behind from an earlier, shorter TTL.
	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set(expiryKey(storeEpoch.Add(time.Minute), "movie/603"), []byte(`{"endpoint":"movie/603"}`))
	})
	if err != nil {
		t.Fatalf("seed stale expiry key: %v", err)
	}

	n, err := s.DeleteExpiredBefore(ctx, storeEpoch.Add(time.Hour))
	if err != nil || n != 0 {
		t.Fatalf("DeleteExpiredBefore() = %d, %v; want 0", n, err)
	}
	if _, err := s.Get(ctx, "movie/603"); err != nil {
		t.Errorf("Get() error = %v, want entry kept", err)
	}
	assertBadgerIndexed(t, s)
}

func TestBadgerStore_PurgeRacingPutLeavesNoOrphans(t *testing.T) {
	s, _ := openBadgerStore(t)
	ctx := context.Background()

	const keys = 200
	for i := 0; i < keys; i++ {
		if err := s.Put(ctx, entryAt(fmt.Sprintf("movie/%d", i), storeEpoch, time.Minute)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	cutoff := storeEpoch.Add(time.Hour)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < keys; i++ {
			e := entryAt(fmt.Sprintf("movie/%d", i), storeEpoch, 24*time.Hour)
			err := s.Put(ctx, e)
			for errors.Is(err, badger.ErrConflict) {
				err = s.Put(ctx, e)
			}
			if err != nil {
				t.Errorf("Put() error = %v", err)
			}
		}
	}()
	if _, err := s.DeleteExpiredBefore(ctx, cutoff); err != nil && !errors.Is(err, badger.ErrConflict) {
		t.Errorf("DeleteExpiredBefore() error = %v", err)
	}
	wg.Wait()

	// Every refreshed entry outlives the cutoff.
	if _, err := s.DeleteExpiredBefore(ctx, cutoff); err != nil {
		t.Fatalf("DeleteExpiredBefore() error = %v", err)
	}
	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(metas) != keys {
		t.Errorf("List() len = %d, want %d", len(metas), keys)
	}
	assertBadgerIndexed(t, s)
}
