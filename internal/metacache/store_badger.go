// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key prefixes for BadgerDB storage.
//
// Every entry has a companion expiry index key that sorts by expiry time, so
// purging and List never need to read payloads.
const (
	entryKeyPrefix  = "metacache:entry:"
	expiryKeyPrefix = "metacache:exp:"
)

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// NewBadgerStore wraps an open database. Close does not close db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens (or creates) a database directory.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// expiryIndexValue is stored under the expiry key.
type expiryIndexValue struct {
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"created_at"`
}

func entryKey(key string) []byte {
	return []byte(entryKeyPrefix + key)
}

// expiryKey sorts lexicographically by expiry: 20 zero-padded digits of
// unix nanoseconds, then the cache key.
func expiryKey(expiresAt time.Time, key string) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", expiryKeyPrefix, expiresAt.UnixNano(), key))
}

func parseExpiryKey(k []byte) (time.Time, string, bool) {
	rest := strings.TrimPrefix(string(k), expiryKeyPrefix)
	nanos, key, ok := strings.Cut(rest, ":")
	if !ok {
		return time.Time{}, "", false
	}
	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return time.Time{}, "", false
	}
	return time.Unix(0, n).UTC(), key, true
}

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context, key string) (*Entry, error) {
	var e Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get entry: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Put implements Store. The old expiry index key is replaced in the same
// transaction.
func (s *BadgerStore) Put(_ context.Context, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	idx, err := json.Marshal(expiryIndexValue{Endpoint: e.Endpoint, CreatedAt: e.CreatedAt})
	if err != nil {
		return fmt.Errorf("marshal expiry index: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if old, err := readEntry(txn, e.Key); err == nil {
			if err := txn.Delete(expiryKey(old.ExpiresAt, old.Key)); err != nil {
				return fmt.Errorf("delete old expiry index: %w", err)
			}
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		if err := txn.Set(entryKey(e.Key), data); err != nil {
			return fmt.Errorf("set entry: %w", err)
		}
		if err := txn.Set(expiryKey(e.ExpiresAt, e.Key), idx); err != nil {
			return fmt.Errorf("set expiry index: %w", err)
		}
		return nil
	})
}

func readEntry(txn *badger.Txn, key string) (*Entry, error) {
	item, err := txn.Get(entryKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	var e Entry
	if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &e) }); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	return &e, nil
}

// purgeBatchSize bounds the entries removed per transaction so a large purge
// stays under badger's transaction size limit.
const purgeBatchSize = 500

// maxPurgeConflicts is how many consecutive ErrConflict aborts a purge
// tolerates before giving up.
const maxPurgeConflicts = 5

// purgeBatch scans and deletes inside one read-write transaction. It returns
// the entries removed and the keys it scanned; fewer than purgeBatchSize
// scanned means nothing is left to do.
type purgeBatch func(txn *badger.Txn) (removed, scanned int, err error)

// purge runs batch in successive Update transactions until a batch comes back
// short. Scan and delete share a transaction, so a concurrent Put of the same
// key aborts the batch with ErrConflict and it is retried against the new
// state instead of leaving an orphaned expiry key behind.
func (s *BadgerStore) purge(ctx context.Context, batch purgeBatch) (int, error) {
	total, conflicts := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		var removed, scanned int
		err := s.db.Update(func(txn *badger.Txn) error {
			var err error
			removed, scanned, err = batch(txn)
			return err
		})
		if errors.Is(err, badger.ErrConflict) {
			conflicts++
			if conflicts > maxPurgeConflicts {
				return total, fmt.Errorf("purge: %w", err)
			}
			continue
		}
		if err != nil {
			return total, err
		}

		conflicts = 0
		total += removed
		if scanned < purgeBatchSize {
			return total, nil
		}
	}
}

// DeletePrefix implements Store. Entries are walked by key prefix and each
// one's expiry key is derived from the stored value in the same transaction.
func (s *BadgerStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	seek := entryKey(prefix)
	return s.purge(ctx, func(txn *badger.Txn) (int, int, error) {
		var doomed [][]byte

		opts := badger.DefaultIteratorOptions
		opts.Prefix = seek
		it := txn.NewIterator(opts)
		for it.Seek(seek); it.ValidForPrefix(seek) && len(doomed)/2 < purgeBatchSize; it.Next() {
			item := it.Item()
			var e Entry
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &e) }); err != nil {
				it.Close()
				return 0, 0, fmt.Errorf("decode entry %s: %w", item.Key(), err)
			}
			key := strings.TrimPrefix(string(item.Key()), entryKeyPrefix)
			doomed = append(doomed, item.KeyCopy(nil), expiryKey(e.ExpiresAt, key))
		}
		it.Close()

		for _, k := range doomed {
			if err := txn.Delete(k); err != nil {
				return 0, 0, fmt.Errorf("delete %s: %w", k, err)
			}
		}
		n := len(doomed) / 2
		return n, n, nil
	})
}

// DeleteExpiredBefore implements Store. It walks the expiry index in order and
// stops at the first key at or after cutoff. An index key whose entry has since
// moved to a different expiry is dropped without touching the entry.
func (s *BadgerStore) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	type expired struct {
		indexKey  []byte
		key       string
		expiresAt time.Time
	}

	return s.purge(ctx, func(txn *badger.Txn) (int, int, error) {
		var batch []expired

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte(expiryKeyPrefix)
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(batch) < purgeBatchSize; it.Next() {
			k := it.Item().KeyCopy(nil)
			expiresAt, key, ok := parseExpiryKey(k)
			if !ok {
				continue
			}
			if !expiresAt.Before(cutoff) {
				break
			}
			batch = append(batch, expired{indexKey: k, key: key, expiresAt: expiresAt})
		}
		it.Close()

		removed := 0
		for _, x := range batch {
			if err := txn.Delete(x.indexKey); err != nil {
				return 0, 0, fmt.Errorf("delete expiry index: %w", err)
			}
			e, err := readEntry(txn, x.key)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return 0, 0, err
			}
			if e.ExpiresAt.UnixNano() != x.expiresAt.UnixNano() {
				continue
			}
			if err := txn.Delete(entryKey(x.key)); err != nil {
				return 0, 0, fmt.Errorf("delete entry: %w", err)
			}
			removed++
		}
		return removed, len(batch), nil
	})
}

// List implements Store from the expiry index alone.
func (s *BadgerStore) List(_ context.Context) ([]EntryMeta, error) {
	var out []EntryMeta
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(expiryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			expiresAt, key, ok := parseExpiryKey(item.Key())
			if !ok {
				continue
			}
			var idx expiryIndexValue
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &idx) }); err != nil {
				return fmt.Errorf("decode expiry index for %s: %w", key, err)
			}
			out = append(out, EntryMeta{Key: key, Endpoint: idx.Endpoint, CreatedAt: idx.CreatedAt, ExpiresAt: expiresAt})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RunGC runs one badger value log GC pass. badger.ErrNoRewrite is not an error.
func (s *BadgerStore) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
		return nil
	}
	return err
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
