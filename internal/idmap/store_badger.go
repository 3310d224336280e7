// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package idmap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key prefixes for BadgerDB storage.
const (
	internalKeyPrefix = "idmap:int:"
	externalKeyPrefix = "idmap:ext:"
)

// BadgerStore implements Store on BadgerDB. Both directions are written in
// one transaction.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// NewBadgerStore uses an already open database, typically the one backing
// the metadata cache. Close leaves db open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens a dedicated database directory.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open idmap badger at %s: %w", path, err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// Put implements Store.
func (s *BadgerStore) Put(_ context.Context, m Mapping) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}
	ek := []byte(externalKeyPrefix + externalKey(m.Media, m.ExternalID))
	ik := []byte(internalKeyPrefix + m.InternalID)

	return s.db.Update(func(txn *badger.Txn) error {
		old, err := getMapping(txn, m.InternalID)
		switch {
		case err == nil:
			if err := txn.Delete([]byte(externalKeyPrefix + externalKey(old.Media, old.ExternalID))); err != nil {
				return fmt.Errorf("delete old external key: %w", err)
			}
		case !errors.Is(err, ErrNotMapped):
			return err
		}

		if item, err := txn.Get(ek); err == nil {
			prev, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read external key: %w", err)
			}
			if string(prev) != m.InternalID {
				if err := txn.Delete([]byte(internalKeyPrefix + string(prev))); err != nil {
					return fmt.Errorf("delete displaced mapping: %w", err)
				}
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get external key: %w", err)
		}

		if err := txn.Set(ik, data); err != nil {
			return fmt.Errorf("set mapping: %w", err)
		}
		if err := txn.Set(ek, []byte(m.InternalID)); err != nil {
			return fmt.Errorf("set external key: %w", err)
		}
		return nil
	})
}

func getMapping(txn *badger.Txn, internalID string) (Mapping, error) {
	var m Mapping
	item, err := txn.Get([]byte(internalKeyPrefix + internalID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return m, ErrNotMapped
	}
	if err != nil {
		return m, fmt.Errorf("get mapping: %w", err)
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &m)
	})
	if err != nil {
		return m, fmt.Errorf("decode mapping: %w", err)
	}
	return m, nil
}

// Internal implements Store.
func (s *BadgerStore) Internal(_ context.Context, media string, externalID int64) (string, error) {
	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(externalKeyPrefix + externalKey(media, externalID)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotMapped
		}
		if err != nil {
			return fmt.Errorf("get external key: %w", err)
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	return id, err
}

// External implements Store.
func (s *BadgerStore) External(_ context.Context, internalID string) (Mapping, error) {
	var m Mapping
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		m, err = getMapping(txn, internalID)
		return err
	})
	return m, err
}

// Count implements Store.
func (s *BadgerStore) Count(context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(internalKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
