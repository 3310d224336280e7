// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps entries in a map. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	e.Payload = append([]byte(nil), e.Payload...)
	return &e, nil
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, e *Entry) error {
	cp := *e
	cp.Payload = append([]byte(nil), e.Payload...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Key] = cp
	return nil
}

// DeletePrefix implements Store.
func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

// DeleteExpiredBefore implements Store.
func (s *MemoryStore) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k, e := range s.entries {
		if e.ExpiresAt.Before(cutoff) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]EntryMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]EntryMeta, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, EntryMeta{Key: e.Key, Endpoint: e.Endpoint, CreatedAt: e.CreatedAt, ExpiresAt: e.ExpiresAt})
	}
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
