// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package idmap

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"
)

// ErrNotMapped is returned when no mapping exists for an id.
var ErrNotMapped = errors.New("id not mapped")

// Mapping links a catalog content id to a provider id.
type Mapping struct {
	InternalID string    `json:"internal_id"`
	Media      string    `json:"media"`
	ExternalID int64     `json:"external_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store persists mappings. An internal id has at most one mapping, and a
// (media, external id) pair points to at most one internal id; Put replaces
// both directions.
type Store interface {
	Put(ctx context.Context, m Mapping) error
	// Internal returns the internal id for a provider id, or ErrNotMapped.
	Internal(ctx context.Context, media string, externalID int64) (string, error)
	// External returns the mapping for an internal id, or ErrNotMapped.
	External(ctx context.Context, internalID string) (Mapping, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

func externalKey(media string, externalID int64) string {
	return media + ":" + strconv.FormatInt(externalID, 10)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu         sync.RWMutex
	byInternal map[string]Mapping
	byExternal map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byInternal: make(map[string]Mapping),
		byExternal: make(map[string]string),
	}
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, m Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byInternal[m.InternalID]; ok {
		delete(s.byExternal, externalKey(old.Media, old.ExternalID))
	}
	ek := externalKey(m.Media, m.ExternalID)
	if prev, ok := s.byExternal[ek]; ok && prev != m.InternalID {
		delete(s.byInternal, prev)
	}
	s.byInternal[m.InternalID] = m
	s.byExternal[ek] = m.InternalID
	return nil
}

// Internal implements Store.
func (s *MemoryStore) Internal(_ context.Context, media string, externalID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byExternal[externalKey(media, externalID)]
	if !ok {
		return "", ErrNotMapped
	}
	return id, nil
}

// External implements Store.
func (s *MemoryStore) External(_ context.Context, internalID string) (Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byInternal[internalID]
	if !ok {
		return Mapping{}, ErrNotMapped
	}
	return m, nil
}

// Count implements Store.
func (s *MemoryStore) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byInternal), nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
