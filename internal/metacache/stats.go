// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metacache

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/metrics"
)

// Stats summarizes the cache contents.
type Stats struct {
	Total           int            `json:"total"`
	Valid           int            `json:"valid"`
	Expired         int            `json:"expired"`
	ApproxSizeBytes int64          `json:"approx_size_bytes"`
	SampleSize      int            `json:"sample_size"`
	ByPrefix        map[string]int `json:"by_prefix"`
	OldestCreatedAt *time.Time     `json:"oldest_created_at,omitempty"`
	NewestCreatedAt *time.Time     `json:"newest_created_at,omitempty"`
	NextExpiry      *time.Time     `json:"next_expiry,omitempty"`
	TTLHours        int            `json:"ttl_hours"`
}

// Stats counts entries and estimates total size from a random sample of at
// most the configured sample size.
func (g *Gateway) Stats(ctx context.Context) (*Stats, error) {
	store, err := g.acquire(ctx)
	if err != nil {
		return nil, err
	}
	metas, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cache entries: %w", err)
	}

	now := g.now()
	s := &Stats{
		Total:    len(metas),
		ByPrefix: make(map[string]int),
		TTLHours: int(g.TTL() / time.Hour),
	}

	for i := range metas {
		m := &metas[i]
		if now.Before(m.ExpiresAt) {
			s.Valid++
			if s.NextExpiry == nil || m.ExpiresAt.Before(*s.NextExpiry) {
				t := m.ExpiresAt
				s.NextExpiry = &t
			}
		} else {
			s.Expired++
		}
		s.ByPrefix[EndpointPrefix(m.Endpoint)]++

		if s.OldestCreatedAt == nil || m.CreatedAt.Before(*s.OldestCreatedAt) {
			t := m.CreatedAt
			s.OldestCreatedAt = &t
		}
		if s.NewestCreatedAt == nil || m.CreatedAt.After(*s.NewestCreatedAt) {
			t := m.CreatedAt
			s.NewestCreatedAt = &t
		}
	}
	metrics.UpdateCacheEntries(s.Valid, s.Expired)

	if s.Total == 0 {
		return s, nil
	}

	n := min(g.sampleSize, s.Total)
	var sampled, bytes int64
	for _, idx := range rand.Perm(s.Total)[:n] {
		e, err := store.Get(ctx, metas[idx].Key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sample cache entry: %w", err)
		}
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("measure cache entry: %w", err)
		}
		bytes += int64(len(data))
		sampled++
	}
	s.SampleSize = int(sampled)
	if sampled > 0 {
		s.ApproxSizeBytes = bytes / sampled * int64(s.Total)
	}
	return s, nil
}
