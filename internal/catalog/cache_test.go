// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/marquee/internal/models"
)

type fakeSource struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (f *fakeSource) Snapshot(context.Context) (*Snapshot, error) {
	n := f.calls.Add(1)
	if f.fail.Load() {
		return nil, errors.New("database down")
	}
	id := "v" + string(rune('0'+n))
	return NewSnapshot([]models.ContentItem{{ID: id}}, nil, nil), nil
}

func (f *fakeSource) UserContext(_ context.Context, userID string) (*models.UserContext, error) {
	return &models.UserContext{UserID: userID}, nil
}

func (f *fakeSource) Close() error { return nil }

func TestCache_LoadsOnce(t *testing.T) {
	src := &fakeSource{}
	c := NewCache(src)
	ctx := context.Background()

	first, err := c.Current(ctx)
	require.NoError(t, err)
	second, err := c.Current(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestCache_RefreshKeepsPreviousOnFailure(t *testing.T) {
	src := &fakeSource{}
	c := NewCache(src)
	ctx := context.Background()

	first, err := c.Refresh(ctx)
	require.NoError(t, err)

	src.fail.Store(true)
	kept, err := c.Refresh(ctx)
	require.NoError(t, err)
	assert.Same(t, first, kept)

	src.fail.Store(false)
	next, err := c.Refresh(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.Items[0].ID, next.Items[0].ID)
}

func TestCache_FirstLoadFailure(t *testing.T) {
	src := &fakeSource{}
	src.fail.Store(true)

	_, err := NewCache(src).Current(context.Background())
	assert.Error(t, err)
}

func TestCache_ConcurrentCurrent(t *testing.T) {
	c := NewCache(&fakeSource{})
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := c.Current(context.Background())
			assert.NoError(t, err)
			assert.NotNil(t, s)
		}()
	}
	wg.Wait()
}

func TestCache_UserContext(t *testing.T) {
	uc, err := NewCache(&fakeSource{}).UserContext(context.Background(), "u9")
	require.NoError(t, err)
	assert.Equal(t, "u9", uc.UserID)
}
