// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package producer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trandinhkhoi/filmsync/internal/sync/producer"
	"github.com/trandinhkhoi/filmsync/internal/sync/watermark"
)

type fakeFetcher struct {
	pages [][]producer.IDRow
	calls int
}

func (f *fakeFetcher) FetchPage(ctx context.Context, cursor watermark.Cursor, limit int) ([]producer.IDRow, error) {
	if f.calls >= len(f.pages) {
		return nil, nil
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

type memStore struct {
	cursors map[string]watermark.Cursor
}

func newMemStore() *memStore { return &memStore{cursors: make(map[string]watermark.Cursor)} }

func (s *memStore) Get(streamKey string, defaultCursor watermark.Cursor) (watermark.Cursor, error) {
	if c, ok := s.cursors[streamKey]; ok {
		return c, nil
	}
	return defaultCursor, nil
}

func (s *memStore) Set(streamKey string, c watermark.Cursor) error {
	s.cursors[streamKey] = c
	return nil
}

/*
TestWalk_StopsOnEmptyPageAndAdvancesWatermark verifies Walk consumes every
non-empty page, calls onPage for each, and persists the final cursor.
*/
func TestWalk_StopsOnEmptyPageAndAdvancesWatermark(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	fetcher := &fakeFetcher{pages: [][]producer.IDRow{
		{{ID: "a", Modified: t0}, {ID: "b", Modified: t0}},
		{{ID: "c", Modified: t1}},
	}}
	store := newMemStore()

	var seenPages [][]string
	err := producer.Walk(context.Background(), fetcher, store, "genre_updated_at", watermark.Cursor{}, 100,
		func(ctx context.Context, ids []string) error {
			seenPages = append(seenPages, ids)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, seenPages)
	assert.Equal(t, 3, fetcher.calls)

	got, _ := store.Get("genre_updated_at", watermark.Cursor{})
	assert.Equal(t, "c", got.ID)
	assert.True(t, t1.Equal(got.Modified))
}

/*
TestWalk_OnPageErrorStopsWithoutAdvancingWatermark verifies a failing
onPage callback aborts the walk and never advances the cursor for that
page, so a retry resumes the same page.
*/
func TestWalk_OnPageErrorStopsWithoutAdvancingWatermark(t *testing.T) {
	errBoom := assert.AnError
	fetcher := &fakeFetcher{pages: [][]producer.IDRow{
		{{ID: "a", Modified: time.Now()}},
	}}
	store := newMemStore()

	err := producer.Walk(context.Background(), fetcher, store, "genre_updated_at", watermark.Cursor{}, 100,
		func(ctx context.Context, ids []string) error {
			return errBoom
		})

	require.Error(t, err)
	_, exists := store.cursors["genre_updated_at"]
	assert.False(t, exists)
}
