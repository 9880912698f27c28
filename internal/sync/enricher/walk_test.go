// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enricher_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trandinhkhoi/filmsync/internal/sync/enricher"
	"github.com/trandinhkhoi/filmsync/internal/sync/producer"
	"github.com/trandinhkhoi/filmsync/internal/sync/watermark"
)

type fakeResolver struct {
	pages        [][]producer.IDRow
	calls        int
	seenChangeID []string
}

func (r *fakeResolver) FetchFilmworkIDs(ctx context.Context, changedIDs []string, cursor watermark.Cursor, limit int) ([]producer.IDRow, error) {
	r.seenChangeID = changedIDs
	if r.calls >= len(r.pages) {
		return nil, nil
	}
	page := r.pages[r.calls]
	r.calls++
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
TestWalk_GenrePersonPageNeverAdvancesFilmworkWatermark verifies a
changed-id-triggered page (genre/person class) passes the ids through to
the resolver but leaves the shared filmwork watermark untouched: per spec
§4.3, that page is filtered to a strict subset of everything modified in
the window, so persisting past it would make the next filmwork self-walk
skip the unmatched filmworks forever.
*/
func TestWalk_GenrePersonPageNeverAdvancesFilmworkWatermark(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	resolver := &fakeResolver{pages: [][]producer.IDRow{
		{{ID: "fw-1", Modified: t0}},
	}}
	store := newMemStore()

	var seen []string
	err := enricher.Walk(context.Background(), resolver, store, "filmwork_updated_at", watermark.Cursor{},
		[]string{"genre-1", "genre-2"}, 100,
		func(ctx context.Context, filmworkIDs []string) error {
			seen = append(seen, filmworkIDs...)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{"fw-1"}, seen)
	assert.Equal(t, []string{"genre-1", "genre-2"}, resolver.seenChangeID)

	got, _ := store.Get("filmwork_updated_at", watermark.Cursor{})
	assert.Equal(t, watermark.Cursor{}, got, "genre/person page must not persist the shared filmwork watermark")
}

/*
TestWalk_FilmworkSelfWalkAdvancesFilmworkWatermark verifies only the
filmwork class's self-walk (changedIDs == nil) is allowed to advance and
persist the shared filmwork watermark.
*/
func TestWalk_FilmworkSelfWalkAdvancesFilmworkWatermark(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	resolver := &fakeResolver{pages: [][]producer.IDRow{
		{{ID: "fw-9", Modified: t0}},
	}}
	store := newMemStore()

	var seen []string
	err := enricher.Walk(context.Background(), resolver, store, "filmwork_updated_at", watermark.Cursor{},
		nil, 100,
		func(ctx context.Context, filmworkIDs []string) error {
			seen = append(seen, filmworkIDs...)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{"fw-9"}, seen)
	assert.Nil(t, resolver.seenChangeID)

	got, _ := store.Get("filmwork_updated_at", watermark.Cursor{})
	assert.Equal(t, "fw-9", got.ID)
}

/*
TestWalk_EmptyChangedIDsForFilmworkSelfWalk verifies the filmwork class's
self-walk is driven with no changed-id filter and that an empty result
never calls onPage.
*/
func TestWalk_EmptyChangedIDsForFilmworkSelfWalk(t *testing.T) {
	resolver := &fakeResolver{pages: [][]producer.IDRow{}}
	store := newMemStore()

	err := enricher.Walk(context.Background(), resolver, store, "filmwork_updated_at", watermark.Cursor{},
		nil, 100,
		func(ctx context.Context, filmworkIDs []string) error {
			t.Fatal("onPage should not be called for an empty result")
			return nil
		})

	require.NoError(t, err)
	assert.Nil(t, resolver.seenChangeID)
}
