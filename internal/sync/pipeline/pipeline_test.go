// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pipeline_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trandinhkhoi/filmsync/internal/sync/document"
	"github.com/trandinhkhoi/filmsync/internal/sync/entity"
	"github.com/trandinhkhoi/filmsync/internal/sync/fanout"
	"github.com/trandinhkhoi/filmsync/internal/sync/pipeline"
	"github.com/trandinhkhoi/filmsync/internal/sync/producer"
	"github.com/trandinhkhoi/filmsync/internal/platform/retry"
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

type fakeResolver struct {
	page []producer.IDRow
	done bool
}

func (r *fakeResolver) FetchFilmworkIDs(ctx context.Context, changedIDs []string, cursor watermark.Cursor, limit int) ([]producer.IDRow, error) {
	if r.done {
		return nil, nil
	}
	r.done = true
	return r.page, nil
}

type fakeJoiner struct {
	rows []fanout.Row
}

func (j *fakeJoiner) FetchRows(ctx context.Context, filmworkIDs []string) ([]fanout.Row, error) {
	return j.rows, nil
}

type fakeLoader struct {
	loaded [][]document.IndexDocument
}

func (l *fakeLoader) Load(ctx context.Context, docs []document.IndexDocument) error {
	l.loaded = append(l.loaded, docs)
	return nil
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

/*
TestRunner_Run_GenreClassDrivesFullChain verifies a non-filmwork class walks
its own producer, feeds the changed ids through the enricher, and lands a
document batch at the Loader.
*/
func TestRunner_Run_GenreClassDrivesFullChain(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{pages: [][]producer.IDRow{
		{{ID: "genre-1", Modified: t0}},
	}}
	resolver := &fakeResolver{page: []producer.IDRow{{ID: "fw-1", Modified: t0}}}
	joiner := &fakeJoiner{rows: []fanout.Row{
		{FilmworkID: "fw-1", Title: "Arrival"},
	}}
	loader := &fakeLoader{}

	runner := &pipeline.Runner{
		Class:         entity.Genre,
		Fetcher:       fetcher,
		Resolver:      resolver,
		Joiner:        joiner,
		Loader:        loader,
		Store:         newMemStore(),
		DefaultCursor: watermark.Cursor{},
		PageSize:      100,
		DBPolicy:      retry.DBPolicy(3, time.Second),
		HTTPPolicy:    retry.HTTPPolicy(3, time.Second),
		Logger:        testLogger(),
	}

	err := runner.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, loader.loaded, 1)
	require.Len(t, loader.loaded[0], 1)
	assert.Equal(t, "fw-1", loader.loaded[0][0].ID)
	assert.Equal(t, "Arrival", loader.loaded[0][0].Title)
}

/*
TestRunner_Run_FilmworkClassSkipsProducer verifies the filmwork class never
touches a Producer and instead self-walks straight through the Resolver.
*/
func TestRunner_Run_FilmworkClassSkipsProducer(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	resolver := &fakeResolver{page: []producer.IDRow{{ID: "fw-9", Modified: t0}}}
	joiner := &fakeJoiner{rows: []fanout.Row{{FilmworkID: "fw-9", Title: "Dune"}}}
	loader := &fakeLoader{}

	runner := &pipeline.Runner{
		Class:         entity.Filmwork,
		Resolver:      resolver,
		Joiner:        joiner,
		Loader:        loader,
		Store:         newMemStore(),
		DefaultCursor: watermark.Cursor{},
		PageSize:      100,
		DBPolicy:      retry.DBPolicy(3, time.Second),
		HTTPPolicy:    retry.HTTPPolicy(3, time.Second),
		Logger:        testLogger(),
	}

	err := runner.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, loader.loaded, 1)
	assert.Equal(t, "fw-9", loader.loaded[0][0].ID)
}
