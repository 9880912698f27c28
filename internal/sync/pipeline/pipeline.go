// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pipeline composes the five sync stages into one cycle per entity
class (spec §5): Producer → Enricher → Merger → Transformer → Loader.

It is grounded on the original pipeline's "pull-at-head, push-downstream"
coroutine chain (postgres_to_es/src/etl.py's producer/enricher/merger/
transformer/loader coroutines wired by a corofy pipeline() call), simplified
to a synchronous page-fetch loop per design note 9: the spec explicitly
reserves the channel-connected, concurrently-running version for a
"parallel-capable implementation", which this is not (spec §5). Every page
that the Producer or the filmwork self-walk yields is carried all the way
through to the Loader before the next page is fetched.

Watermark persistence ordering follows spec §7: a stream's cursor is
advanced only after its page has been durably handed to and acknowledged by
the Loader, never before and never for a partially processed page — see
[producer.Walk] and [enricher.Walk], which both defer Set until after their
onPage callback returns successfully.
*/
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trandinhkhoi/filmsync/internal/platform/ctxutil"
	"github.com/trandinhkhoi/filmsync/internal/platform/retry"
	"github.com/trandinhkhoi/filmsync/internal/sync/document"
	"github.com/trandinhkhoi/filmsync/internal/sync/enricher"
	"github.com/trandinhkhoi/filmsync/internal/sync/entity"
	"github.com/trandinhkhoi/filmsync/internal/sync/fanout"
	"github.com/trandinhkhoi/filmsync/internal/sync/merger"
	"github.com/trandinhkhoi/filmsync/internal/sync/producer"
	"github.com/trandinhkhoi/filmsync/internal/sync/transformer"
	"github.com/trandinhkhoi/filmsync/internal/sync/watermark"
)

// Loader ships a page of documents to the search index.
type Loader interface {
	Load(ctx context.Context, docs []document.IndexDocument) error
}

// Joiner fetches the fan-out rows backing a page of filmwork ids; satisfied
// by [merger.Joiner].
type Joiner interface {
	FetchRows(ctx context.Context, filmworkIDs []string) ([]fanout.Row, error)
}

// Runner drives one entity class's full sync cycle.
type Runner struct {
	Class entity.Class

	// Fetcher is nil for [entity.Filmwork]: that class has no producer of
	// its own, it self-walks content.filmwork through its own Resolver.
	Fetcher  producer.Fetcher
	Resolver enricher.Resolver
	Joiner   Joiner
	Loader   Loader
	Store    watermark.Store

	DefaultCursor watermark.Cursor
	PageSize      int

	DBPolicy   retry.Policy
	HTTPPolicy retry.Policy

	Logger *slog.Logger
}

// Run executes one full cycle for the runner's entity class: every page of
// changed ids the Producer (or, for [entity.Filmwork], the self-walk)
// yields is resolved, joined, folded, and shipped before the stream's
// watermark advances past it.
func (r *Runner) Run(ctx context.Context) error {
	// Stamp the cycle with a correlation id and the runner's logger so any
	// stage deep in the Producer/Enricher/Merger/Loader call chain can pull
	// both back out of ctx without threading extra parameters through every
	// layer (grounded on the teacher's ctxkey/ctxutil request-scoped pattern,
	// generalized from one HTTP request to one sync cycle).
	cycleID := fmt.Sprintf("%s-%d", r.Class, time.Now().UnixNano())
	ctx = ctxutil.WithCycleID(ctx, cycleID)
	ctx = ctxutil.WithLogger(ctx, r.Logger)

	log := r.Logger.With(slog.String("cycle_id", cycleID))
	log.Info("sync cycle starting", slog.String("entity", r.Class.String()))

	onFilmworkPage := func(ctx context.Context, filmworkIDs []string) error {
		return r.handleFilmworkPage(ctx, filmworkIDs)
	}

	var err error
	if r.Class == entity.Filmwork {
		err = enricher.Walk(ctx, r.Resolver, r.Store, r.Class.StreamKey(), r.DefaultCursor, nil, r.PageSize, onFilmworkPage)
	} else {
		err = producer.Walk(ctx, r.Fetcher, r.Store, r.Class.StreamKey(), r.DefaultCursor, r.PageSize,
			func(ctx context.Context, changedIDs []string) error {
				return enricher.Walk(ctx, r.Resolver, r.Store, entity.Filmwork.StreamKey(), r.DefaultCursor, changedIDs, r.PageSize, onFilmworkPage)
			})
	}
	if err != nil {
		log.Error("sync cycle failed", slog.String("entity", r.Class.String()), slog.Any("error", err))
		return fmt.Errorf("pipeline: %s cycle: %w", r.Class, err)
	}

	log.Info("sync cycle finished", slog.String("entity", r.Class.String()))
	return nil
}

// handleFilmworkPage runs Merger → Transformer → Loader for one page of
// filmwork ids, each external call wrapped in its own retry policy.
func (r *Runner) handleFilmworkPage(ctx context.Context, filmworkIDs []string) error {
	if len(filmworkIDs) == 0 {
		return nil
	}

	log := ctxutil.GetLogger(ctx).With(slog.String("cycle_id", ctxutil.GetCycleID(ctx)))

	var rows []fanout.Row
	err := retry.Do(ctx, r.DBPolicy, func(ctx context.Context) error {
		fetched, err := r.Joiner.FetchRows(ctx, filmworkIDs)
		if err != nil {
			return err
		}
		rows = fetched
		return nil
	})
	if err != nil {
		return fmt.Errorf("merger: %w", err)
	}

	docs := transformer.Transform(rows)

	err = retry.Do(ctx, r.HTTPPolicy, func(ctx context.Context) error {
		return r.Loader.Load(ctx, docs)
	})
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}

	log.Info("page indexed",
		slog.String("entity", r.Class.String()),
		slog.Int("filmworks", len(filmworkIDs)),
		slog.Int("documents", len(docs)),
	)
	return nil
}
