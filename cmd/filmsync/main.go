// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Filmsync is the entry point for the content-to-search-index sync pipeline.

It runs one full cycle (genre, then person, then filmwork — see
[entity.All]) per invocation and exits; a scheduler (cron, a k8s CronJob)
is expected to re-invoke it periodically. Each cycle resumes from its
entity class's persisted watermark, so a missed or overlapping invocation
never reprocesses or loses a change (spec §4.1, §9).

Usage:

	go run cmd/filmsync/main.go

The environment variables are documented on [config.Config].

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish a connection to the relational source.
 4. Wiring: Build one [pipeline.Runner] per entity class.
 5. Cycle: Acquire the class's lock, run the cycle, release the lock.

No business logic lives here. This file is strictly for orchestration and
wiring.
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/trandinhkhoi/filmsync/internal/platform/config"
	"github.com/trandinhkhoi/filmsync/internal/platform/constants"
	"github.com/trandinhkhoi/filmsync/internal/platform/esclient"
	"github.com/trandinhkhoi/filmsync/internal/platform/locking"
	pgstore "github.com/trandinhkhoi/filmsync/internal/platform/postgres"
	"github.com/trandinhkhoi/filmsync/internal/platform/retry"
	"github.com/trandinhkhoi/filmsync/internal/sync/entity"
	"github.com/trandinhkhoi/filmsync/internal/sync/enricher"
	"github.com/trandinhkhoi/filmsync/internal/sync/loader"
	"github.com/trandinhkhoi/filmsync/internal/sync/merger"
	"github.com/trandinhkhoi/filmsync/internal/sync/pipeline"
	"github.com/trandinhkhoi/filmsync/internal/sync/producer"
	"github.com/trandinhkhoi/filmsync/internal/sync/watermark"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log = log.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("filmsync_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})).
			With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDBName)
	pool, err := pgstore.NewPool(startupCtx, dsn, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	// # 4. Lock backend — one client shared across classes, one lease key
	// per class (spec §9: single-instance-per-entity-class, not
	// single-instance-per-process).
	newLockerForClass, closeLockBackend, err := newLockerFactory(startupCtx, cfg, log)
	if err != nil {
		return fmt.Errorf("initialize lock backend: %w", err)
	}
	defer closeLockBackend()

	// # 5. Search-index client
	es := esclient.New(cfg.ESURL, cfg.ESIndex)
	esLoader := loader.New(es, log)

	dbPolicy := retry.DBPolicy(cfg.BackoffMaxTries, cfg.BackoffDBMaxTime)
	httpPolicy := retry.HTTPPolicy(cfg.BackoffMaxTries, cfg.BackoffHTTPTime)
	store := watermark.NewFileStore(cfg.StatePath)
	defaultCursor := watermark.Cursor{Modified: cfg.DefaultUpdatedAt}

	// # 6. One runner per entity class; all three share the same Merger
	// join query, Loader, and watermark store — only the Producer/Resolver
	// pair differs per class.
	joiner := merger.New(pool)
	runners := map[entity.Class]*pipeline.Runner{
		entity.Genre: {
			Class:         entity.Genre,
			Fetcher:       producer.NewGenreFetcher(pool),
			Resolver:      enricher.NewGenreResolver(pool),
			Joiner:        joiner,
			Loader:        esLoader,
			Store:         store,
			DefaultCursor: defaultCursor,
			PageSize:      cfg.PageSize,
			DBPolicy:      dbPolicy,
			HTTPPolicy:    httpPolicy,
			Logger:        log,
		},
		entity.Person: {
			Class:         entity.Person,
			Fetcher:       producer.NewPersonFetcher(pool),
			Resolver:      enricher.NewPersonResolver(pool),
			Joiner:        joiner,
			Loader:        esLoader,
			Store:         store,
			DefaultCursor: defaultCursor,
			PageSize:      cfg.PageSize,
			DBPolicy:      dbPolicy,
			HTTPPolicy:    httpPolicy,
			Logger:        log,
		},
		entity.Filmwork: {
			Class:         entity.Filmwork,
			Resolver:      enricher.NewFilmworkResolver(pool),
			Joiner:        joiner,
			Loader:        esLoader,
			Store:         store,
			DefaultCursor: defaultCursor,
			PageSize:      cfg.PageSize,
			DBPolicy:      dbPolicy,
			HTTPPolicy:    httpPolicy,
			Logger:        log,
		},
	}

	// # 7. Run each class's cycle in turn, sequentially (spec §5 — no
	// concurrent cycles share a relational connection or a watermark file).
	for _, class := range entity.All() {
		if err := runClassCycle(context.Background(), runners[class], newLockerForClass(class), class); err != nil {
			return err
		}
	}

	log.Info("filmsync_cycle_complete")
	return nil
}

// runClassCycle acquires class's process lock, runs its cycle, and releases
// the lock on every exit path (spec §9's single-instance-per-class
// invariant).
func runClassCycle(ctx context.Context, runner *pipeline.Runner, locker locking.Locker, class entity.Class) error {
	lockCtx, cancel := context.WithTimeout(ctx, constants.LockAcquireTimeout)
	defer cancel()

	if err := locker.Acquire(lockCtx); err != nil {
		return fmt.Errorf("acquire lock for %s: %w", class, err)
	}
	defer func() {
		if err := locker.Release(ctx); err != nil {
			slog.Error("release lock failed", slog.String("entity", class.String()), slog.Any("error", err))
		}
	}()

	return runner.Run(ctx)
}

// newLockerFactory sets up the configured lock backend once and returns a
// function that mints a per-entity-class [locking.Locker] over it, plus a
// cleanup func for any resources the backend itself opened.
func newLockerFactory(ctx context.Context, cfg *config.Config, log *slog.Logger) (func(entity.Class) locking.Locker, func(), error) {
	switch cfg.LockBackend {
	case "redis":
		client, err := locking.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		owner := fmt.Sprintf("%s:%d", hostname(), os.Getpid())
		factory := func(class entity.Class) locking.Locker {
			key := fmt.Sprintf("%s:%s", cfg.LockPath, class)
			return locking.NewRedisLocker(client, key, owner, log)
		}
		return factory, func() { _ = client.Close() }, nil
	default:
		factory := func(class entity.Class) locking.Locker {
			return locking.NewFileLocker(fmt.Sprintf("%s.%s", cfg.LockPath, class))
		}
		return factory, func() {}, nil
	}
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
