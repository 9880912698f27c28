// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package locking enforces the single-instance-per-entity-class invariant
(spec §9): only one filmsync process may run a sync cycle for a given
entity class at a time, so a slow cycle never overlaps a cron-triggered
re-run and corrupts the watermark file.

Two backends share the [Locker] interface:

  - [FileLocker] takes an advisory flock(2) lease on a pidfile. It is the
    default: filmsync usually runs as a single process per host.
  - [RedisLocker] takes a lease key in Redis with a heartbeat-renewed TTL.
    It is opt-in (LOCK_BACKEND=redis) for deployments that schedule the
    same entity class across multiple hosts.
*/
package locking

import (
	"context"
	"errors"
)

// ErrAlreadyRunning is returned by Acquire when another process already
// holds the lock, mirroring the original pipeline's AlreadyRunningError.
var ErrAlreadyRunning = errors.New("sync cycle already running")

// Locker acquires and releases the process-wide sync lock for one entity
// class. Acquire must return an error immediately if the lock is already
// held rather than blocking indefinitely, since a cron-triggered overlap
// should fail fast and let the scheduler's next invocation retry.
type Locker interface {
	// Acquire takes the lock or returns an error describing why it could not.
	Acquire(ctx context.Context) error

	// Release gives up the lock. It is safe to call even if Acquire failed.
	Release(ctx context.Context) error
}
