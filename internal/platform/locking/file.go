// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locking

import (
	"context"
	"fmt"

	"github.com/gofrs/flock"
)

// FileLocker is the default [Locker] backend: an advisory flock(2) lease on
// a pidfile, one per entity class, grounded on the original pipeline's
// PIDFile context manager (which rejected startup outright if another
// process already held the same pidfile).
type FileLocker struct {
	path string
	lock *flock.Flock
}

// NewFileLocker returns a locker that leases path.
func NewFileLocker(path string) *FileLocker {
	return &FileLocker{path: path, lock: flock.New(path)}
}

// Acquire takes a non-blocking exclusive lock on the pidfile. It fails fast
// rather than waiting, matching the original pipeline's fail-fast pidfile
// check: an overlapping cron invocation should back off, not queue.
func (l *FileLocker) Acquire(ctx context.Context) error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("locking: file lock %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("locking: %s: %w", l.path, ErrAlreadyRunning)
	}
	return nil
}

// Release drops the lock. The pidfile itself is left on disk.
func (l *FileLocker) Release(ctx context.Context) error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("locking: file unlock %s: %w", l.path, err)
	}
	return nil
}
