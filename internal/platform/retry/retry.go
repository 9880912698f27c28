// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package retry provides the exponential-backoff envelope shared by every
stage that talks to an external system (spec §7.1).

A [Policy] wraps [github.com/cenkalti/backoff/v4] with a per-call try cap and
a total time budget. Do runs an operation under the policy and distinguishes
retryable failures from fatal ones via [apperr.IsTransient]: only a
[*apperr.AppError] of [apperr.KindTransient] is retried, everything else is
wrapped in [backoff.Permanent] and returned on the first attempt.
*/
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/trandinhkhoi/filmsync/internal/platform/apperr"
)

// Policy bounds how many attempts an operation gets and for how long.
type Policy struct {
	MaxTries int
	MaxTime  time.Duration
}

// DBPolicy returns the retry policy used around Producer/Enricher/Merger
// page queries.
func DBPolicy(maxTries int, maxTime time.Duration) Policy {
	return Policy{MaxTries: maxTries, MaxTime: maxTime}
}

// HTTPPolicy returns the retry policy used around the search-index bulk
// upload. It normally carries a longer time budget than [DBPolicy] since a
// search-index outage is expected to be longer-lived than a DB hiccup.
func HTTPPolicy(maxTries int, maxTime time.Duration) Policy {
	return Policy{MaxTries: maxTries, MaxTime: maxTime}
}

// Do runs op under p, retrying only errors classified [apperr.KindTransient].
//
// It returns the last error seen once the try cap or the time budget is
// exhausted, or immediately on a non-transient error.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	backoffCtx := backoff.WithContext(newExpoBackOff(p), ctx)

	attempt := 0
	wrapped := func() error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !apperr.IsTransient(err) {
			return backoff.Permanent(err)
		}
		if attempt >= p.MaxTries {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(wrapped, backoffCtx)
}

// newExpoBackOff builds the underlying exponential-backoff-with-jitter clock
// for a [Policy]'s time budget. Attempt counting is enforced separately in
// Do since [backoff.ExponentialBackOff] only bounds elapsed time.
func newExpoBackOff(p Policy) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = p.MaxTime
	return eb
}
