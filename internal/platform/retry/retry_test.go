// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trandinhkhoi/filmsync/internal/platform/apperr"
	"github.com/trandinhkhoi/filmsync/internal/platform/retry"
)

/*
TestDo_RetriesTransientUntilSuccess verifies that a transient error is
retried and that Do returns nil once the operation eventually succeeds.
*/
func TestDo_RetriesTransientUntilSuccess(t *testing.T) {
	policy := retry.DBPolicy(5, 10*time.Second)

	calls := 0
	err := retry.Do(context.Background(), policy, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return apperr.Transient("flaky query", errors.New("connection reset"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

/*
TestDo_StopsOnLogicError verifies a non-transient error aborts after the
first attempt instead of being retried.
*/
func TestDo_StopsOnLogicError(t *testing.T) {
	policy := retry.DBPolicy(5, time.Second)

	calls := 0
	err := retry.Do(context.Background(), policy, func(ctx context.Context) error {
		calls++
		return apperr.Logic("bad row shape", errors.New("missing id"))
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, apperr.IsLogic(err))
}

/*
TestDo_StopsAfterMaxTries verifies the attempt cap is enforced even when
every failure is transient.
*/
func TestDo_StopsAfterMaxTries(t *testing.T) {
	policy := retry.DBPolicy(3, 10*time.Second)

	calls := 0
	err := retry.Do(context.Background(), policy, func(ctx context.Context) error {
		calls++
		return apperr.Transient("always fails", errors.New("timeout"))
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, apperr.IsTransient(err))
}
