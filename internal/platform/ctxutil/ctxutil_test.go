// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trandinhkhoi/filmsync/internal/platform/ctxutil"
)

/*
TestContext_CycleID verifies that cycle IDs can be injected and retrieved.
*/
func TestContext_CycleID(t *testing.T) {
	ctx := context.Background()
	cycleID := "genre-2026-07-31T00:00:00Z"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetCycleID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithCycleID(ctx, cycleID)
	assert.Equal(t, cycleID, ctxutil.GetCycleID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}
