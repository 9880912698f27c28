// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and the
// pipeline's [apperr.Kind] classification.
package dberr

import (
	"context"
	"errors"

	"github.com/trandinhkhoi/filmsync/internal/platform/apperr"
)

// Wrap inspects a database error raised by a Producer/Enricher/Merger query
// and classifies it per spec §7.1: connection failures and query errors are
// transient and safe to retry under backoff.
//
// A canceled or deadline-exceeded context is returned unwrapped so callers
// can distinguish an orderly shutdown from an external failure.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return apperr.Transient("db: "+action, err)
}
