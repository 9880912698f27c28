// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package loader is the fifth and final pipeline stage (spec §4.6): it ships
a page of documents to the search index via [esclient.Client.Bulk] and logs
any per-document failures without aborting the cycle.

Grounded on the original pipeline's upload_data/load_to_es: walk the bulk
response's items array and log (not raise) any index-level error. Per spec
§7.2, a per-item failure (the [apperr.KindDataItem] case) is logged but
never turned into an error and never aborts the cycle.
*/
package loader

import (
	"context"
	"log/slog"

	"github.com/trandinhkhoi/filmsync/internal/platform/esclient"
	"github.com/trandinhkhoi/filmsync/internal/sync/document"
	"github.com/trandinhkhoi/filmsync/pkg/slice"
)

// Bulker ships a batch of documents to the search index.
type Bulker interface {
	Bulk(ctx context.Context, docs []esclient.Document) (*esclient.BulkResult, error)
}

// Loader wraps a [Bulker] with per-item failure logging.
type Loader struct {
	bulker Bulker
	logger *slog.Logger
}

// New returns a Loader shipping documents through bulker.
func New(bulker Bulker, logger *slog.Logger) *Loader {
	return &Loader{bulker: bulker, logger: logger}
}

// Load ships docs and logs any per-document index failures. A transport or
// connection failure is returned as-is (already classified transient by
// [esclient.Client.Bulk]) for the caller's retry envelope to handle; a
// per-item failure never surfaces as an error here.
func (l *Loader) Load(ctx context.Context, docs []document.IndexDocument) error {
	if len(docs) == 0 {
		return nil
	}

	payload := slice.Map(docs, func(d document.IndexDocument) esclient.Document { return d })

	result, err := l.bulker.Bulk(ctx, payload)
	if err != nil {
		return err
	}

	for _, itemErr := range result.Errors {
		l.logger.Error("document index failed",
			slog.String("document_id", itemErr.DocumentID),
			slog.String("detail", itemErr.Detail),
		)
	}

	return nil
}
