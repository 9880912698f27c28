// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package transformer is the fourth pipeline stage (spec §4.5): it takes the
Merger's fan-out rows for one page and folds them into the per-filmwork
documents the Loader ships.

The fold logic itself lives in [document.Fold]; this package exists as its
own named pipeline stage — mirroring the original pipeline's @coroutine
transformer step — so [pipeline.Runner] composes Producer → Enricher →
Merger → Transformer → Loader as five symmetrical stages rather than
skipping straight from Merger to Loader.
*/
package transformer

import (
	"github.com/trandinhkhoi/filmsync/internal/sync/document"
	"github.com/trandinhkhoi/filmsync/internal/sync/fanout"
)

// Transform folds a page's fan-out rows into search-index documents.
func Transform(rows []fanout.Row) []document.IndexDocument {
	return document.Fold(rows)
}
