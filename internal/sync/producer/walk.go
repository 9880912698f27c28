// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package producer

import (
	"context"

	"github.com/trandinhkhoi/filmsync/internal/sync/watermark"
)

// Walk drives f page by page starting at the stream's persisted cursor
// (or defaultCursor if never advanced), invoking onPage with each page's
// ids. The watermark is advanced and persisted only after onPage returns
// successfully, per spec §7's "advance only after a batch has been
// durably handed downstream" ordering.
//
// Walk stops when a page comes back empty, mirroring the original
// pipeline's "if not modified_data_ids: break" loop exit.
func Walk(
	ctx context.Context,
	f Fetcher,
	store watermark.Store,
	streamKey string,
	defaultCursor watermark.Cursor,
	pageSize int,
	onPage func(ctx context.Context, ids []string) error,
) error {
	cursor, err := store.Get(streamKey, defaultCursor)
	if err != nil {
		return err
	}

	for {
		page, err := f.FetchPage(ctx, cursor, pageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}

		ids := make([]string, len(page))
		for i, row := range page {
			ids[i] = row.ID
		}

		if err := onPage(ctx, ids); err != nil {
			return err
		}

		last := page[len(page)-1]
		cursor = watermark.Cursor{Modified: last.Modified, ID: last.ID}
		if err := store.Set(streamKey, cursor); err != nil {
			return err
		}
	}
}
