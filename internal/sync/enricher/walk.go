// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enricher

import (
	"context"

	"github.com/trandinhkhoi/filmsync/internal/sync/watermark"
)

// Walk drives r page by page over the filmwork watermark, resolving
// changedIDs (nil for the filmwork self-walk) down to affected filmwork
// ids.
//
// Only the filmwork self-walk (changedIDs == nil) is allowed to advance and
// persist the filmwork watermark. Per spec §4.3, a genre/person-triggered
// page is filtered to the filmworks linked to that changed genre/person —
// a strict subset of everything modified in the window — so the shared
// filmwork_updated_at cursor is read here but never written: advancing it
// past filmworks this page didn't cover would make the next self-walk skip
// them forever, since modified > watermark would no longer hold.
func Walk(
	ctx context.Context,
	r Resolver,
	store watermark.Store,
	filmworkStreamKey string,
	defaultCursor watermark.Cursor,
	changedIDs []string,
	pageSize int,
	onPage func(ctx context.Context, filmworkIDs []string) error,
) error {
	isSelfWalk := changedIDs == nil

	cursor, err := store.Get(filmworkStreamKey, defaultCursor)
	if err != nil {
		return err
	}

	for {
		page, err := r.FetchFilmworkIDs(ctx, changedIDs, cursor, pageSize)
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

		if isSelfWalk {
			if err := store.Set(filmworkStreamKey, cursor); err != nil {
				return err
			}
		}
	}
}
