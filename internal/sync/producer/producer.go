// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package producer implements the head of the sync pipeline (spec §4.2): a
keyset page-by-page scan of a single source table (genre or person),
yielding the ids that changed since the stream's watermark.

It is grounded on the original pipeline's extract_genres/producer methods
(postgres_to_es_refactored/etls/genre_etl.py, postgres_to_es/src/etl.py),
generalized from the original's BETWEEN-windowed scan to the (modified, id)
keyset walk adopted for spec §9 Q1.
*/
package producer

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trandinhkhoi/filmsync/internal/platform/database/schema"
	"github.com/trandinhkhoi/filmsync/internal/platform/dberr"
	"github.com/trandinhkhoi/filmsync/internal/sync/watermark"
)

// IDRow is a single id/modified-timestamp pair — a row narrow enough to
// only carry what the keyset walk needs to advance its cursor.
type IDRow struct {
	ID       string
	Modified time.Time
}

// Fetcher returns the next page of changed ids strictly after cursor.
type Fetcher interface {
	FetchPage(ctx context.Context, cursor watermark.Cursor, limit int) ([]IDRow, error)
}

// tableRef names the three columns a keyset page query needs out of any
// content table.
type tableRef struct {
	Table    string
	ID       string
	Modified string
}

// PostgresFetcher scans a single content table ordered by (modified, id).
type PostgresFetcher struct {
	db    *pgxpool.Pool
	table tableRef
}

// NewGenreFetcher returns a [Fetcher] over content.genre.
func NewGenreFetcher(db *pgxpool.Pool) *PostgresFetcher {
	return &PostgresFetcher{db: db, table: tableRef{
		Table: schema.Genre.Table, ID: schema.Genre.ID, Modified: schema.Genre.Modified,
	}}
}

// NewPersonFetcher returns a [Fetcher] over content.person.
func NewPersonFetcher(db *pgxpool.Pool) *PostgresFetcher {
	return &PostgresFetcher{db: db, table: tableRef{
		Table: schema.Person.Table, ID: schema.Person.ID, Modified: schema.Person.Modified,
	}}
}

// FetchPage returns up to limit rows strictly after cursor, ordered by
// (modified, id) ascending — the keyset tiebreaker adopted for spec §9 Q1.
func (f *PostgresFetcher) FetchPage(ctx context.Context, cursor watermark.Cursor, limit int) ([]IDRow, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE (%s, %s) > ($1, $2)
		ORDER BY %s ASC, %s ASC
		LIMIT $3
	`,
		f.table.ID, f.table.Modified,
		f.table.Table,
		f.table.Modified, f.table.ID,
		f.table.Modified, f.table.ID,
	)

	rows, err := f.db.Query(ctx, query, cursor.Modified, cursor.ID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "producer_fetch_page")
	}
	defer rows.Close()

	var page []IDRow
	for rows.Next() {
		var row IDRow
		if err := rows.Scan(&row.ID, &row.Modified); err != nil {
			return nil, dberr.Wrap(err, "producer_scan_row")
		}
		page = append(page, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "producer_rows_iteration")
	}

	return page, nil
}
