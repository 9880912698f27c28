// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package enricher implements the second pipeline stage (spec §4.3):
resolving a batch of changed genre/person ids (or, for the filmwork class,
nothing) down to the filmwork ids that need re-indexing as a result.

It is grounded on the original pipeline's ETLOnGenreChanged.enricher/
ETLOnPersonChanged.enricher (a left join against the relevant m2m table,
filtered to the changed ids, walked by filmwork watermark) and
ETLOnFilmworkChanged.enricher (no m2m join at all — the filmwork class
walks content.filmwork directly and is responsible for advancing and
persisting the filmwork watermark itself, per spec §9 Q2's adopted
composition).
*/
package enricher

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trandinhkhoi/filmsync/internal/platform/database/schema"
	"github.com/trandinhkhoi/filmsync/internal/platform/dberr"
	"github.com/trandinhkhoi/filmsync/internal/sync/producer"
	"github.com/trandinhkhoi/filmsync/internal/sync/watermark"
)

// Resolver returns the next page of filmwork ids affected by changedIDs,
// strictly after cursor. changedIDs is empty for the filmwork class's
// self-walk, where every changed filmwork is itself the affected filmwork.
type Resolver interface {
	FetchFilmworkIDs(ctx context.Context, changedIDs []string, cursor watermark.Cursor, limit int) ([]producer.IDRow, error)
}

// PostgresResolver walks content.filmwork, optionally joined against one
// m2m table and filtered to a set of changed ids.
type PostgresResolver struct {
	db          *pgxpool.Pool
	m2mTable    string // "" for the filmwork self-walk
	m2mIDColumn string
}

// NewGenreResolver returns a [Resolver] that walks filmworks affected by a
// changed genre via content.filmworks_genres.
func NewGenreResolver(db *pgxpool.Pool) *PostgresResolver {
	return &PostgresResolver{db: db, m2mTable: schema.FilmworksGenres.Table, m2mIDColumn: schema.FilmworksGenres.GenreID}
}

// NewPersonResolver returns a [Resolver] that walks filmworks affected by a
// changed person via content.filmworks_persons.
func NewPersonResolver(db *pgxpool.Pool) *PostgresResolver {
	return &PostgresResolver{db: db, m2mTable: schema.FilmworksPersons.Table, m2mIDColumn: schema.FilmworksPersons.PersonID}
}

// NewFilmworkResolver returns a [Resolver] for the filmwork class's
// self-walk: every changed filmwork resolves to itself, no m2m join.
func NewFilmworkResolver(db *pgxpool.Pool) *PostgresResolver {
	return &PostgresResolver{db: db}
}

// FetchFilmworkIDs implements [Resolver].
func (r *PostgresResolver) FetchFilmworkIDs(ctx context.Context, changedIDs []string, cursor watermark.Cursor, limit int) ([]producer.IDRow, error) {
	if r.m2mTable == "" {
		return r.fetchSelfWalk(ctx, cursor, limit)
	}
	return r.fetchViaM2M(ctx, changedIDs, cursor, limit)
}

func (r *PostgresResolver) fetchSelfWalk(ctx context.Context, cursor watermark.Cursor, limit int) ([]producer.IDRow, error) {
	query := fmt.Sprintf(`
		SELECT fw.%s, fw.%s
		FROM %s fw
		WHERE (fw.%s, fw.%s) > ($1, $2)
		ORDER BY fw.%s ASC, fw.%s ASC
		LIMIT $3
	`,
		schema.Filmwork.ID, schema.Filmwork.Modified,
		schema.Filmwork.Table,
		schema.Filmwork.Modified, schema.Filmwork.ID,
		schema.Filmwork.Modified, schema.Filmwork.ID,
	)

	return r.query(ctx, query, cursor.Modified, cursor.ID, limit)
}

func (r *PostgresResolver) fetchViaM2M(ctx context.Context, changedIDs []string, cursor watermark.Cursor, limit int) ([]producer.IDRow, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT fw.%s, fw.%s
		FROM %s fw
		JOIN %s mtm ON mtm.%s = fw.%s
		WHERE (fw.%s, fw.%s) > ($1, $2) AND mtm.%s = ANY($3)
		ORDER BY fw.%s ASC, fw.%s ASC
		LIMIT $4
	`,
		schema.Filmwork.ID, schema.Filmwork.Modified,
		schema.Filmwork.Table,
		r.m2mTable, schema.FilmworksGenres.FilmworkID, schema.Filmwork.ID,
		schema.Filmwork.Modified, schema.Filmwork.ID, r.m2mIDColumn,
		schema.Filmwork.Modified, schema.Filmwork.ID,
	)

	return r.query(ctx, query, cursor.Modified, cursor.ID, changedIDs, limit)
}

func (r *PostgresResolver) query(ctx context.Context, query string, args ...any) ([]producer.IDRow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "enricher_fetch_filmwork_ids")
	}
	defer rows.Close()

	var page []producer.IDRow
	for rows.Next() {
		var row producer.IDRow
		if err := rows.Scan(&row.ID, &row.Modified); err != nil {
			return nil, dberr.Wrap(err, "enricher_scan_row")
		}
		page = append(page, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "enricher_rows_iteration")
	}

	return page, nil
}
