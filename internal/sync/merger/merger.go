// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package merger implements the third pipeline stage (spec §4.4): one joined
query per batch of filmwork ids, fanning each filmwork out across its
person-roles and genres so the Transformer can fold the fan-out back down
into a single document per filmwork.

Grounded on the original pipeline's merger coroutine (postgres_to_es/src/
etl.py), including its five-way left join shape (filmwork ×
filmworks_persons × person × filmworks_genres × genre).
*/
package merger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trandinhkhoi/filmsync/internal/platform/apperr"
	"github.com/trandinhkhoi/filmsync/internal/platform/database/schema"
	"github.com/trandinhkhoi/filmsync/internal/platform/dberr"
	"github.com/trandinhkhoi/filmsync/internal/sync/fanout"
)

// Joiner fetches the fan-out rows for a batch of filmwork ids.
type Joiner interface {
	FetchRows(ctx context.Context, filmworkIDs []string) ([]fanout.Row, error)
}

// PostgresJoiner is the default [Joiner], backed by the five-way left join.
type PostgresJoiner struct {
	db *pgxpool.Pool
}

// New returns a [Joiner] over db.
func New(db *pgxpool.Pool) *PostgresJoiner {
	return &PostgresJoiner{db: db}
}

// FetchRows implements [Joiner].
func (j *PostgresJoiner) FetchRows(ctx context.Context, filmworkIDs []string) ([]fanout.Row, error) {
	query := fmt.Sprintf(`
		SELECT
			fw.%s, fw.%s, fw.%s, fw.%s, fw.%s, fw.%s, fw.%s,
			fwp.%s, p.%s, p.%s,
			g.%s
		FROM %s fw
		LEFT JOIN %s fwp ON fwp.%s = fw.%s
		LEFT JOIN %s p ON p.%s = fwp.%s
		LEFT JOIN %s fwg ON fwg.%s = fw.%s
		LEFT JOIN %s g ON g.%s = fwg.%s
		WHERE fw.%s = ANY($1)
	`,
		schema.Filmwork.ID, schema.Filmwork.Title, schema.Filmwork.Description, schema.Filmwork.Rating,
		schema.Filmwork.Type, schema.Filmwork.CreatedAt, schema.Filmwork.Modified,
		schema.FilmworksPersons.Role, schema.Person.ID, schema.Person.FullName,
		schema.Genre.Name,
		schema.Filmwork.Table,
		schema.FilmworksPersons.Table, schema.FilmworksPersons.FilmworkID, schema.Filmwork.ID,
		schema.Person.Table, schema.Person.ID, schema.FilmworksPersons.PersonID,
		schema.FilmworksGenres.Table, schema.FilmworksGenres.FilmworkID, schema.Filmwork.ID,
		schema.Genre.Table, schema.Genre.ID, schema.FilmworksGenres.GenreID,
		schema.Filmwork.ID,
	)

	rows, err := j.db.Query(ctx, query, filmworkIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "merger_fetch_rows")
	}
	defer rows.Close()

	var result []fanout.Row
	for rows.Next() {
		var (
			id, title, description, kind string
			rating                       *float64
			created, modified            time.Time
			role, personID, fullName     *string
			genre                        *string
		)
		if err := rows.Scan(&id, &title, &description, &rating, &kind, &created, &modified,
			&role, &personID, &fullName, &genre); err != nil {
			return nil, dberr.Wrap(err, "merger_scan_row")
		}

		row, err := fanout.NewRow(id, title, description, rating, kind, created, modified, role, personID, fullName, genre)
		if err != nil {
			return nil, apperr.Logic("merger: malformed fan-out row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "merger_rows_iteration")
	}

	return result, nil
}
