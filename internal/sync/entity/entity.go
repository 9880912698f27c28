// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entity defines the three entity classes the sync pipeline cycles
over (spec §3), grounded on the original pipeline's EntryName enum.

Each class owns its own watermark stream and its own pidfile/lock key;
genre and person also own a Producer query, while filmwork has none and
walks content.filmwork through the Enricher directly. All three classes
converge on the same Enricher/Merger/Transformer/Loader chain once resolved
down to filmwork ids.
*/
package entity

import "github.com/trandinhkhoi/filmsync/internal/platform/constants"

// Class identifies which relational table a sync cycle starts from.
type Class string

const (
	Genre    Class = "genre"
	Person   Class = "person"
	Filmwork Class = "filmwork"
)

// All lists every entity class in the fixed cycle order a full sync run
// walks them: genre and person first (cheap, low cardinality), filmwork
// last (the self-referential catch-all walk).
func All() []Class {
	return []Class{Genre, Person, Filmwork}
}

// StreamKey returns the watermark stream name for c.
func (c Class) StreamKey() string {
	switch c {
	case Genre:
		return constants.StreamGenre
	case Person:
		return constants.StreamPerson
	case Filmwork:
		return constants.StreamFilmwork
	default:
		panic("entity: unknown class " + string(c))
	}
}

// String implements fmt.Stringer.
func (c Class) String() string {
	return string(c)
}
