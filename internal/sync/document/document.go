// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package document folds [fanout.Row]s into the search-index document shape
the Loader ships to Elasticsearch (spec §4.5).

It is grounded on the original pipeline's ESFilmwork/PersonData models and
update_esfilmwork_info/_handle_director/_handle_actor/_handle_writer
dispatch. Director cardinality follows the spec's explicit decision (§9
Q3): Director is a single, last-writer-wins string — the index schema some
deployments use models directors as a list, but this pipeline does not
paper over that mismatch by inventing a fabricated list here.
*/
package document

import (
	"github.com/trandinhkhoi/filmsync/internal/platform/constants"
	"github.com/trandinhkhoi/filmsync/internal/sync/fanout"
	"github.com/trandinhkhoi/filmsync/pkg/orderedset"
	"github.com/trandinhkhoi/filmsync/pkg/pointer"
)

// PersonRef is a cast/crew member as the index stores them, grounded on
// the original pipeline's PersonData.
type PersonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IndexDocument is one filmwork's search-index document.
type IndexDocument struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ImdbRating  float64     `json:"imdb_rating"`
	Genre       []string    `json:"genre"`
	Writers     []PersonRef `json:"writers"`
	Actors      []PersonRef `json:"actors"`
	// Director is last-writer-wins (spec §9 Q3): the most recently folded
	// row carrying a DIRECTOR role replaces any earlier value.
	Director     string   `json:"director"`
	ActorsNames  []string `json:"actors_names"`
	WritersNames []string `json:"writers_names"`
}

// DocumentID implements [esclient.Document].
func (d IndexDocument) DocumentID() string { return d.ID }

// builder accumulates one filmwork's rows before producing its final
// [IndexDocument]; the ordered-set fields guarantee invariant 3 (no
// duplicate genre/cast entries, first-seen order preserved) without the
// repeated row-by-row dedup logic the original's _update_unique_list did
// inline on plain lists.
type builder struct {
	id          string
	title       string
	description string
	imdbRating  float64
	director    string

	genre        *orderedset.Set[string]
	actorsSeen   map[PersonRef]struct{}
	actorOrder   []PersonRef
	writersSeen  map[PersonRef]struct{}
	writerOrder  []PersonRef
	actorsNames  *orderedset.Set[string]
	writersNames *orderedset.Set[string]
}

func newBuilder(row fanout.Row) *builder {
	return &builder{
		id:           row.FilmworkID,
		title:        row.Title,
		description:  row.Description,
		imdbRating:   pointer.Val(row.Rating),
		genre:        orderedset.New[string](),
		actorsSeen:   make(map[PersonRef]struct{}),
		writersSeen:  make(map[PersonRef]struct{}),
		actorsNames:  orderedset.New[string](),
		writersNames: orderedset.New[string](),
	}
}

// fold applies one more row for the same filmwork into the builder.
//
// Cast/crew rows are deduped on the full (id, name) structural value, not
// id alone (spec §4.5's dedup semantics): a fan-out join can surface the
// same person id under two different full_name values if the source data
// disagrees with itself, and the spec requires both variants kept rather
// than the second silently dropped.
func (b *builder) fold(row fanout.Row) {
	if row.Genre != nil {
		b.genre.Add(*row.Genre)
	}

	if row.Role == nil || row.PersonID == nil {
		return
	}

	ref := PersonRef{ID: *row.PersonID, Name: pointer.Val(row.FullName)}

	switch *row.Role {
	case constants.RoleDirector:
		b.director = ref.Name
	case constants.RoleActor:
		if _, exists := b.actorsSeen[ref]; exists {
			return
		}
		b.actorsSeen[ref] = struct{}{}
		b.actorOrder = append(b.actorOrder, ref)
		b.actorsNames.Add(ref.Name)
	case constants.RoleWriter:
		if _, exists := b.writersSeen[ref]; exists {
			return
		}
		b.writersSeen[ref] = struct{}{}
		b.writerOrder = append(b.writerOrder, ref)
		b.writersNames.Add(ref.Name)
	}
}

// build produces the final [IndexDocument] from the accumulated rows.
func (b *builder) build() IndexDocument {
	return IndexDocument{
		ID:           b.id,
		Title:        b.title,
		Description:  b.description,
		ImdbRating:   b.imdbRating,
		Genre:        b.genre.Values(),
		Writers:      b.writerOrder,
		Actors:       b.actorOrder,
		Director:     b.director,
		ActorsNames:  b.actorsNames.Values(),
		WritersNames: b.writersNames.Values(),
	}
}

// Fold reduces a batch of joined fanout rows — one filmwork's worth of rows
// interleaved for many filmworks — into one [IndexDocument] per filmwork,
// preserving first-seen row order within each filmwork (spec §4.5).
func Fold(rows []fanout.Row) []IndexDocument {
	order := make([]string, 0)
	builders := make(map[string]*builder)

	for _, row := range rows {
		b, ok := builders[row.FilmworkID]
		if !ok {
			b = newBuilder(row)
			builders[row.FilmworkID] = b
			order = append(order, row.FilmworkID)
		}
		b.fold(row)
	}

	docs := make([]IndexDocument, 0, len(order))
	for _, id := range order {
		docs = append(docs, builders[id].build())
	}

	return docs
}
