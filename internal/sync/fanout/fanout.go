// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fanout defines the row shape the Merger's single joined query
(spec §4.4) returns: one row per (filmwork, person-role, genre) combination,
left-joined so a filmwork with no genre or no cast still surfaces once with
nulls.

It is grounded on the original pipeline's FilmworkRow dataclass
(models.py), generalized from pydantic field validation to an explicit Go
constructor that validates the id columns at the boundary (design note 9).
*/
package fanout

import (
	"fmt"
	"time"

	"github.com/trandinhkhoi/filmsync/pkg/uuid"
)

// Row is one joined row of content.filmwork × filmworks_persons ×
// content.person × filmworks_genres × content.genre.
//
// PersonID, Role, FullName and Genre are nil when the corresponding join
// found no match for this filmwork — a filmwork with genres but no cast
// yields one row per genre, each with nil person fields, and vice versa.
type Row struct {
	FilmworkID  string
	Title       string
	Description string
	Rating      *float64
	Type        string
	Created     time.Time
	Modified    time.Time

	Role     *string
	PersonID *string
	FullName *string

	Genre *string
}

// NewRow validates the id columns and returns a [Row].
func NewRow(
	filmworkID string,
	title, description string,
	rating *float64,
	kind string,
	created, modified time.Time,
	role, personID, fullName *string,
	genre *string,
) (Row, error) {
	fwID, err := uuid.Parse(filmworkID)
	if err != nil {
		return Row{}, fmt.Errorf("fanout: invalid filmwork id %q: %w", filmworkID, err)
	}

	var validPersonID *string
	if personID != nil {
		parsed, err := uuid.Parse(*personID)
		if err != nil {
			return Row{}, fmt.Errorf("fanout: invalid person id %q: %w", *personID, err)
		}
		validPersonID = &parsed
	}

	return Row{
		FilmworkID:  fwID,
		Title:       title,
		Description: description,
		Rating:      rating,
		Type:        kind,
		Created:     created,
		Modified:    modified,
		Role:        role,
		PersonID:    validPersonID,
		FullName:    fullName,
		Genre:       genre,
	}, nil
}
