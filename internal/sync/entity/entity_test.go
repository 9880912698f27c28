// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trandinhkhoi/filmsync/internal/platform/constants"
	"github.com/trandinhkhoi/filmsync/internal/sync/entity"
)

/*
TestClass_StreamKey verifies each class maps to its own watermark stream.
*/
func TestClass_StreamKey(t *testing.T) {
	assert.Equal(t, constants.StreamGenre, entity.Genre.StreamKey())
	assert.Equal(t, constants.StreamPerson, entity.Person.StreamKey())
	assert.Equal(t, constants.StreamFilmwork, entity.Filmwork.StreamKey())
}

/*
TestAll_Order verifies the fixed cycle order: genre, person, filmwork.
*/
func TestAll_Order(t *testing.T) {
	assert.Equal(t, []entity.Class{entity.Genre, entity.Person, entity.Filmwork}, entity.All())
}
