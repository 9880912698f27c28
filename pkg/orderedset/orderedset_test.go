// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package orderedset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trandinhkhoi/filmsync/pkg/orderedset"
)

/*
TestSet_AddDeduplicatesPreservingOrder verifies repeated adds collapse to a
single entry while first-seen order is kept.
*/
func TestSet_AddDeduplicatesPreservingOrder(t *testing.T) {
	s := orderedset.New[string]()

	s.Add("action")
	s.Add("drama")
	s.Add("action")
	s.Add("comedy")

	assert.Equal(t, []string{"action", "drama", "comedy"}, s.Values())
	assert.Equal(t, 3, s.Len())
}

/*
TestSet_Empty verifies a fresh set reports zero length and a nil values slice.
*/
func TestSet_Empty(t *testing.T) {
	s := orderedset.New[int]()

	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Values())
}
