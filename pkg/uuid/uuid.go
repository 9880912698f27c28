// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid validates identifiers at the relational-store boundary.

filmsync never generates IDs — the content schema's primary keys are owned
by the upstream writer — so this package wraps [github.com/google/uuid] for
parsing and validation only, not generation.
*/
package uuid

import "github.com/google/uuid"

// Parse validates s as a UUID, returning its canonical form.
func Parse(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// MustParse validates s as a UUID or panics.
// Reserved for values already guaranteed well-formed by the database driver.
func MustParse(s string) string {
	id, err := Parse(s)
	if err != nil {
		panic("uuid: invalid UUID: " + err.Error())
	}
	return id
}
