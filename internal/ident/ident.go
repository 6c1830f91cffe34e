// Package ident converts between external string identifiers and the
// document store's native ObjectID.
package ident

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tinoosan/booksapi/internal/errs"
)

// ID is the native identifier shared by every storage backend.
type ID = primitive.ObjectID

// Nil is the zero identifier. A reference holding Nil is treated as absent.
var Nil ID

// New mints a fresh identifier.
func New() ID { return primitive.NewObjectID() }

// Decode parses the canonical 24 hex character form.
func Decode(s string) (ID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return Nil, fmt.Errorf("%w: %q", errs.ErrInvalidID, s)
	}
	return id, nil
}

// Encode renders id in its canonical string form.
func Encode(id ID) string { return id.Hex() }

// EncodeRef renders a reference field, mapping Nil to "".
func EncodeRef(id ID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

// MustDecode is Decode for literals in tests and seed data.
func MustDecode(s string) ID {
	id, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return id
}
