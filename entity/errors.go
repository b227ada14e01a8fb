package entity

import "errors"

var (
	// ErrItemExists is returned when an added item's id is already taken.
	ErrItemExists = errors.New("item already exists")
	// ErrItemNotFound is returned when no item has the given id.
	ErrItemNotFound = errors.New("item not found")
	// ErrOrderInconsistent is the panic value of an ordered collection whose
	// order names an id it does not hold.
	ErrOrderInconsistent = errors.New("order is inconsistent with items")
)
