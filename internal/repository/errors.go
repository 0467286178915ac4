package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert trips a unique
	// constraint. For the relation tables this is the authoritative
	// signal under concurrent writers.
	ErrDuplicate = errors.New("record already exists")
)
