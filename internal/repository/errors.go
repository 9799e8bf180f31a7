package repository

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned on unique-constraint violations. It is the
	// authoritative backstop for duplicate signups and duplicate reviews
	// under concurrent writes.
	ErrConflict = errors.New("record already exists")
)
