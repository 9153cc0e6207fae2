package repository

import "errors"

// Common repository errors. Services translate these into domain errors;
// raw driver errors never cross the repository boundary.
var (
	// ErrNotFound is returned when a row does not exist or is owned by
	// someone else. The two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when the users email uniqueness
	// constraint rejects an insert.
	ErrDuplicateEmail = errors.New("email already registered")
)
