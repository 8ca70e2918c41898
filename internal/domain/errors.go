package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated indicates no session credential is present; raised
	// locally before any network call is attempted.
	ErrUnauthenticated = errors.New("unauthenticated")
)
