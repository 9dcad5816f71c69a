// Package apperr defines sentinel errors shared between the store layer
// and the HTTP handlers.
package apperr

import "errors"

var (
	// ErrNotFound covers both a missing document and a document owned by
	// someone else; callers must not distinguish the two for notes.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken signals a registration attempt with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already in use")
)
