package guestbook

import "errors"

var (
	// lookup errors
	ErrNotFound = errors.New("entry not found")

	// validation errors
	ErrInvalidEntry = errors.New("entry is invalid")
	ErrMissingID    = errors.New("entry id is required")
	ErrInvalidID    = errors.New("entry id must be a number")

	// store errors
	ErrStoreUnavailable = errors.New("record store unavailable")

	// others
	ErrInternal = errors.New("internal server error")
)
