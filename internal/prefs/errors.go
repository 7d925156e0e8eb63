package prefs

import "errors"

var (
	// ErrInvalid is returned for empty home directories or application fields.
	ErrInvalid = errors.New("invalid preference value")
	// ErrClosed is returned by mutations after Close; memory is still updated.
	ErrClosed = errors.New("preferences store closed")
)
