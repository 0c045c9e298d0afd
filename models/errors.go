package models

import (
	"errors"
	"fmt"
)

// Tagged errors returned by the data-access layer. Every operation either
// succeeds or returns one of these; raw store faults never reach callers.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrIntegrity    = errors.New("integrity violation")

	ErrSelfFollow       = fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = fmt.Errorf("%w: not following this user", ErrNotFound)
	ErrAlreadyLiked     = errors.New("message already liked")
)

// DuplicateError reports a uniqueness conflict on a single column so the
// caller can show a field-specific message.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return e.Field + " already taken"
}
