package entities

import "errors"

// ErrUserNotFound signals that an id or username resolved to no record.
// Read paths translate it to an empty result; mutation paths surface it
// as a client error.
var ErrUserNotFound = errors.New("user not found")

// DuplicateIdentifierError reports a uniqueness collision on registration,
// naming the offending field ("username" or "email").
type DuplicateIdentifierError struct {
	Field string
}

func (e *DuplicateIdentifierError) Error() string {
	return e.Field + " already exists"
}

// ValidationError reports input that violates the entity's field constraints.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
