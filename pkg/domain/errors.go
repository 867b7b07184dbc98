package domain

import (
	"errors"
	"fmt"
)

// Failure categories. Every error returned by the services matches exactly one
// of them under errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

// Conflict refinements.
var (
	ErrDuplicateID       = fmt.Errorf("%w: id already exists", ErrConflict)
	ErrNoRoomsAvailable  = fmt.Errorf("%w: no rooms available", ErrConflict)
	ErrAllRoomsAvailable = fmt.Errorf("%w: all rooms are already available", ErrConflict)
)

// Error describes a failed operation on a single entity.
type Error struct {
	Entity EntityType
	ID     string
	Err    error
	Detail string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %q: %v", e.Entity, e.ID, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds the error reported when id is absent from its collection.
func NotFound(entity EntityType, id string) *Error {
	return &Error{Entity: entity, ID: id, Err: ErrNotFound}
}

// Invalid builds a validation error with a human readable detail.
func Invalid(entity EntityType, id, detail string) *Error {
	return &Error{Entity: entity, ID: id, Err: ErrValidation, Detail: detail}
}

// Conflict builds a conflict error from one of the conflict refinements.
func Conflict(entity EntityType, id string, reason error) *Error {
	return &Error{Entity: entity, ID: id, Err: reason}
}

// Storage wraps a backend failure.
func Storage(entity EntityType, id string, cause error) *Error {
	return &Error{Entity: entity, ID: id, Err: fmt.Errorf("%w: %w", ErrStorage, cause)}
}
