package services

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("Please log in to continue.")
	ErrInvalidCredentials = errors.New("Invalid email or password")

	ErrSelfDemotion = &StatusError{Kind: ErrForbidden, Message: "You cannot modify your own admin status."}
)

// StatusError carries a user-facing message while matching one of the
// sentinel kinds above through errors.Is.
type StatusError struct {
	Kind    error
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func notFound(message string) error {
	return &StatusError{Kind: ErrNotFound, Message: message}
}

func forbidden(message string) error {
	return &StatusError{Kind: ErrForbidden, Message: message}
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
