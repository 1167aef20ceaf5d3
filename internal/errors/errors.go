// Package errors holds the sentinel errors shared by the drink and auth layers.
// Use cases wrap them with context and the HTTP layer maps them to status codes.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrBadRequest marks a body that could not be decoded.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound marks a missing drink or an unknown route.
	ErrNotFound = errors.New("not found")

	// ErrMethodNotAllowed marks a known route called with the wrong verb.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrInvalidInput marks a decoded body that fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnprocessable marks a write the store refused, such as a duplicate title.
	ErrUnprocessable = errors.New("unprocessable")

	// ErrUnauthorized marks a missing, malformed or unverifiable bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks a valid token that lacks the route's permission.
	ErrForbidden = errors.New("forbidden")

	// ErrTooManyRequests marks a caller over its rate limit.
	ErrTooManyRequests = errors.New("too many requests")
)

// Wrap prefixes err with message, keeping it reachable through Is and As.
// A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
