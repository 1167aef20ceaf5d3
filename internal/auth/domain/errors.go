package domain

import (
	"fmt"
	"net/http"
)

// Machine-readable AuthError codes.
const (
	CodeAuthorizationHeaderMissing = "authorization_header_missing"
	CodeInvalidHeader              = "invalid_header"
	CodeInvalidToken               = "invalid_token"
	CodeTokenExpired               = "token_expired"
	CodeInvalidClaims              = "invalid_claims"
	CodeUnauthorized               = "unauthorized"
)

// AuthError is a credential or permission failure. It carries the HTTP status that
// must be returned to the client together with a code and a human description.
type AuthError struct {
	StatusCode  int
	Code        string
	Description string
	Err         error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Unwrap returns the underlying cause, if any.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates an AuthError without an underlying cause.
func NewAuthError(statusCode int, code, description string) *AuthError {
	return &AuthError{StatusCode: statusCode, Code: code, Description: description}
}

// Header and token errors returned by the token verifier.
var (
	ErrAuthorizationHeaderMissing = NewAuthError(
		http.StatusUnauthorized,
		CodeAuthorizationHeaderMissing,
		"Authorization header is expected.",
	)
	ErrAuthorizationSchemeInvalid = NewAuthError(
		http.StatusUnauthorized,
		CodeInvalidHeader,
		`Authorization header must start with "Bearer".`,
	)
	ErrAuthorizationTokenMissing = NewAuthError(
		http.StatusBadRequest,
		CodeInvalidHeader,
		"Authorization header must be bearer token.",
	)
	ErrAuthorizationHeaderMalformed = NewAuthError(
		http.StatusBadRequest,
		CodeInvalidHeader,
		"Authorization header must be a single bearer token.",
	)
	ErrTokenMalformed = NewAuthError(
		http.StatusBadRequest,
		CodeInvalidHeader,
		"Unable to parse authentication token.",
	)
	ErrTokenKeyIDMissing = NewAuthError(
		http.StatusUnauthorized,
		CodeInvalidHeader,
		"Authorization malformed.",
	)
	ErrSigningKeyNotFound = NewAuthError(
		http.StatusBadRequest,
		CodeInvalidHeader,
		"Unable to find the appropriate key.",
	)
	ErrTokenExpired = NewAuthError(
		http.StatusUnauthorized,
		CodeTokenExpired,
		"Token expired.",
	)
	ErrTokenClaimsInvalid = NewAuthError(
		http.StatusUnauthorized,
		CodeInvalidClaims,
		"Incorrect claims. Please, check the audience and issuer.",
	)
	ErrTokenInvalid = NewAuthError(
		http.StatusUnauthorized,
		CodeInvalidToken,
		"Unable to verify authentication token.",
	)
)

// Permission errors returned by Claims.RequirePermission.
var (
	ErrPermissionsClaimMissing = NewAuthError(
		http.StatusBadRequest,
		CodeInvalidClaims,
		"Permissions not included in JWT.",
	)
	ErrPermissionNotFound = NewAuthError(
		http.StatusForbidden,
		CodeUnauthorized,
		"Permission not found.",
	)
)

// WithCause returns a copy of e carrying err as its underlying cause.
func (e *AuthError) WithCause(err error) *AuthError {
	clone := *e
	clone.Err = err
	return &clone
}

// Is matches AuthErrors by status and code so that copies made with WithCause
// still compare equal to their template.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code && e.Description == t.Description
}
