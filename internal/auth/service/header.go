package service

import (
	"strings"

	authDomain "github.com/allisson/coffeeshop/internal/auth/domain"
)

// ParseAuthorizationHeader extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func ParseAuthorizationHeader(header string) (string, error) {
	parts := strings.Fields(header)

	switch {
	case len(parts) == 0:
		return "", authDomain.ErrAuthorizationHeaderMissing
	case !strings.EqualFold(parts[0], "bearer"):
		return "", authDomain.ErrAuthorizationSchemeInvalid
	case len(parts) == 1:
		return "", authDomain.ErrAuthorizationTokenMissing
	case len(parts) > 2:
		return "", authDomain.ErrAuthorizationHeaderMalformed
	}

	return parts[1], nil
}
