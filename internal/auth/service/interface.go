// Package service provides technical services for authentication operations.
//
// This package verifies bearer tokens issued by the external identity provider against
// its published JSON Web Key Set.
package service

import (
	"context"

	"github.com/lestrrat-go/jwx/v2/jwk"

	authDomain "github.com/allisson/coffeeshop/internal/auth/domain"
)

// TokenVerifier validates raw bearer tokens and returns their decoded claims.
type TokenVerifier interface {
	// VerifyToken checks the token signature, issuer, audience and expiry.
	// Validation failures are returned as *authDomain.AuthError; failures to obtain
	// the signing keys are returned as plain errors.
	VerifyToken(ctx context.Context, token string) (*authDomain.Claims, error)
}

// KeySetProvider supplies the identity provider's signing keys.
type KeySetProvider interface {
	// KeySet returns the current (possibly cached) key set.
	KeySet(ctx context.Context) (jwk.Set, error)

	// Refresh fetches the key set again, e.g. after a key rotation introduced an
	// unknown key id. Implementations may return the cached set when called too often.
	Refresh(ctx context.Context) (jwk.Set, error)
}
