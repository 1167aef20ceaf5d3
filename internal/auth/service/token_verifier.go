package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	authDomain "github.com/allisson/coffeeshop/internal/auth/domain"
)

// TokenVerifierConfig holds the expected token parameters.
type TokenVerifierConfig struct {
	// Issuer is the expected "iss" claim, e.g. "https://tenant.auth0.com/".
	Issuer string
	// Audience is the API identifier expected in the "aud" claim.
	Audience string
	// Algorithm is the asymmetric signature algorithm, e.g. "RS256".
	Algorithm string
	// ClockSkew is the leeway applied to time based claims.
	ClockSkew time.Duration
}

// jwtVerifier implements TokenVerifier using lestrrat-go/jwx.
type jwtVerifier struct {
	keys      KeySetProvider
	issuer    string
	audience  string
	algorithm jwa.SignatureAlgorithm
	clockSkew time.Duration
}

// NewTokenVerifier creates a TokenVerifier that validates tokens signed by keys from provider.
// Only asymmetric algorithms are accepted.
func NewTokenVerifier(provider KeySetProvider, cfg TokenVerifierConfig) (TokenVerifier, error) {
	if provider == nil {
		return nil, errors.New("key set provider is required")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("audience is required")
	}

	var alg jwa.SignatureAlgorithm
	if err := alg.Accept(cfg.Algorithm); err != nil {
		return nil, fmt.Errorf("unsupported signature algorithm %q: %w", cfg.Algorithm, err)
	}
	if alg == jwa.NoSignature || strings.HasPrefix(alg.String(), "HS") {
		return nil, fmt.Errorf("signature algorithm %q is not asymmetric", cfg.Algorithm)
	}

	return &jwtVerifier{
		keys:      provider,
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		algorithm: alg,
		clockSkew: cfg.ClockSkew,
	}, nil
}

// VerifyToken validates the token and returns its claims.
func (v *jwtVerifier) VerifyToken(ctx context.Context, token string) (*authDomain.Claims, error) {
	msg, err := jws.Parse([]byte(token))
	if err != nil {
		return nil, authDomain.ErrTokenMalformed.WithCause(err)
	}

	signatures := msg.Signatures()
	if len(signatures) != 1 {
		return nil, authDomain.ErrTokenMalformed
	}

	kid := signatures[0].ProtectedHeaders().KeyID()
	if kid == "" {
		return nil, authDomain.ErrTokenKeyIDMissing
	}

	key, err := v.lookupKey(ctx, kid)
	if err != nil {
		return nil, err
	}

	parsed, err := jwt.Parse(
		[]byte(token),
		jwt.WithKey(v.algorithm, key),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithRequiredClaim(jwt.ExpirationKey),
		jwt.WithAcceptableSkew(v.clockSkew),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}

	return v.toClaims(parsed)
}

// lookupKey finds the signing key by id, refreshing the key set once when the id is unknown.
func (v *jwtVerifier) lookupKey(ctx context.Context, kid string) (jwk.Key, error) {
	set, err := v.keys.KeySet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get signing keys: %w", err)
	}
	if key, ok := set.LookupKeyID(kid); ok {
		return key, nil
	}

	set, err = v.keys.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh signing keys: %w", err)
	}
	if key, ok := set.LookupKeyID(kid); ok {
		return key, nil
	}

	return nil, authDomain.ErrSigningKeyNotFound
}

func (v *jwtVerifier) toClaims(token jwt.Token) (*authDomain.Claims, error) {
	claims := &authDomain.Claims{
		Subject:   token.Subject(),
		Issuer:    token.Issuer(),
		Audience:  token.Audience(),
		ExpiresAt: token.Expiration(),
	}

	raw, ok := token.Get(authDomain.PermissionsClaim)
	if !ok {
		return claims, nil
	}

	permissions, err := toStringSlice(raw)
	if err != nil {
		return nil, authDomain.ErrTokenClaimsInvalid.WithCause(err)
	}

	claims.HasPermissions = true
	claims.Permissions = permissions
	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired()):
		return authDomain.ErrTokenExpired.WithCause(err)
	case errors.Is(err, jwt.ErrInvalidIssuer()), errors.Is(err, jwt.ErrInvalidAudience()):
		return authDomain.ErrTokenClaimsInvalid.WithCause(err)
	default:
		return authDomain.ErrTokenInvalid.WithCause(err)
	}
}

func toStringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("permissions claim contains a non-string value of type %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("permissions claim must be an array, got %T", value)
	}
}
