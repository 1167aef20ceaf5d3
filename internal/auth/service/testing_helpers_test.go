package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://coffee.example.auth0.com/"
	testAudience = "coffee"
)

// testSigner holds an RSA key pair registered under a key id.
type testSigner struct {
	kid        string
	privateKey *rsa.PrivateKey
	publicKey  jwk.Key
}

func newTestSigner(t *testing.T, kid string) *testSigner {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	publicKey, err := jwk.FromRaw(privateKey.Public())
	require.NoError(t, err)
	require.NoError(t, publicKey.Set(jwk.KeyIDKey, kid))
	require.NoError(t, publicKey.Set(jwk.AlgorithmKey, jwa.RS256))
	require.NoError(t, publicKey.Set(jwk.KeyUsageKey, "sig"))

	return &testSigner{kid: kid, privateKey: privateKey, publicKey: publicKey}
}

// sign builds a token with the given claims. A nil value for a claim omits it.
func (s *testSigner) sign(t *testing.T, claims map[string]any) string {
	t.Helper()

	token := jwt.New()
	for name, value := range claims {
		if value == nil {
			continue
		}
		require.NoError(t, token.Set(name, value))
	}

	headers := jws.NewHeaders()
	if s.kid != "" {
		require.NoError(t, headers.Set(jws.KeyIDKey, s.kid))
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, s.privateKey, jws.WithProtectedHeaders(headers)))
	require.NoError(t, err)

	return string(signed)
}

// validClaims returns a claim set accepted by a verifier configured with the test issuer and audience.
func validClaims(permissions ...string) map[string]any {
	perms := make([]string, 0, len(permissions))
	perms = append(perms, permissions...)

	return map[string]any{
		jwt.SubjectKey:    "auth0|barista",
		jwt.IssuerKey:     testIssuer,
		jwt.AudienceKey:   []string{testAudience},
		jwt.IssuedAtKey:   time.Now().Add(-time.Minute),
		jwt.ExpirationKey: time.Now().Add(time.Hour),
		"permissions":     perms,
	}
}

// staticKeySet is a KeySetProvider returning fixed key sets and counting refreshes.
type staticKeySet struct {
	set        jwk.Set
	refreshed  jwk.Set
	err        error
	refreshErr error
	refreshes  int
}

func newStaticKeySet(t *testing.T, keys ...jwk.Key) *staticKeySet {
	t.Helper()

	set := jwk.NewSet()
	for _, key := range keys {
		require.NoError(t, set.AddKey(key))
	}
	return &staticKeySet{set: set}
}

func (s *staticKeySet) KeySet(ctx context.Context) (jwk.Set, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.set, nil
}

func (s *staticKeySet) Refresh(ctx context.Context) (jwk.Set, error) {
	s.refreshes++
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	if s.refreshed != nil {
		return s.refreshed, nil
	}
	return s.set, nil
}
