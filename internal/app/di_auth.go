package app

import (
	"crypto/sha256"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/oauth2"

	authHTTP "github.com/allisson/coffeeshop/internal/auth/http"
	authService "github.com/allisson/coffeeshop/internal/auth/service"
)

// sessionMaxAge is the lifetime of the login session cookie in seconds.
const sessionMaxAge = 8 * 60 * 60

const (
	sessionAuthKeyInfo       = "coffeeshop session authentication"
	sessionEncryptionKeyInfo = "coffeeshop session encryption"
	sessionKeySize           = 32
)

// authComponents holds the bearer token and browser login dependencies.
type authComponents struct {
	jwksCache     *authService.JWKSCache
	tokenVerifier authService.TokenVerifier
	loginHandler  *authHTTP.LoginHandler
	sessionStore  sessions.Store

	jwksCacheInit     sync.Once
	tokenVerifierInit sync.Once
	loginHandlerInit  sync.Once
	sessionStoreInit  sync.Once
}

// JWKSCache returns the refreshing cache of the identity provider's signing keys.
func (c *Container) JWKSCache() (*authService.JWKSCache, error) {
	c.jwksCacheInit.Do(func() {
		cache, err := c.initJWKSCache()
		c.setResult("jwksCache", err, func() { c.jwksCache = cache })
	})
	if err := c.initError("jwksCache"); err != nil {
		return nil, err
	}
	return c.jwksCache, nil
}

// TokenVerifier returns the bearer token verifier.
func (c *Container) TokenVerifier() (authService.TokenVerifier, error) {
	c.tokenVerifierInit.Do(func() {
		verifier, err := c.initTokenVerifier()
		c.setResult("tokenVerifier", err, func() { c.tokenVerifier = verifier })
	})
	if err := c.initError("tokenVerifier"); err != nil {
		return nil, err
	}
	return c.tokenVerifier, nil
}

// LoginHandler returns the handler for /login, /callback and /logout.
func (c *Container) LoginHandler() (*authHTTP.LoginHandler, error) {
	c.loginHandlerInit.Do(func() {
		handler, err := c.initLoginHandler()
		c.setResult("loginHandler", err, func() { c.loginHandler = handler })
	})
	if err := c.initError("loginHandler"); err != nil {
		return nil, err
	}
	return c.loginHandler, nil
}

// SessionStore returns the signed and encrypted cookie store backing the login session.
func (c *Container) SessionStore() (sessions.Store, error) {
	c.sessionStoreInit.Do(func() {
		store, err := c.initSessionStore()
		c.setResult("sessionStore", err, func() { c.sessionStore = store })
	})
	if err := c.initError("sessionStore"); err != nil {
		return nil, err
	}
	return c.sessionStore, nil
}

// initJWKSCache registers the key set URL in a background-refreshing cache.
func (c *Container) initJWKSCache() (*authService.JWKSCache, error) {
	cache, err := authService.NewJWKSCache(
		c.ctx,
		c.config.GetJWKSURL(),
		c.config.JWKSMinRefreshInterval,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwks cache: %w", err)
	}
	return cache, nil
}

// initTokenVerifier creates the verifier for the API audience and tenant issuer.
func (c *Container) initTokenVerifier() (authService.TokenVerifier, error) {
	cache, err := c.JWKSCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get jwks cache for token verifier: %w", err)
	}

	verifier, err := authService.NewTokenVerifier(cache, authService.TokenVerifierConfig{
		Issuer:    c.config.Issuer(),
		Audience:  c.config.APIAudience,
		Algorithm: c.config.JWTAlgorithm,
		ClockSkew: c.config.JWTClockSkew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}
	return verifier, nil
}

// initLoginHandler configures the authorization code flow against the tenant's
// static endpoints, so start-up does not depend on OIDC discovery.
func (c *Container) initLoginHandler() (*authHTTP.LoginHandler, error) {
	issuer := c.config.Issuer()

	returnTo, err := url.Parse(c.config.Auth0CallbackURL)
	if err != nil {
		return nil, fmt.Errorf("invalid callback url: %w", err)
	}
	returnTo.Path = "/"
	returnTo.RawQuery = ""

	idTokenVerifier := oidc.NewVerifier(
		issuer,
		oidc.NewRemoteKeySet(c.ctx, c.config.GetJWKSURL()),
		&oidc.Config{
			ClientID:             c.config.Auth0ClientID,
			SupportedSigningAlgs: []string{c.config.JWTAlgorithm},
		},
	)

	return authHTTP.NewLoginHandler(authHTTP.LoginConfig{
		OAuth2: &oauth2.Config{
			ClientID:     c.config.Auth0ClientID,
			ClientSecret: c.config.Auth0ClientSecret,
			RedirectURL:  c.config.Auth0CallbackURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  issuer + "authorize",
				TokenURL: issuer + "oauth/token",
			},
		},
		Audience:  c.config.APIAudience,
		LogoutURL: issuer + "v2/logout",
		ReturnTo:  returnTo.String(),
	}, idTokenVerifier, c.Logger()), nil
}

// initSessionStore creates a cookie store whose values are authenticated and
// AES-256 encrypted with keys derived from APP_SECRET_KEY.
func (c *Container) initSessionStore() (sessions.Store, error) {
	authKey, encryptionKey, err := deriveSessionKeys(c.config.AppSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive session keys: %w", err)
	}

	store := cookie.NewStore(authKey, encryptionKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: nethttp.SameSiteLaxMode,
	})
	return store, nil
}

// deriveSessionKeys expands secret with HKDF-SHA256 into independent authentication
// and encryption keys.
func deriveSessionKeys(secret string) (authKey, encryptionKey []byte, err error) {
	if secret == "" {
		return nil, nil, fmt.Errorf("app secret key is required")
	}

	if authKey, err = expandKey(secret, sessionAuthKeyInfo); err != nil {
		return nil, nil, err
	}
	if encryptionKey, err = expandKey(secret, sessionEncryptionKeyInfo); err != nil {
		return nil, nil, err
	}
	return authKey, encryptionKey, nil
}

func expandKey(secret, info string) ([]byte, error) {
	key := make([]byte, sessionKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("failed to expand %q key: %w", info, err)
	}
	return key, nil
}
