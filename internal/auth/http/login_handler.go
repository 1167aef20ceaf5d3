package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	apperrors "github.com/allisson/coffeeshop/internal/errors"
	"github.com/allisson/coffeeshop/internal/httputil"
)

// Session keys used by the login handshake.
const (
	sessionStateKey       = "oauth_state"
	sessionSubjectKey     = "subject"
	sessionAccessTokenKey = "access_token"
)

// IDTokenVerifier verifies the ID token returned by the authorization server.
// *oidc.IDTokenVerifier satisfies it.
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// LoginConfig holds the identity provider settings for the browser login flow.
type LoginConfig struct {
	// OAuth2 is the authorization code flow client.
	OAuth2 *oauth2.Config
	// Audience is sent as the "audience" parameter so the issued access token targets the API.
	Audience string
	// LogoutURL is the provider logout endpoint, e.g. https://tenant.auth0.com/v2/logout.
	LogoutURL string
	// ReturnTo is where the provider sends the browser after logout.
	ReturnTo string
}

// LoginHandler drives the OAuth2 authorization code flow against the identity provider
// and keeps the outcome in a signed session cookie.
type LoginHandler struct {
	config   LoginConfig
	verifier IDTokenVerifier
	logger   *slog.Logger
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(config LoginConfig, verifier IDTokenVerifier, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		config:   config,
		verifier: verifier,
		logger:   logger,
	}
}

// LoginHandler redirects the browser to the provider authorize endpoint.
// GET /login
func (h *LoginHandler) LoginHandler(c *gin.Context) {
	state := uuid.NewString()

	session := sessions.Default(c)
	session.Set(sessionStateKey, state)
	if err := session.Save(); err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(err, "failed to save session"), h.logger)
		return
	}

	var opts []oauth2.AuthCodeOption
	if h.config.Audience != "" {
		opts = append(opts, oauth2.SetAuthURLParam("audience", h.config.Audience))
	}

	c.Redirect(http.StatusFound, h.config.OAuth2.AuthCodeURL(state, opts...))
}

// CallbackHandler completes the login: it checks the state, exchanges the code,
// verifies the ID token and stores the subject and access token in the session.
// GET, POST /callback
func (h *LoginHandler) CallbackHandler(c *gin.Context) {
	session := sessions.Default(c)

	expected, _ := session.Get(sessionStateKey).(string)
	state := formValue(c, "state")
	if expected == "" || state != expected {
		h.logger.Debug("login callback rejected: state mismatch")
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrBadRequest, "invalid state"), h.logger)
		return
	}
	session.Delete(sessionStateKey)

	if providerErr := formValue(c, "error"); providerErr != "" {
		h.logger.Debug("login callback rejected by provider",
			slog.String("error", providerErr),
			slog.String("error_description", formValue(c, "error_description")))
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, providerErr), h.logger)
		return
	}

	code := formValue(c, "code")
	if code == "" {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrBadRequest, "missing code"), h.logger)
		return
	}

	ctx := c.Request.Context()
	token, err := h.config.OAuth2.Exchange(ctx, code)
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Join(apperrors.ErrUnauthorized, err), h.logger)
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing id_token"), h.logger)
		return
	}

	idToken, err := h.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Join(apperrors.ErrUnauthorized, err), h.logger)
		return
	}

	session.Set(sessionSubjectKey, idToken.Subject)
	session.Set(sessionAccessTokenKey, token.AccessToken)
	if err := session.Save(); err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(err, "failed to save session"), h.logger)
		return
	}

	h.logger.Info("user logged in", slog.String("subject", idToken.Subject))

	c.Redirect(http.StatusFound, "/")
}

// LogoutHandler clears the session and redirects to the provider logout endpoint.
// GET /logout
func (h *LoginHandler) LogoutHandler(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.logger.Warn("failed to clear session", slog.Any("error", err))
	}

	target := "/"
	if h.config.LogoutURL != "" {
		params := url.Values{}
		params.Set("client_id", h.config.OAuth2.ClientID)
		if h.config.ReturnTo != "" {
			params.Set("returnTo", h.config.ReturnTo)
		}
		target = h.config.LogoutURL + "?" + params.Encode()
	}

	c.Redirect(http.StatusFound, target)
}

// formValue reads a callback parameter from the query string or a posted form.
func formValue(c *gin.Context, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return c.PostForm(key)
}
