package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/coffeeshop/internal/auth/domain"
	"github.com/allisson/coffeeshop/internal/auth/http/mocks"
	"github.com/allisson/coffeeshop/internal/httputil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newProtectedRouter builds a router with one route gated by permission.
func newProtectedRouter(verifier *mocks.MockTokenVerifier, permission authDomain.Permission) *gin.Engine {
	router := gin.New()
	handlers := RequiresAuth(verifier, permission, testLogger())
	handlers = append(handlers, func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": claims.Subject})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router http.Handler, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()

	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestRequiresAuth(t *testing.T) {
	granted := &authDomain.Claims{
		Subject:        "auth0|barista",
		Permissions:    []string{"get:drinks-detail"},
		HasPermissions: true,
	}

	tests := []struct {
		name            string
		header          string
		setupMock       func(m *mocks.MockTokenVerifier)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "missing header",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Authorization header is expected.",
		},
		{
			name:            "wrong scheme",
			header:          "Basic dXNlcjpwYXNz",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: `Authorization header must start with "Bearer".`,
		},
		{
			name:            "scheme only",
			header:          "Bearer",
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Authorization header must be bearer token.",
		},
		{
			name:            "too many parts",
			header:          "Bearer a b",
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Authorization header must be a single bearer token.",
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setupMock: func(m *mocks.MockTokenVerifier) {
				m.On("VerifyToken", mock.Anything, "expired").Return(nil, authDomain.ErrTokenExpired).Once()
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Token expired.",
		},
		{
			name:   "key set unavailable",
			header: "Bearer token",
			setupMock: func(m *mocks.MockTokenVerifier) {
				m.On("VerifyToken", mock.Anything, "token").Return(nil, errors.New("jwks unreachable")).Once()
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal Server Error",
		},
		{
			name:   "permissions claim missing",
			header: "Bearer token",
			setupMock: func(m *mocks.MockTokenVerifier) {
				m.On("VerifyToken", mock.Anything, "token").
					Return(&authDomain.Claims{Subject: "auth0|guest"}, nil).
					Once()
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Permissions not included in JWT.",
		},
		{
			name:   "permission not granted",
			header: "Bearer token",
			setupMock: func(m *mocks.MockTokenVerifier) {
				m.On("VerifyToken", mock.Anything, "token").
					Return(&authDomain.Claims{Subject: "auth0|guest", HasPermissions: true}, nil).
					Once()
			},
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "Permission not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &mocks.MockTokenVerifier{}
			if tt.setupMock != nil {
				tt.setupMock(verifier)
			}
			router := newProtectedRouter(verifier, authDomain.GetDrinksDetailPermission)

			w := doRequest(router, tt.header)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeErrorResponse(t, w)
			assert.False(t, response.Success)
			assert.Equal(t, tt.expectedStatus, response.Error)
			assert.Equal(t, tt.expectedMessage, response.Message)
			verifier.AssertExpectations(t)
		})
	}

	t.Run("granted", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}
		verifier.On("VerifyToken", mock.Anything, "good").Return(granted, nil).Once()
		router := newProtectedRouter(verifier, authDomain.GetDrinksDetailPermission)

		w := doRequest(router, "bearer good")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"subject":"auth0|barista"}`, w.Body.String())
	})
}

func TestPermissionMiddleware_NoClaims(t *testing.T) {
	router := gin.New()
	router.GET("/protected", PermissionMiddleware(authDomain.PostDrinksPermission, testLogger()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetClaims(req.Context())
	assert.False(t, ok)

	claims := &authDomain.Claims{Subject: "auth0|1"}
	got, ok := GetClaims(WithClaims(req.Context(), claims))
	assert.True(t, ok)
	assert.Same(t, claims, got)

	_, ok = GetClaims(WithClaims(req.Context(), nil))
	assert.False(t, ok)
}
