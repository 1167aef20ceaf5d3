package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/coffeeshop/internal/auth/domain"
	authService "github.com/allisson/coffeeshop/internal/auth/service"
	apperrors "github.com/allisson/coffeeshop/internal/errors"
	"github.com/allisson/coffeeshop/internal/httputil"
)

// AuthenticationMiddleware verifies the bearer token in the Authorization header.
//
// The middleware:
// 1. Parses the Authorization header, which must be "Bearer <token>"
// 2. Verifies the token signature, issuer, audience and expiry with verifier
// 3. Stores the verified claims in the request context (see GetClaims)
//
// Header and token failures are AuthErrors carrying their own status code. A
// failure to obtain the signing keys is reported as 500.
func AuthenticationMiddleware(verifier authService.TokenVerifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := authService.ParseAuthorizationHeader(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("authentication failed: invalid authorization header", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))

		logger.Debug("authentication successful", slog.String("subject", claims.Subject))

		c.Next()
	}
}

// PermissionMiddleware requires the verified claims to grant permission.
// It must run after AuthenticationMiddleware.
//
//   - No claims in context -> 401
//   - Token without a permissions claim -> 400
//   - Permission not granted -> 403
func PermissionMiddleware(permission authDomain.Permission, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no verified claims in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		if err := claims.RequirePermission(permission); err != nil {
			logger.Debug("authorization failed",
				slog.String("subject", claims.Subject),
				slog.String("permission", string(permission)),
				slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			return
		}

		c.Next()
	}
}

// RequiresAuth returns the authentication and permission middlewares for a protected route.
//
//	router.GET("/drinks-detail", append(RequiresAuth(verifier, authDomain.GetDrinksDetailPermission, logger), handler)...)
func RequiresAuth(
	verifier authService.TokenVerifier,
	permission authDomain.Permission,
	logger *slog.Logger,
) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		AuthenticationMiddleware(verifier, logger),
		PermissionMiddleware(permission, logger),
	}
}
