package http

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsMaxAge is how long browsers may cache a preflight answer.
const corsMaxAge = 12 * time.Hour

// createCORSMiddleware returns the CORS middleware for the drinks API, or nil when
// CORS is disabled or no usable origin is configured.
//
// allowOrigins is a comma-separated list of origins such as "https://menu.example.com".
// The single value "*" allows every origin; cookies are then not shared, because
// browsers reject credentials on wildcard responses.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        corsMaxAge,
	}

	if strings.TrimSpace(allowOrigins) == "*" {
		config.AllowAllOrigins = true
		logger.Info("CORS enabled for every origin")
		return cors.New(config)
	}

	origins := parseOrigins(allowOrigins, logger)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured, CORS will not be applied")
		return nil
	}

	config.AllowOrigins = origins
	config.AllowCredentials = true
	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(config)
}

// parseOrigins splits the comma-separated list and keeps the entries that are
// absolute http(s) origins without a path. Rejected entries are logged.
func parseOrigins(allowOrigins string, logger *slog.Logger) []string {
	var origins []string
	for _, part := range strings.Split(allowOrigins, ",") {
		origin := strings.TrimSuffix(strings.TrimSpace(part), "/")
		if origin == "" {
			continue
		}

		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || u.Path != "" {
			logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
