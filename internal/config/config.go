// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DBDriver is the database driver to use (e.g., "postgres", "mysql").
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// Auth0Domain is the identity provider tenant domain, e.g. "coffee.us.auth0.com".
	Auth0Domain string
	// Auth0ClientID is the OAuth2 client id used by the browser login flow.
	Auth0ClientID string
	// Auth0ClientSecret is the OAuth2 client secret used by the browser login flow.
	Auth0ClientSecret string
	// Auth0CallbackURL is the redirect URI registered with the identity provider.
	Auth0CallbackURL string
	// APIAudience is the API identifier expected in bearer tokens.
	APIAudience string
	// JWTAlgorithm is the signature algorithm accepted for bearer tokens.
	JWTAlgorithm string
	// JWKSURL overrides the key set location derived from Auth0Domain.
	JWKSURL string
	// JWKSMinRefreshInterval is the minimum time between key set fetches.
	JWKSMinRefreshInterval time.Duration
	// JWTClockSkew is the leeway applied to token expiry checks.
	JWTClockSkew time.Duration

	// AppSecretKey signs the session cookie.
	AppSecretKey string
	// SessionCookieName is the name of the session cookie.
	SessionCookieName string

	// RateLimitEnabled indicates whether rate limiting for authenticated endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second for authenticated endpoints.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for authenticated endpoints rate limiting.
	RateLimitBurst int

	// RateLimitLoginEnabled indicates whether rate limiting for the login endpoint is enabled.
	RateLimitLoginEnabled bool
	// RateLimitLoginRequestsPerSec is the number of requests allowed per second for the login endpoint.
	RateLimitLoginRequestsPerSec float64
	// RateLimitLoginBurst is the burst size for the login endpoint rate limiting.
	RateLimitLoginBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Database configuration (connection string has no default)
		DBDriver:             env.GetString("DB_DRIVER", "postgres"),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", ""),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Identity provider
		Auth0Domain:       env.GetString("AUTH0_DOMAIN", ""),
		Auth0ClientID:     env.GetString("AUTH0_CLIENT_ID", ""),
		Auth0ClientSecret: env.GetString("AUTH0_CLIENT_SECRET", ""),
		Auth0CallbackURL:  env.GetString("AUTH0_CALLBACK_URL", "http://localhost:8080/callback"),
		APIAudience:       env.GetString("API_AUDIENCE", ""),
		JWTAlgorithm:      env.GetString("JWT_ALGORITHM", "RS256"),
		JWKSURL:           env.GetString("JWKS_URL", ""),
		JWKSMinRefreshInterval: env.GetDuration(
			"JWKS_MIN_REFRESH_INTERVAL_MINUTES",
			15,
			time.Minute,
		),
		JWTClockSkew: env.GetDuration("JWT_CLOCK_SKEW_SECONDS", 0, time.Second),

		// Session
		AppSecretKey:      env.GetString("APP_SECRET_KEY", ""),
		SessionCookieName: env.GetString("SESSION_COOKIE_NAME", "coffeeshop_session"),

		// Rate Limiting (authenticated endpoints)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// Rate Limiting for Login Endpoint (IP-based, unauthenticated)
		RateLimitLoginEnabled:        env.GetBool("RATE_LIMIT_LOGIN_ENABLED", true),
		RateLimitLoginRequestsPerSec: env.GetFloat64("RATE_LIMIT_LOGIN_REQUESTS_PER_SEC", 5.0),
		RateLimitLoginBurst:          env.GetInt("RATE_LIMIT_LOGIN_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "coffeeshop"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks that the identity provider and secret values are set and
// that the database driver is supported.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DBDriver, validation.Required, validation.In("postgres", "mysql")),
		validation.Field(&c.DBConnectionString, validation.Required),
		validation.Field(&c.Auth0Domain, validation.Required),
		validation.Field(&c.Auth0ClientID, validation.Required),
		validation.Field(&c.Auth0ClientSecret, validation.Required),
		validation.Field(&c.APIAudience, validation.Required),
		validation.Field(&c.AppSecretKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.JWTAlgorithm, validation.Required),
		validation.Field(&c.SessionCookieName, validation.Required),
	)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// Issuer returns the expected token issuer, "https://<domain>/".
func (c *Config) Issuer() string {
	return "https://" + c.domainHost() + "/"
}

// GetJWKSURL returns the key set location, defaulting to the tenant's well-known path.
func (c *Config) GetJWKSURL() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}
	return c.Issuer() + ".well-known/jwks.json"
}

// domainHost strips an optional scheme and trailing slash from Auth0Domain.
func (c *Config) domainHost() string {
	host := strings.TrimPrefix(c.Auth0Domain, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimSuffix(host, "/")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
