package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Empty(t, cfg.DBConnectionString)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "RS256", cfg.JWTAlgorithm)
				assert.Equal(t, 15*time.Minute, cfg.JWKSMinRefreshInterval)
				assert.Equal(t, time.Duration(0), cfg.JWTClockSkew)
				assert.Equal(t, "coffeeshop_session", cfg.SessionCookieName)
				assert.Empty(t, cfg.Auth0Domain)
				assert.Empty(t, cfg.AppSecretKey)
				assert.Equal(t, "coffeeshop", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "localhost",
				"SERVER_PORT": "9090",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_MAX_IDLE_CONNECTIONS": "10",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load identity provider configuration",
			envVars: map[string]string{
				"AUTH0_DOMAIN":                      "coffee.us.auth0.com",
				"AUTH0_CLIENT_ID":                   "client",
				"AUTH0_CLIENT_SECRET":               "secret",
				"API_AUDIENCE":                      "coffee",
				"JWKS_MIN_REFRESH_INTERVAL_MINUTES": "5",
				"JWT_CLOCK_SKEW_SECONDS":            "30",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "coffee.us.auth0.com", cfg.Auth0Domain)
				assert.Equal(t, "client", cfg.Auth0ClientID)
				assert.Equal(t, "secret", cfg.Auth0ClientSecret)
				assert.Equal(t, "coffee", cfg.APIAudience)
				assert.Equal(t, 5*time.Minute, cfg.JWKSMinRefreshInterval)
				assert.Equal(t, 30*time.Second, cfg.JWTClockSkew)
			},
		},
		{
			name: "load custom rate limit configuration",
			envVars: map[string]string{
				"RATE_LIMIT_LOGIN_ENABLED":          "false",
				"RATE_LIMIT_LOGIN_REQUESTS_PER_SEC": "1.5",
				"RATE_LIMIT_BURST":                  "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimitLoginEnabled)
				assert.Equal(t, 1.5, cfg.RateLimitLoginRequestsPerSec)
				assert.Equal(t, 3, cfg.RateLimitBurst)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			// Load configuration
			cfg := Load()

			// Validate
			tt.validate(t, cfg)
		})
	}
}

func validConfig() *Config {
	return &Config{
		DBDriver:           "postgres",
		DBConnectionString: "postgres://localhost/coffeeshop",
		Auth0Domain:        "coffee.us.auth0.com",
		Auth0ClientID:      "client",
		Auth0ClientSecret:  "secret",
		APIAudience:        "coffee",
		AppSecretKey:       "0123456789abcdef0123",
		JWTAlgorithm:       "RS256",
		SessionCookieName:  "coffeeshop_session",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "valid"},
		{
			name:    "missing domain",
			mutate:  func(cfg *Config) { cfg.Auth0Domain = "" },
			wantErr: "Auth0Domain",
		},
		{
			name:    "missing audience",
			mutate:  func(cfg *Config) { cfg.APIAudience = "" },
			wantErr: "APIAudience",
		},
		{
			name:    "short secret key",
			mutate:  func(cfg *Config) { cfg.AppSecretKey = "short" },
			wantErr: "AppSecretKey",
		},
		{
			name:    "missing connection string",
			mutate:  func(cfg *Config) { cfg.DBConnectionString = "" },
			wantErr: "DBConnectionString",
		},
		{
			name:    "unsupported driver",
			mutate:  func(cfg *Config) { cfg.DBDriver = "sqlite" },
			wantErr: "DBDriver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_RequiresConnectionString(t *testing.T) {
	os.Clearenv()
	for key, value := range map[string]string{
		"AUTH0_DOMAIN":        "coffee.us.auth0.com",
		"AUTH0_CLIENT_ID":     "client",
		"AUTH0_CLIENT_SECRET": "secret",
		"API_AUDIENCE":        "coffee",
		"APP_SECRET_KEY":      "0123456789abcdef0123",
	} {
		require.NoError(t, os.Setenv(key, value))
	}

	err := Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DBConnectionString")
	assert.NotContains(t, err.Error(), "Auth0Domain")

	require.NoError(t, os.Setenv("DB_CONNECTION_STRING", "postgres://localhost/coffeeshop"))
	assert.NoError(t, Load().Validate())
}

func TestConfig_IssuerAndJWKSURL(t *testing.T) {
	tests := []struct {
		name         string
		domain       string
		jwksURL      string
		expectedIss  string
		expectedJWKS string
	}{
		{
			name:         "bare domain",
			domain:       "coffee.us.auth0.com",
			expectedIss:  "https://coffee.us.auth0.com/",
			expectedJWKS: "https://coffee.us.auth0.com/.well-known/jwks.json",
		},
		{
			name:         "domain with scheme and slash",
			domain:       "https://coffee.us.auth0.com/",
			expectedIss:  "https://coffee.us.auth0.com/",
			expectedJWKS: "https://coffee.us.auth0.com/.well-known/jwks.json",
		},
		{
			name:         "jwks override",
			domain:       "coffee.us.auth0.com",
			jwksURL:      "http://localhost:9000/jwks.json",
			expectedIss:  "https://coffee.us.auth0.com/",
			expectedJWKS: "http://localhost:9000/jwks.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Auth0Domain: tt.domain, JWKSURL: tt.jwksURL}

			assert.Equal(t, tt.expectedIss, cfg.Issuer())
			assert.Equal(t, tt.expectedJWKS, cfg.GetJWKSURL())
		})
	}
}

func TestConfig_GetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "unknown"}).GetGinMode())
}
