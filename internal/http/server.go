// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/coffeeshop/internal/auth/domain"
	authHTTP "github.com/allisson/coffeeshop/internal/auth/http"
	authService "github.com/allisson/coffeeshop/internal/auth/service"
	"github.com/allisson/coffeeshop/internal/config"
	drinkHTTP "github.com/allisson/coffeeshop/internal/drink/http"
	"github.com/allisson/coffeeshop/internal/metrics"
)

// WelcomeMessage is returned by the root banner.
const WelcomeMessage = "welcome to the coffee shop"

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second

	readinessTimeout = 2 * time.Second
)

// Server is the menu API listener.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates the API server. The router is attached by SetupRouter.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newStdServer(host, port, nil),
	}
}

func newStdServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// listenAndServe blocks until srv is shut down. A closed server is not an error.
func listenAndServe(srv *http.Server, logger *slog.Logger, name string) error {
	logger.Info("starting "+name+" server", slog.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

// SetupRouter builds the gin engine with the middleware stack and every route.
func (s *Server) SetupRouter(
	cfg *config.Config,
	drinkHandler *drinkHTTP.DrinkHandler,
	loginHandler *authHTTP.LoginHandler,
	tokenVerifier authService.TokenVerifier,
	sessionStore sessions.Store,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(RecoveryMiddleware(s.logger))
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.Use(sessions.Sessions(cfg.SessionCookieName, sessionStore))

	router.NoRoute(envelopeStatus(http.StatusNotFound))
	router.NoMethod(envelopeStatus(http.StatusMethodNotAllowed))

	// Operational endpoints
	router.GET("/", s.indexHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Browser login flow
	loginChain := []gin.HandlerFunc{}
	if cfg.RateLimitLoginEnabled {
		loginChain = append(loginChain, authHTTP.IPRateLimitMiddleware(
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			s.logger,
		))
	}
	router.GET("/login", append(loginChain, loginHandler.LoginHandler)...)
	router.GET("/callback", loginHandler.CallbackHandler)
	router.POST("/callback", loginHandler.CallbackHandler)
	router.GET("/logout", loginHandler.LogoutHandler)

	// Drink menu
	var subjectLimiter gin.HandlerFunc
	if cfg.RateLimitEnabled {
		subjectLimiter = authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
	}
	protected := func(permission authDomain.Permission, handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := authHTTP.RequiresAuth(tokenVerifier, permission, s.logger)
		if subjectLimiter != nil {
			chain = append(chain, subjectLimiter)
		}
		return append(chain, handler)
	}

	router.GET("/drinks", drinkHandler.ListHandler)
	router.GET("/drinks-detail", protected(authDomain.GetDrinksDetailPermission, drinkHandler.DetailHandler)...)
	router.POST("/drinks", protected(authDomain.PostDrinksPermission, drinkHandler.CreateHandler)...)

	drinkByID := router.Group("/drinks/:id", IntegerParamMiddleware("id"))
	drinkByID.PATCH("", protected(authDomain.PatchDrinksPermission, drinkHandler.UpdateHandler)...)
	drinkByID.DELETE("", protected(authDomain.DeleteDrinksPermission, drinkHandler.DeleteHandler)...)

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves the API until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router is not configured")
	}
	s.server.Handler = s.router
	return listenAndServe(s.server, s.logger, "http")
}

// Shutdown drains in-flight requests within ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// indexHandler returns the welcome banner.
func (s *Server) indexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": WelcomeMessage,
	})
}

// healthHandler reports that the process is up.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if err := s.pingDB(c.Request.Context()); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

func (s *Server) pingDB(ctx context.Context) error {
	if s.db == nil {
		return errors.New("database is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}
