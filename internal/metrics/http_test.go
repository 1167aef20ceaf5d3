package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newInstrumentedRouter(t *testing.T) (*gin.Engine, *Provider) {
	t.Helper()

	provider, err := NewProvider("http_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "http_test"))
	router.GET("/drinks", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.PATCH("/drinks/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.DELETE("/drinks/:id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
	})

	return router, provider
}

func serve(router *gin.Engine, method, path string) int {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w.Code
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	t.Run("route pattern label", func(t *testing.T) {
		router, provider := newInstrumentedRouter(t)

		assert.Equal(t, http.StatusOK, serve(router, http.MethodPatch, "/drinks/123"))
		assert.Equal(t, http.StatusOK, serve(router, http.MethodPatch, "/drinks/456"))

		output := scrape(t, provider)
		assert.Regexp(t, `http_test_http_requests_total\{[^}]*path="/drinks/:id"[^}]*\} 2`, output)
		assert.NotContains(t, output, `path="/drinks/123"`)
	})

	t.Run("status code label", func(t *testing.T) {
		router, provider := newInstrumentedRouter(t)

		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/drinks"))
		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodDelete, "/drinks/9"))

		output := scrape(t, provider)
		assert.Regexp(t, `http_test_http_requests_total\{[^}]*method="GET"[^}]*status_code="200"[^}]*\} 1`, output)
		assert.Regexp(t, `http_test_http_requests_total\{[^}]*method="DELETE"[^}]*status_code="404"[^}]*\} 1`, output)
		assert.Contains(t, output, "http_test_http_request_duration_seconds_bucket")
	})

	t.Run("unmatched routes share one label", func(t *testing.T) {
		router, provider := newInstrumentedRouter(t)

		serve(router, http.MethodGet, "/wp-admin")
		serve(router, http.MethodGet, "/.env")

		output := scrape(t, provider)
		assert.Regexp(t, `http_test_http_requests_total\{[^}]*path="unmatched"[^}]*\} 2`, output)
		assert.NotContains(t, output, `path="/wp-admin"`)
	})

	t.Run("in flight returns to zero", func(t *testing.T) {
		router, provider := newInstrumentedRouter(t)

		serve(router, http.MethodGet, "/drinks")

		assert.Regexp(t, `http_test_http_requests_in_flight(_requests)?(\{[^}]*\})? 0`, scrape(t, provider))
	})
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/drinks/:id", routeLabel("/drinks/:id"))
	assert.Equal(t, "/", routeLabel("/"))
	assert.Equal(t, unmatchedRoute, routeLabel(""))
}
