package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"customerapp/internal/adapter/telemetry"
	"customerapp/pkg/config"
)

func newRouter(middlewares ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middlewares...)
	router.GET("/customers", func(c *gin.Context) {
		c.String(http.StatusOK, GetCurrent(c).RequestID())
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return router
}

func TestHTTPSMiddleware(t *testing.T) {
	router := newRouter(NewHTTPSEnforcer(true, zap.NewNop()).HTTPSMiddleware())

	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/customers?x=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://api.example.com/customers?x=1", w.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "http://api.example.com/customers", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "https://api.example.com/customers", nil)
	req.TLS = &tls.ConnectionState{}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "http://localhost:8080/customers", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPSMiddleware_Disabled(t *testing.T) {
	enforcer := NewHTTPSEnforcer(false, zap.NewNop())
	router := newRouter(enforcer.HTTPSMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://api.example.com/customers", nil))

	assert.False(t, enforcer.IsEnabled())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentMiddleware_RequestID(t *testing.T) {
	router := newRouter(CurrentMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers", nil))

	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	router := newRouter(CORSMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/customers", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	router := newRouter(RecoveryMiddleware(config.NewNopLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","errors":[{"field":"server","message":"unexpected error"}]}}`, w.Body.String())
}

func TestMetricsMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := telemetry.NewAppMetrics(registry)
	router := newRouter(MetricsMiddleware(metrics), LoggingMiddleware(config.NewNopLogger()))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers", nil))
	}

	count, err := testutil.GatherAndCount(registry, "http_requests_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
