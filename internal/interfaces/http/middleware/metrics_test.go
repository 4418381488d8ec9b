package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campusmarket/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newMetricsRouter(m *telemetry.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(HTTPMetrics(m, "/metrics"))
	router.GET("/product/:id", func(c *gin.Context) { c.String(http.StatusOK, "listing") })
	router.POST("/product/:id", func(c *gin.Context) { c.Status(http.StatusForbidden) })
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestHTTPMetrics_RecordsRoutePattern(t *testing.T) {
	m := telemetry.NewMetrics()
	router := newMetricsRouter(m)

	for _, id := range []string{"a", "b", "c"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/product/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/product/:id", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
}

func TestHTTPMetrics_StatusAndSizes(t *testing.T) {
	m := telemetry.NewMetrics()
	router := newMetricsRouter(m)

	req := httptest.NewRequest(http.MethodPost, "/product/a", strings.NewReader(`{"content":"hi"}`))
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/product/:id", "403")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestSize))
}

func TestHTTPMetrics_UnmatchedAndSkipped(t *testing.T) {
	m := telemetry.NewMetrics()
	router := newMetricsRouter(m)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
}

func TestHTTPMetrics_NilMetrics(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
