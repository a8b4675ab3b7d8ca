package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/broncospizza/orders-api/internal/pkg/metrics"
)

func Test_metricsMiddleware(t *testing.T) {
	metrics.HTTPRequestCount.Reset()
	metrics.HTTPRequestDuration.Reset()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(metricsMiddleware())
	router.GET("/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/123", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	// The route pattern, not the concrete id, must end up in the label.
	expectedCount := `
		# HELP http_total_requests Total requests to the HTTP API
		# TYPE http_total_requests counter
		http_total_requests{code="200",method="GET",path="/:id"} 1
	`
	err := testutil.CollectAndCompare(metrics.HTTPRequestCount, bytes.NewBufferString(expectedCount), "http_total_requests")
	assert.NoError(t, err)
}

func Test_metricsMiddleware_unmatchedRoute(t *testing.T) {
	metrics.HTTPRequestCount.Reset()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(metricsMiddleware())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/no/such/route", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)

	expectedCount := `
		# HELP http_total_requests Total requests to the HTTP API
		# TYPE http_total_requests counter
		http_total_requests{code="404",method="GET",path="unmatched"} 1
	`
	err := testutil.CollectAndCompare(metrics.HTTPRequestCount, bytes.NewBufferString(expectedCount), "http_total_requests")
	assert.NoError(t, err)
}
