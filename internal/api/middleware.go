package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/broncospizza/orders-api/internal/pkg/metrics"
)

// metricsMiddleware records request count and duration. gin's FullPath
// keeps the route pattern (/:id) so ids don't explode label cardinality;
// unmatched routes are lumped under one label.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		duration := time.Since(start).Seconds()

		metrics.HTTPRequestCount.WithLabelValues(c.Request.Method, path, fmt.Sprint(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}
