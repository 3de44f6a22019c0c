package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/adapter/metrics"
)

// PrometheusMiddleware records request counts and latency by route template,
// so /api/tasks/:id stays one series.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
