package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/club_finance_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that are not recorded.
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RequestMetrics records request counts and latency per matched route.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status()/100) + "xx"
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
