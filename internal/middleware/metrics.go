package middleware

import (
	"time"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/megamounds/sitetrack-api/internal/metrics"
)

// Metrics observes the duration of every request that reaches it.
func Metrics() drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequestDuration(c.Request.Method, c.Request.URL.Path, time.Since(start))
	}
}
