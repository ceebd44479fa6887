package middlewares

import (
	"strconv"
	"time"

	"github.com/PrayNoel/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency labelled by route template.
func Metrics(c *gin.Context) {
	start := time.Now()

	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	if path == "/metrics" {
		return
	}

	metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	metrics.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
}
