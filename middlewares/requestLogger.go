package middlewares

import (
	"time"

	"github.com/PrayNoel/initializers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, reusing the client's when
// supplied, and logs the outcome once the handler chain returns.
func RequestLogger(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set("requestId", requestID)
	c.Header(RequestIDHeader, requestID)

	c.Next()

	entry := initializers.Log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency_ms": time.Since(start).Milliseconds(),
		"client_ip":  c.ClientIP(),
	})

	switch {
	case c.Writer.Status() >= 500:
		entry.Error("request failed")
	case c.Writer.Status() >= 400:
		entry.Warn("request rejected")
	default:
		entry.Info("request handled")
	}
}
