package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/airfare-pricer/internal/logger"
)

// RequestLogger writes one structured line per request once the handler
// chain has finished.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000,
			"ip":         c.ClientIP(),
			"bytes":      c.Writer.Size(),
		}

		if route := c.FullPath(); route != "" && route != path {
			fields["route"] = route
		}
		if traceID := GetTraceID(c); traceID != "" {
			fields["trace_id"] = traceID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry := logger.WithFields(fields)

		switch {
		case status >= 500:
			entry.Error("server error")
		case status >= 400:
			entry.Warn("client error")
		default:
			entry.Info("request completed")
		}
	}
}
