package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/telemetry"
)

var contextLogFields = map[string]string{
	sessionIDKey:       "session_id",
	"documentFormat":   "document_format",
	"documentChecksum": "document_checksum",
}

// Logging emits a structured log and a request metric per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		fields := map[string]any{
			"request_id":  reqID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		// Only set when a handler produced them.
		for key, field := range contextLogFields {
			if v, ok := c.Get(key); ok {
				fields[field] = v
			}
		}

		metrics.ObserveRequest(c.Request.Method, c.FullPath(), status)
		telemetry.Info("request.complete", fields)
	}
}
