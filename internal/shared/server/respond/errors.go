package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/shared/telemetry"
)

// LegacyStatusKey marks a request whose handled errors must be returned with HTTP 200.
const LegacyStatusKey = "legacyStatus"

// ErrorResponse is the error payload. Error carries the human readable message
// clients have always read; Code is a stable machine identifier.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error sends a standardized error response. In legacy mode handled errors
// (status < 500) are downgraded to 200 and only the payload tells them apart.
func Error(c *gin.Context, status int, code, message string) {
	sent := status
	if status < http.StatusInternalServerError && c.GetBool(LegacyStatusKey) {
		sent = http.StatusOK
	}

	fields := map[string]any{
		"status":     status,
		"sent":       sent,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if sessionID := c.GetString("sessionId"); sessionID != "" {
		fields["session_id"] = sessionID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(sent, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
