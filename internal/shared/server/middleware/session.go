package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionIDKey = "sessionId"

	// SessionHeader carries the client's document session handle.
	SessionHeader = "X-Session-Id"
	// DefaultSessionID is used when a request names no session, giving all such
	// clients one shared document slot.
	DefaultSessionID = "default"

	maxSessionIDLen = 128
)

// Session resolves the document session handle for the request and stores it in context.
// When disabled the header is ignored and every request uses DefaultSessionID.
func Session(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if enabled {
			id = strings.TrimSpace(c.GetHeader(SessionHeader))
		}
		if id == "" {
			id = DefaultSessionID
		}
		if len(id) > maxSessionIDLen {
			id = id[:maxSessionIDLen]
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session handle set by the Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return DefaultSessionID
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok && id != "" {
		return id
	}
	return DefaultSessionID
}
