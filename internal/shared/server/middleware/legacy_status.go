package middleware

import (
	"github.com/gin-gonic/gin"

	"docqa-backend/internal/shared/server/respond"
)

// LegacyStatus makes handled errors answer with HTTP 200 when enabled, for clients
// that only look at the payload shape.
func LegacyStatus(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled {
			c.Set(respond.LegacyStatusKey, true)
		}
		c.Next()
	}
}
