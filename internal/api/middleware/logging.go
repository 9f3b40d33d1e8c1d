package middleware

import (
	"time"

	"github.com/rxbridge/website-backend/internal/logging"
	"github.com/rxbridge/website-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request through the rotating file logger.
// Disabled entirely when enabled is false so the hot path pays nothing.
func RequestLogger(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)

		logging.GetGlobalLogger().LogHTTPRequest(
			method,
			path,
			utils.GetRealIP(c),
			c.Writer.Status(),
			c.Writer.Size(),
			latency.String(),
		)
	}
}
