package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rxbridge/website-backend/internal/api/dto/common"
	"github.com/rxbridge/website-backend/internal/logging"
	"github.com/rxbridge/website-backend/internal/ratelimit"
	"github.com/rxbridge/website-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig defines configuration for a rate limiting middleware
type RateLimitConfig struct {
	// Store tracks per-client request counts
	Store ratelimit.Store
	// Limit is the number of requests allowed per window, reported in headers
	Limit int
	// ExemptPrefixes lists path prefixes this limiter never counts
	// (static assets, health probes)
	ExemptPrefixes []string
}

// RateLimitMiddleware creates a rate limiting middleware keyed by client IP.
// The check runs before any validation work, and every request counts
// against the quota whether or not it later succeeds.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range config.ExemptPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		key := utils.GetRealIP(c)

		decision, err := config.Store.Allow(c.Request.Context(), key)
		if err != nil {
			// A broken limiter backend must not take the site down; log and
			// let the request through
			logging.GetGlobalLogger().Warn("rate limiter store error for %s: %v", key, err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Header("X-RateLimit-Reset", time.Now().Add(decision.RetryAfter).Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewRateLimitResponse(retryAfter))
			return
		}

		c.Next()
	}
}
