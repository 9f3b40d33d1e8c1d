package routes

import (
	"github.com/rxbridge/website-backend/internal/api/handlers"
	"github.com/rxbridge/website-backend/internal/api/middleware"
	"github.com/rxbridge/website-backend/internal/config"
	"github.com/rxbridge/website-backend/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// SetupQuoteRoutes configures the quote form routes
func SetupQuoteRoutes(router *gin.RouterGroup, cfg *config.Config, quote *handlers.QuoteHandler, store ratelimit.Store) {
	public := router.Group("/quote")
	{
		// Public endpoint with a strict per-route limit. The limiter counts
		// every attempt, failed or not, so retrying a rejected payload
		// cannot stretch the quota.
		public.POST("",
			middleware.RateLimitMiddleware(middleware.RateLimitConfig{
				Store: store,
				Limit: cfg.QuoteRateLimit,
			}),
			quote.Submit,
		)
	}
}
