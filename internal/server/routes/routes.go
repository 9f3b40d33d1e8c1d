package routes

import (
	"github.com/rxbridge/website-backend/internal/api/middleware"
	"github.com/rxbridge/website-backend/internal/config"
	"github.com/rxbridge/website-backend/internal/logging"
	"github.com/rxbridge/website-backend/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, cfg *config.Config, h *Handlers, quoteStore ratelimit.Store) {
	logger := logging.GetGlobalLogger()

	// Health probe (exempt from rate limiting)
	SetupHealthRoutes(router, h.Health)

	// Create base API v1 group
	v1 := router.Group("/api/v1")

	// Quote form routes (public)
	SetupQuoteRoutes(v1, cfg, h.Quote, quoteStore)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes.
// The general limiter sits last in the chain and skips health and static
// asset paths; the stricter per-route limiter for the quote endpoint is
// attached in SetupQuoteRoutes.
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, apiStore ratelimit.Store) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.LogRequests))
	router.Use(middleware.CORS(cfg.Environment, cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Store: apiStore,
		Limit: cfg.APIRateLimit,
		ExemptPrefixes: []string{
			"/health",
			"/static/",
			"/assets/",
			"/favicon.ico",
		},
	}))
}
