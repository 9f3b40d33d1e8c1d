package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rxbridge/website-backend/internal/config"
	"github.com/rxbridge/website-backend/internal/logging"
	"github.com/rxbridge/website-backend/internal/mailer"
	"github.com/rxbridge/website-backend/internal/ratelimit"
	"github.com/rxbridge/website-backend/internal/server/routes"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New creates a new server instance with all middleware and routes wired
func New(cfg *config.Config, m mailer.Mailer) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable gin's default logger entirely; requests go through our own
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()

	apiStore, quoteStore := newLimiterStores(cfg)

	routes.SetupGlobalMiddleware(router, cfg, apiStore)
	routes.Setup(router, cfg, routes.NewHandlers(cfg, m), quoteStore)

	return &Server{
		router: router,
		cfg:    cfg,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// newLimiterStores builds the general-API and quote-endpoint limiter stores.
// Default is per-process memory; REDIS_ADDR switches both to a shared
// fixed-window store so multiple instances see one quota.
func newLimiterStores(cfg *config.Config) (ratelimit.Store, ratelimit.Store) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return ratelimit.NewRedisStore(client, "api", cfg.APIRateLimit, cfg.APIRateWindow),
			ratelimit.NewRedisStore(client, "quote", cfg.QuoteRateLimit, cfg.QuoteRateWindow)
	}

	return ratelimit.NewMemoryStore(cfg.APIRateLimit, cfg.APIRateWindow),
		ratelimit.NewMemoryStore(cfg.QuoteRateLimit, cfg.QuoteRateWindow)
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	logging.GetGlobalLogger().Info("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
