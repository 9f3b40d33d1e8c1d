package routes

import (
	"github.com/rxbridge/website-backend/internal/api/handlers"
	"github.com/rxbridge/website-backend/internal/config"
	"github.com/rxbridge/website-backend/internal/mailer"
)

// Handlers contains all the route handlers
type Handlers struct {
	Quote  *handlers.QuoteHandler
	Health *handlers.HealthHandler
}

// NewHandlers wires the handlers with their collaborators
func NewHandlers(cfg *config.Config, m mailer.Mailer) *Handlers {
	return &Handlers{
		Quote:  handlers.NewQuoteHandler(m, cfg),
		Health: handlers.NewHealthHandler(),
	}
}
