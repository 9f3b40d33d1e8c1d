package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a rate limit check for one request
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Store tracks request counts per client identity. Implementations must be
// safe for concurrent use; the rest of the request pipeline is stateless.
// The store is injected into the middleware so tests can run against a
// fresh in-memory instance and deployments can swap in a shared backend.
type Store interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
