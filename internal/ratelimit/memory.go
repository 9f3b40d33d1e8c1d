package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter is the per-identity state: a token bucket plus the time it
// was last touched, so idle entries can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore keeps one token bucket per client identity in process memory.
// Buckets hold `limit` tokens and refill over `window`, which gives the
// burst-then-block behavior wanted for form endpoints: the first `limit`
// requests in a window pass, the rest are rejected until tokens refill.
type MemoryStore struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     int
	window    time.Duration
	lastSweep time.Time
}

func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		clients:   make(map[string]*clientLimiter),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Allow records one request for the given key and decides whether it is
// within quota. Never returns an error; the signature matches Store.
func (s *MemoryStore) Allow(ctx context.Context, key string) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.sweepLocked(now)

	cl, ok := s.clients[key]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(s.limit)/s.window.Seconds()), s.limit),
		}
		s.clients[key] = cl
	}
	cl.lastSeen = now

	if cl.limiter.Allow() {
		return Decision{
			Allowed:   true,
			Remaining: int(cl.limiter.Tokens()),
		}, nil
	}

	// Peek at the delay until the next token without consuming it
	r := cl.limiter.Reserve()
	retryAfter := r.Delay()
	r.Cancel()

	return Decision{
		Allowed:    false,
		Remaining:  0,
		RetryAfter: retryAfter,
	}, nil
}

// sweepLocked drops entries idle for several windows. Runs at most once per
// window so the map cannot grow unbounded under a scanning client churn.
func (s *MemoryStore) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.window {
		return
	}
	s.lastSweep = now

	idleCutoff := now.Add(-3 * s.window)
	for key, cl := range s.clients {
		if cl.lastSeen.Before(idleCutoff) {
			delete(s.clients, key)
		}
	}
}
