package middleware

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"weather-agent/pkg/log"
)

const (
	// maxTrackedClients caps the limiter cache; oldest entries are
	// evicted first.
	maxTrackedClients = 1000

	// limiterTTL drops limiters for clients idle this long.
	limiterTTL = 5 * time.Minute
)

// Middleware carries cross-cutting HTTP concerns.
type Middleware struct {
	l log.Logger

	// mu guards limiter creation; the LRU itself is thread-safe but has
	// no atomic get-or-add, and two first requests from the same client
	// must not each get a fresh bucket.
	mu       *sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// New creates the middleware set. requestsPerMin bounds chat calls per
// client; <= 0 disables rate limiting.
func New(l log.Logger, requestsPerMin int) Middleware {
	m := Middleware{l: l}
	if requestsPerMin > 0 {
		m.mu = &sync.Mutex{}
		m.limiters = expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, limiterTTL)
		m.rate = rate.Limit(float64(requestsPerMin) / 60.0)
		m.burst = requestsPerMin/10 + 1
	}
	return m
}
