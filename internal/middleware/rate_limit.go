package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	pkgResponse "weather-agent/pkg/response"
)

// RateLimit throttles requests per client IP. Each client gets its own
// token bucket; buckets for idle clients expire from the LRU cache.
func (m Middleware) RateLimit() gin.HandlerFunc {
	if m.limiters == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := c.ClientIP()

		m.mu.Lock()
		limiter, ok := m.limiters.Get(key)
		if !ok {
			limiter = rate.NewLimiter(m.rate, m.burst)
			m.limiters.Add(key, limiter)
		}
		m.mu.Unlock()

		if !limiter.Allow() {
			m.l.Warnf(c.Request.Context(), "rate limit exceeded for %s", key)
			pkgResponse.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
