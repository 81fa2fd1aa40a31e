package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiters tracks one token bucket per client. Keyed by the
// authenticated user when available, falling back to client IP.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (cl *clientLimiters) get(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	limiter, ok := cl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(cl.limit, cl.burst)
		cl.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware throttles write traffic per client
func RateLimitMiddleware(limit float64, burst int) gin.HandlerFunc {
	cl := &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(limit),
		burst:    burst,
	}

	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, exists := c.Get("userID"); exists {
			key = userID.(string)
		}

		if !cl.get(key).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
