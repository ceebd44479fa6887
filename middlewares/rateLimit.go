package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/PrayNoel/initializers"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

var store = &limiterStore{limiters: make(map[string]*rate.Limiter)}

func (s *limiterStore) get(key string, r rate.Limit, b int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(r, b)
		s.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware allows b requests in a burst and r per second after
// that, per scope and key. Scopes keep differently limited route groups from
// sharing a bucket.
func RateLimitMiddleware(scope string, r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	retryAfter := "1"
	if r > 0 {
		retryAfter = strconv.Itoa(int(math.Ceil(1 / float64(r))))
	}

	return func(c *gin.Context) {
		key := scope + ":" + keyFunc(c)

		if !store.get(key, r, b).Allow() {
			initializers.Log.WithFields(logrus.Fields{
				"scope": scope,
				"path":  c.FullPath(),
			}).Debug("rate limited")
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down."})
			return
		}

		c.Next()
	}
}
