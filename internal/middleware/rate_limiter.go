package middleware

import (
	"net/http"
	"sync"
	"time"

	"boletapos/internal/apierror"

	"github.com/gin-gonic/gin"
)

// slidingWindow is an in-memory per-key sliding window counter. Good enough
// for a single-instance deployment; a multi-instance setup would move this
// to redis.
type slidingWindow struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	limit   int
	window  time.Duration
	lastGC  time.Time
	gcEvery time.Duration
}

func newSlidingWindow(limit int, window time.Duration) *slidingWindow {
	return &slidingWindow{
		hits:    make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		lastGC:  time.Now(),
		gcEvery: 5 * time.Minute,
	}
}

func (s *slidingWindow) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-s.window)

	if now.Sub(s.lastGC) > s.gcEvery {
		for k, ts := range s.hits {
			if len(ts) == 0 || ts[len(ts)-1].Before(cutoff) {
				delete(s.hits, k)
			}
		}
		s.lastGC = now
	}

	ts := s.hits[key]
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= s.limit {
		s.hits[key] = kept
		return false
	}
	s.hits[key] = append(kept, now)
	return true
}

// RateLimiter limits each client IP to `limit` requests per `window`.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	sw := newSlidingWindow(limit, window)
	return func(c *gin.Context) {
		if !sw.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("demasiadas solicitudes, intente mas tarde"))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter applies a tighter window to the login endpoint to slow
// down credential stuffing.
func LoginRateLimiter() gin.HandlerFunc {
	return RateLimiter(10, time.Minute)
}
