package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's limiter survives without requests.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore keeps one token bucket per client and drops buckets that
// have been idle for longer than ttl. Sweeps run inline, at most once per ttl.
type limiterStore struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func newLimiterStore(rps float64, burst int, ttl time.Duration, now func() time.Time) *limiterStore {
	return &limiterStore{
		visitors:  make(map[string]*visitor),
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       ttl,
		now:       now,
		lastSweep: now(),
	}
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.ttl {
		s.sweep(now)
	}

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (s *limiterStore) sweep(now time.Time) {
	for key, v := range s.visitors {
		if now.Sub(v.lastSeen) >= s.ttl {
			delete(s.visitors, key)
		}
	}
	s.lastSweep = now
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimit throttles requests per client IP. Public menu pages are hit on
// every QR scan, so they get their own budget.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	return rateLimit(newLimiterStore(rps, burst, limiterIdleTTL, time.Now))
}

func rateLimit(store *limiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
