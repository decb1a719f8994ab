package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"motoshop-be/internal/auth"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Tier is one rate limit policy. Each identity gets a separate bucket per tier.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

var (
	// TierStrict guards admin mutations.
	TierStrict = Tier{Name: "strict", Limit: rate.Limit(2), Burst: 5}
	// TierGeneral covers admin reads and the wishlist.
	TierGeneral = Tier{Name: "general", Limit: rate.Limit(10), Burst: 20}
	// TierFrontend covers the public catalog, which the storefront polls heavily.
	TierFrontend = Tier{Name: "frontend", Limit: rate.Limit(20), Burst: 40}
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out token buckets keyed by caller, device or IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	idle     time.Duration
	now      func() time.Time
}

// NewRateLimiter forgets identities that have been idle for longer than idle.
func NewRateLimiter(idle time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		idle:     idle,
		now:      time.Now,
	}
}

func (l *RateLimiter) get(key string, tier Tier) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(tier.Limit, tier.Burst)}
		l.visitors[key] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup drops idle visitors and reports how many were removed.
func (l *RateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > l.idle {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (l *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// Limit rejects requests over the tier's budget with 429.
func (l *RateLimiter) Limit(tier Tier) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := identity(c) + ":" + tier.Name
		if !l.get(key, tier).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": http.StatusText(http.StatusTooManyRequests),
				"error":   true,
			})
			return
		}
		c.Next()
	}
}

// identity prefers the authenticated caller, then a client device id, then IP.
func identity(c *gin.Context) string {
	if caller, ok := auth.CallerFrom(c.Request.Context()); ok {
		return "caller:" + caller.ID
	}
	if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	return "ip:" + c.ClientIP()
}
