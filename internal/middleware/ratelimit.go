package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"golang.org/x/time/rate"
)

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client key.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	r        rate.Limit
	burst    int
	ttl      time.Duration
	stop     chan struct{}
	once     sync.Once
}

func NewRateLimiter(r rate.Limit, burst int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		r:        r,
		burst:    burst,
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, ok := rl.visitors[key]
	if ok {
		v.lastSeen = time.Now()
		return v.lim
	}
	lim := rate.NewLimiter(rl.r, rl.burst)
	rl.visitors[key] = &visitor{lim: lim, lastSeen: time.Now()}
	return lim
}

// Sweep evicts idle visitors every interval until Stop is called.
func (rl *RateLimiter) Sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for k, v := range rl.visitors {
				if now.Sub(v.lastSeen) > rl.ttl {
					delete(rl.visitors, k)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Handler limits requests per client IP and route.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		if !rl.limiter(c.ClientIP() + "|" + route).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse("Too many requests, please slow down"))
			return
		}
		c.Next()
	}
}
