// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/HSouheill/itam_backend/models"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

type RateLimiter struct {
	ips            map[string]*rate.Limiter
	blockedIPs     map[string]time.Time
	mu             *sync.RWMutex
	defaultLimit   rate.Limit
	defaultBurst   int
	blockDuration  time.Duration
	endpointLimits map[string]endpointLimit
	skip           map[string]bool
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		ips:            make(map[string]*rate.Limiter),
		blockedIPs:     make(map[string]time.Time),
		mu:             &sync.RWMutex{},
		defaultLimit:   rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:   20,
		blockDuration:  5 * time.Minute,
		endpointLimits: make(map[string]endpointLimit),
		skip:           map[string]bool{"/health": true, "/metrics": true},
	}

	// Token issuance and checkout get their own, stricter buckets
	limiter.SetEndpointLimit("/api/v1/create-token", rate.Every(2*time.Second), 5)
	limiter.SetEndpointLimit("/api/v1/create-payment-intent", rate.Every(2*time.Second), 5)

	return limiter
}

// SetEndpointLimit overrides the bucket for a route template
func (r *RateLimiter) SetEndpointLimit(path string, limit rate.Limit, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpointLimits[path] = endpointLimit{limit: limit, burst: burst}
}

// StartCleanup drops expired blocks every interval until stop is closed
func (r *RateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				r.cleanupBlockedIPs(time.Now())
			}
		}
	}()
}

func (r *RateLimiter) cleanupBlockedIPs(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, blockUntil := range r.blockedIPs {
		if now.After(blockUntil) {
			delete(r.blockedIPs, key)
			delete(r.ips, key)
		}
	}
}

func tooManyRequests(c echo.Context, retryAfter time.Time) error {
	return c.JSON(http.StatusTooManyRequests, models.Response{
		Status:  http.StatusTooManyRequests,
		Message: "Too many requests",
		Data:    map[string]string{"retryAfter": retryAfter.Format(time.RFC3339)},
	})
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if r.skip[path] {
				return next(c)
			}

			r.mu.RLock()
			limit, burst := r.defaultLimit, r.defaultBurst
			if endpoint, exists := r.endpointLimits[path]; exists {
				limit, burst = endpoint.limit, endpoint.burst
			}
			r.mu.RUnlock()

			// one bucket per client and route template class
			key := c.RealIP()
			if limit != r.defaultLimit || burst != r.defaultBurst {
				key += "|" + path
			}

			r.mu.Lock()
			if blockUntil, blocked := r.blockedIPs[key]; blocked {
				if time.Now().Before(blockUntil) {
					r.mu.Unlock()
					return tooManyRequests(c, blockUntil)
				}
				delete(r.blockedIPs, key)
				delete(r.ips, key)
			}
			r.mu.Unlock()

			if !r.getLimiter(key, limit, burst).Allow() {
				blockUntil := time.Now().Add(r.blockDuration)
				r.mu.Lock()
				r.blockedIPs[key] = blockUntil
				r.mu.Unlock()
				return tooManyRequests(c, blockUntil)
			}

			return next(c)
		}
	}
}

func (r *RateLimiter) getLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	limiter, exists := r.ips[key]
	if !exists {
		limiter = rate.NewLimiter(limit, burst)
		r.ips[key] = limiter
	}
	return limiter
}
