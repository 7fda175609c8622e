package httpapi

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Per-client token bucket rate limiting.
//
// RateLimitInfo{WindowSeconds: 60, MaxRequests: 600, Burst: 120} refills
// 600/60 = 10 tokens per second and lets a client spend up to 120 at once.
// Clients are keyed by remote IP (after chi's RealIP middleware), since the
// API has no notion of users.

// DefaultRateLimitConfig is applied when a Server is built with NewServer
var DefaultRateLimitConfig = RateLimitInfo{
	WindowSeconds: 60,
	MaxRequests:   600,
	Burst:         120,
}

// bucketIdleTTL is how long an unused bucket is kept before the sweep drops it
const bucketIdleTTL = time.Hour

// TokenBucket implements a token bucket rate limiter
type TokenBucket struct {
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a new token bucket with given capacity and refill rate
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		tokens:     float64(capacity),
		capacity:   float64(capacity),
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow checks if a token is available and consumes it if so
// Returns (allowed bool, tokensRemaining int, nextTokenTime time.Time, fullResetTime time.Time)
// - nextTokenTime: when the next token will be available (use for Retry-After)
// - fullResetTime: when the bucket will be completely full (use for X-RateLimit-Reset)
func (tb *TokenBucket) Allow() (bool, int, time.Time, time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now

	tokensNeeded := tb.capacity - tb.tokens
	fullResetTime := now.Add(time.Duration(tokensNeeded / tb.refillRate * float64(time.Second)))

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true, int(tb.tokens), now, fullResetTime
	}

	secondsUntilNext := (1.0 - tb.tokens) / tb.refillRate
	nextTokenTime := now.Add(time.Duration(secondsUntilNext * float64(time.Second)))

	return false, 0, nextTokenTime, fullResetTime
}

// idleSince reports whether the bucket has not been touched since cutoff
func (tb *TokenBucket) idleSince(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastRefill.Before(cutoff)
}

// RateLimiter manages per-client token buckets
type RateLimiter struct {
	buckets   map[string]*TokenBucket
	config    RateLimitInfo
	lastSweep time.Time
	mu        sync.Mutex
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitInfo) *RateLimiter {
	return &RateLimiter{
		buckets:   make(map[string]*TokenBucket),
		config:    config,
		lastSweep: time.Now(),
	}
}

// getBucket retrieves or creates a token bucket for the given client.
// Idle buckets are swept inline at most once per TTL so no background
// goroutine outlives the limiter.
func (rl *RateLimiter) getBucket(key string) *TokenBucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now := time.Now(); now.Sub(rl.lastSweep) > bucketIdleTTL {
		cutoff := now.Add(-bucketIdleTTL)
		for k, b := range rl.buckets {
			if b.idleSince(cutoff) {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	bucket, ok := rl.buckets[key]
	if !ok {
		refillRate := float64(rl.config.MaxRequests) / float64(rl.config.WindowSeconds)
		bucket = NewTokenBucket(rl.config.Burst, refillRate)
		rl.buckets[key] = bucket
	}
	return bucket
}

// Allow checks if the client is allowed to make a request
func (rl *RateLimiter) Allow(key string) (bool, int, time.Time, time.Time) {
	return rl.getBucket(key).Allow()
}

// clientKey identifies the caller by IP, falling back to the raw address
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware returns a middleware that enforces rate limiting per client IP.
// Each middleware instance owns its limiter, so route groups can carry different limits.
func RateLimitMiddleware(config RateLimitInfo) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, remaining, nextTokenTime, fullResetTime := limiter.Allow(key)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.MaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(fullResetTime.Unix(), 10))
			w.Header().Set("X-RateLimit-Burst", strconv.Itoa(config.Burst))

			if !allowed {
				retryAfter := int(time.Until(nextTokenTime).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				log.Ctx(r.Context()).Warn().
					Str("client", key).
					Str("path", r.URL.Path).
					Int("retryAfter", retryAfter).
					Msg("Rate limit exceeded")

				writeError(w, r, http.StatusTooManyRequests,
					"Rate limit exceeded. Please retry after "+strconv.Itoa(retryAfter)+" seconds.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
