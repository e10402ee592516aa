package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	Allow(key string) bool
}

// InMemoryLimiter keeps one token bucket per key in memory
type InMemoryLimiter struct {
	buckets map[string]*rate.Limiter
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(1, 10*time.Minute, 1) -> one event per key every 10 minutes
func NewInMemoryLimiter(events int, per time.Duration, burst int) *InMemoryLimiter {
	return &InMemoryLimiter{
		buckets: make(map[string]*rate.Limiter),
		r:       rate.Every(per / time.Duration(events)),
		b:       burst,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

// Allow reports whether an event for key may happen now
func (l *InMemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.buckets[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.buckets[key] = limiter
	}

	return limiter.Allow()
}
