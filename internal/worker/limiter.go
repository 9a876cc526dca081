package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-user submission rate limiting
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerMinute float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerMinute / 60),
		defaultBurst: burst,
	}
}

// Wait waits for rate limit clearance for the given user
func (l *Limiter) Wait(ctx context.Context, userID string) error {
	return l.getLimiter(userID).Wait(ctx)
}

// Allow checks if a submission is allowed without waiting
func (l *Limiter) Allow(userID string) bool {
	return l.getLimiter(userID).Allow()
}

// getLimiter returns the rate limiter for a user
func (l *Limiter) getLimiter(userID string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[userID]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[userID]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[userID] = limiter

	return limiter
}

// SetUserRate sets a custom rate limit for a specific user
func (l *Limiter) SetUserRate(userID string, requestsPerMinute float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[userID] = rate.NewLimiter(rate.Limit(requestsPerMinute/60), burst)
}
