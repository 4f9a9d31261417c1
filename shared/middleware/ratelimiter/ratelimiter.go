package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// entry is one identity's token bucket plus the timer that forgets it.
type entry struct {
	limiter *rate.Limiter
	timer   *time.Timer
}

// UserRateLimiter keeps a token bucket per identity. Buckets untouched for
// expirationTime are dropped, so a returning identity starts full again.
type UserRateLimiter struct {
	limiters       map[string]*entry
	mu             sync.Mutex
	rate           rate.Limit
	burst          int
	expirationTime time.Duration
}

// NewUserRateLimiter allows perSecond events on average with bursts up to burst.
func NewUserRateLimiter(perSecond float64, burst int, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters:       make(map[string]*entry),
		rate:           rate.Limit(perSecond),
		burst:          burst,
		expirationTime: expirationTime,
	}
}

func (url *UserRateLimiter) getLimiter(identity string) *rate.Limiter {
	url.mu.Lock()
	defer url.mu.Unlock()

	e, exists := url.limiters[identity]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(url.rate, url.burst)}
		url.limiters[identity] = e
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(url.expirationTime, func() { url.forget(identity, e) })
	return e.limiter
}

func (url *UserRateLimiter) forget(identity string, e *entry) {
	url.mu.Lock()
	defer url.mu.Unlock()
	// a newer entry may have replaced this one
	if url.limiters[identity] == e {
		delete(url.limiters, identity)
	}
}

// Allow reports whether identity may act now and consumes a token if so.
func (url *UserRateLimiter) Allow(identity string) bool {
	return url.getLimiter(identity).Allow()
}

// Len is the number of identities currently tracked.
func (url *UserRateLimiter) Len() int {
	url.mu.Lock()
	defer url.mu.Unlock()
	return len(url.limiters)
}

// Stop cleans up all timers
func (url *UserRateLimiter) Stop() {
	url.mu.Lock()
	defer url.mu.Unlock()

	for _, e := range url.limiters {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
}
