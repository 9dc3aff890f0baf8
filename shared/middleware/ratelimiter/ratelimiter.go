// Package ratelimiter keeps one token bucket per identity (user id, IP or a
// fixed key) and forgets identities that stay idle.
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter manages rate limiting for multiple identities.
type UserRateLimiter struct {
	mu             sync.Mutex
	limiters       map[string]*entry
	limit          rate.Limit
	burst          int
	expirationTime time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter refilling rps tokens per second up to burst.
// Identities unseen for expirationTime are dropped by a background sweep.
func New(rps float64, burst int, expirationTime time.Duration) *UserRateLimiter {
	url := &UserRateLimiter{
		limiters:       make(map[string]*entry),
		limit:          rate.Limit(rps),
		burst:          burst,
		expirationTime: expirationTime,
		stop:           make(chan struct{}),
	}
	go url.sweep()
	return url
}

func (url *UserRateLimiter) sweep() {
	ticker := time.NewTicker(url.expirationTime)
	defer ticker.Stop()
	for {
		select {
		case <-url.stop:
			return
		case now := <-ticker.C:
			url.evictIdle(now)
		}
	}
}

func (url *UserRateLimiter) evictIdle(now time.Time) {
	url.mu.Lock()
	defer url.mu.Unlock()
	for id, e := range url.limiters {
		if now.Sub(e.lastSeen) >= url.expirationTime {
			delete(url.limiters, id)
		}
	}
}

// Allow checks if a request should be allowed for a given identity.
func (url *UserRateLimiter) Allow(identity string) bool {
	url.mu.Lock()
	e, ok := url.limiters[identity]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(url.limit, url.burst)}
		url.limiters[identity] = e
	}
	e.lastSeen = time.Now()
	url.mu.Unlock()

	return e.limiter.Allow()
}

// Len is the number of tracked identities.
func (url *UserRateLimiter) Len() int {
	url.mu.Lock()
	defer url.mu.Unlock()
	return len(url.limiters)
}

// Stop ends the background sweep. Safe to call more than once.
func (url *UserRateLimiter) Stop() {
	url.stopOnce.Do(func() { close(url.stop) })
}
