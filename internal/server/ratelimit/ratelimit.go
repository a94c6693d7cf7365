// Package ratelimit provides per-client token-bucket rate limiting.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket allows a burst of requests with tokens refilling at a steady
// rate.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, window time.Duration) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: float64(capacity) / window.Seconds(),
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) refillLocked() {
	now := time.Now()
	tb.tokens += now.Sub(tb.lastRefill).Seconds() * tb.refillRate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}
	tb.lastRefill = now
}

// take consumes a token when available and reports the bucket state.
func (tb *tokenBucket) take() (allowed bool, remaining int, retryAfter time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked()
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true, int(tb.tokens), 0
	}

	needed := 1.0 - tb.tokens
	return false, 0, time.Duration(needed / tb.refillRate * float64(time.Second))
}

// Info describes the rate-limit state after a decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter manages token buckets for multiple clients.
type Limiter struct {
	config     *Config
	buckets    map[string]*tokenBucket
	lastAccess map[string]time.Time
	mu         sync.Mutex
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewLimiter creates a rate limiter and starts its idle-bucket cleanup loop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		config:     config,
		buckets:    make(map[string]*tokenBucket),
		lastAccess: make(map[string]time.Time),
		stop:       make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Allow checks whether a request from clientID to the given endpoint is
// within limits.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	limit, window := l.config.limitFor(path, method)
	if limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + path + ":" + method

	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = newTokenBucket(limit, window)
		l.buckets[key] = bucket
	}
	l.lastAccess[key] = time.Now()
	l.mu.Unlock()

	allowed, remaining, retryAfter := bucket.take()
	return allowed, Info{
		Allowed:    allowed,
		Limit:      limit,
		Remaining:  remaining,
		RetryAfter: retryAfter,
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.removeIdle()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) removeIdle() {
	cutoff := time.Now().Add(-2 * l.config.CleanupInterval)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}
