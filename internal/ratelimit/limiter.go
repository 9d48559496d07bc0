// Package ratelimit provides the per-key rate limiter used when fetching
// remote evidence (keyed by host) and by batch runs (keyed by tenant).
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// KeyLimiter rate-limits work per key. Limiters are created lazily per key.
type KeyLimiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewKeyLimiter creates a limiter with the given default rate per key
func NewKeyLimiter(perSecond float64, burst int) *KeyLimiter {
	if burst <= 0 {
		burst = 5
	}

	return &KeyLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(perSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the key's limiter grants a slot or ctx is done
func (l *KeyLimiter) Wait(ctx context.Context, key string) error {
	return l.limiter(key).Wait(ctx)
}

// Allow reports whether a slot is available for key without waiting
func (l *KeyLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// SetRate installs a custom rate for one key
func (l *KeyLimiter) SetRate(key string, perSecond float64, burst int) {
	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[key] = rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (l *KeyLimiter) limiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[key] = limiter
	return limiter
}
