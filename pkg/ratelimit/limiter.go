package ratelimit

import (
	"sync"
	"time"

	"github.com/pennyspath/chat-backend/pkg/domain"
)

// Limiter owns the process-wide bucket map. Buckets are keyed by profile
// name plus client identifier so each endpoint class limits a client
// independently. Lookup-and-consume is serialized by the mutex; net/http
// handles requests in parallel.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow looks up or lazily creates the bucket for the identifier under the
// given profile and tries to consume one token.
func (l *Limiter) Allow(identifier string, profile domain.RateLimitProfile) domain.RateLimitResult {
	now := l.now()
	key := profile.Name + ":" + identifier

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(profile.Capacity, profile.RefillRate, now)
		l.buckets[key] = b
	}
	allowed := b.consume(now)
	remaining := int(b.tokens)
	l.mu.Unlock()

	result := domain.RateLimitResult{
		Success:   allowed,
		Limit:     int(profile.Capacity),
		Remaining: remaining,
		ResetTime: now.Add(profile.Window),
	}
	if !allowed {
		result.Error = "Rate limit exceeded"
	}
	return result
}

// Sweep removes buckets that have not refilled within maxAge and reports how
// many were dropped. Bounds memory for one-off client identifiers.
func (l *Limiter) Sweep(maxAge time.Duration) int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastRefill) > maxAge {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}
