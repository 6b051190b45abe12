package ratelimit

import (
	"math"
	"time"
)

// bucket is a continuous token bucket. Tokens accrue fractionally with
// elapsed time instead of a background timer, so accrual stays correct
// regardless of request gaps.
type bucket struct {
	tokens     float64
	lastRefill time.Time
	capacity   float64
	refillRate float64
}

func newBucket(capacity, refillRate float64, now time.Time) *bucket {
	return &bucket{
		tokens:     capacity,
		lastRefill: now,
		capacity:   capacity,
		refillRate: refillRate,
	}
}

// consume refills from elapsed time, then takes one token if a whole token
// is available. Tokens never exceed capacity and never go negative.
func (b *bucket) consume(now time.Time) bool {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}
