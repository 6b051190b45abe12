package ratelimit

import (
	"testing"
	"time"

	"github.com/pennyspath/chat-backend/pkg/domain"
)

var testProfile = domain.RateLimitProfile{Name: "test", Capacity: 5, RefillRate: 1, Window: time.Minute}

func newTestLimiter(start time.Time) (*Limiter, *time.Time) {
	now := start
	l := NewLimiter()
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiterBurstThenDenial(t *testing.T) {
	l, now := newTestLimiter(time.Now())

	for i := 0; i < int(testProfile.Capacity); i++ {
		result := l.Allow("client-a", testProfile)
		if !result.Success {
			t.Fatalf("request %d: expected success, got denial", i)
		}
		if result.Limit != 5 {
			t.Errorf("request %d: limit = %d, want 5", i, result.Limit)
		}
	}

	result := l.Allow("client-a", testProfile)
	if result.Success {
		t.Fatal("expected denial after capacity+1 requests with no elapsed time")
	}
	if result.Error != "Rate limit exceeded" {
		t.Errorf("error = %q, want %q", result.Error, "Rate limit exceeded")
	}
	if result.ResetTime != now.Add(testProfile.Window) {
		t.Errorf("resetTime = %v, want %v", result.ResetTime, now.Add(testProfile.Window))
	}
}

func TestLimiterRefillAllowsOneMore(t *testing.T) {
	l, now := newTestLimiter(time.Now())

	for i := 0; i < int(testProfile.Capacity)+1; i++ {
		l.Allow("client-a", testProfile)
	}

	// Exactly 1/refillRate seconds later one token is back.
	*now = now.Add(time.Second)
	if !l.Allow("client-a", testProfile).Success {
		t.Fatal("expected one success after waiting 1/refillRate seconds")
	}
	if l.Allow("client-a", testProfile).Success {
		t.Fatal("expected denial after the refilled token was spent")
	}
}

func TestLimiterIsolatesIdentifiersAndProfiles(t *testing.T) {
	l, _ := newTestLimiter(time.Now())

	for i := 0; i < int(testProfile.Capacity)+1; i++ {
		l.Allow("client-a", testProfile)
	}

	if !l.Allow("client-b", testProfile).Success {
		t.Error("a drained bucket for one client must not affect another")
	}

	other := domain.RateLimitProfile{Name: "other", Capacity: 1, RefillRate: 0, Window: time.Minute}
	if !l.Allow("client-a", other).Success {
		t.Error("profiles must keep separate buckets for the same client")
	}
}

func TestLimiterRemainingCounts(t *testing.T) {
	l, _ := newTestLimiter(time.Now())

	result := l.Allow("client-a", testProfile)
	if result.Remaining != 4 {
		t.Errorf("remaining = %d, want 4", result.Remaining)
	}
}

func TestLimiterSweep(t *testing.T) {
	l, now := newTestLimiter(time.Now())

	l.Allow("client-a", testProfile)
	l.Allow("client-b", testProfile)

	*now = now.Add(25 * time.Hour)
	if removed := l.Sweep(24 * time.Hour); removed != 2 {
		t.Errorf("swept %d buckets, want 2", removed)
	}

	// A fresh bucket after the sweep starts at full capacity again.
	result := l.Allow("client-a", testProfile)
	if result.Remaining != int(testProfile.Capacity)-1 {
		t.Errorf("remaining = %d, want %d", result.Remaining, int(testProfile.Capacity)-1)
	}

	l.Allow("client-a", testProfile)
	if removed := l.Sweep(24 * time.Hour); removed != 0 {
		t.Errorf("swept %d fresh buckets, want 0", removed)
	}
}
