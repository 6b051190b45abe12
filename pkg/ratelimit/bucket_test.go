package ratelimit

import (
	"testing"
	"time"
)

func TestBucketDrainAndRefill(t *testing.T) {
	start := time.Now()
	b := newBucket(10, 1, start)

	for i := 0; i < 10; i++ {
		if !b.consume(start) {
			t.Fatalf("consume %d: expected success", i)
		}
	}
	if b.consume(start) {
		t.Fatal("expected denial once drained")
	}
	if b.tokens < 0 {
		t.Errorf("tokens went negative: %v", b.tokens)
	}

	later := start.Add(3 * time.Second)
	for i := 0; i < 3; i++ {
		if !b.consume(later) {
			t.Fatalf("consume %d after refill: expected success", i)
		}
	}
	if b.consume(later) {
		t.Fatal("expected denial after refilled tokens were spent")
	}
}

func TestBucketNeverExceedsCapacity(t *testing.T) {
	start := time.Now()
	b := newBucket(5, 1, start)

	b.consume(start.Add(time.Hour))
	if b.tokens > b.capacity {
		t.Errorf("tokens %v exceed capacity %v", b.tokens, b.capacity)
	}
}

func TestBucketSingleShotWithoutRefill(t *testing.T) {
	start := time.Now()
	b := newBucket(1, 0, start)

	if !b.consume(start) {
		t.Fatal("expected the single token to be consumable")
	}
	for _, gap := range []time.Duration{0, time.Second, time.Hour} {
		if b.consume(start.Add(gap)) {
			t.Errorf("expected denial after %v with zero refill rate", gap)
		}
	}
}

func TestBucketFractionalAccrual(t *testing.T) {
	start := time.Now()
	b := newBucket(2, 0.5, start)

	b.consume(start)
	b.consume(start)

	// Half a token accrued; not enough for a whole one.
	if b.consume(start.Add(time.Second)) {
		t.Fatal("expected denial with only a fractional token")
	}
	if !b.consume(start.Add(3 * time.Second)) {
		t.Fatal("expected success once a whole token accrued")
	}
}
