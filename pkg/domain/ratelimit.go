package domain

import "time"

// RateLimitProfile names a capacity/refill pairing for one endpoint class.
// RefillRate is tokens per second; Window is the reset horizon advertised to
// clients in the X-RateLimit-Reset header.
type RateLimitProfile struct {
	Name       string
	Capacity   float64
	RefillRate float64
	Window     time.Duration
}

var (
	ChatRateLimit    = RateLimitProfile{Name: "chat", Capacity: 20, RefillRate: 1.0 / 30, Window: 10 * time.Minute}
	VoiceRateLimit   = RateLimitProfile{Name: "voice", Capacity: 10, RefillRate: 1.0 / 60, Window: 5 * time.Minute}
	FilesRateLimit   = RateLimitProfile{Name: "files", Capacity: 5, RefillRate: 1.0 / 300, Window: 30 * time.Minute}
	GeneralRateLimit = RateLimitProfile{Name: "general", Capacity: 50, RefillRate: 1.0 / 60, Window: time.Hour}
)

// RateLimitResult is a value type, never mutated after construction.
type RateLimitResult struct {
	Success   bool
	Limit     int
	Remaining int
	ResetTime time.Time
	Error     string
}
