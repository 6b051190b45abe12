package workers

import (
	"context"
	"log/slog"
	"time"
)

type Sweeper interface {
	Sweep(maxAge time.Duration) int
}

type bucketSweeper struct {
	sweeper  Sweeper
	interval time.Duration
	maxAge   time.Duration
}

// NewBucketSweeper periodically evicts rate-limit buckets idle for longer
// than maxAge, bounding memory for one-off clients.
func NewBucketSweeper(sweeper Sweeper, interval, maxAge time.Duration) (*bucketSweeper, error) {
	return &bucketSweeper{
		sweeper:  sweeper,
		interval: interval,
		maxAge:   maxAge,
	}, nil
}

func (s *bucketSweeper) Name() string { return "bucket_sweeper" }

func (s *bucketSweeper) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", s.Name(), "interval", s.interval)
	defer slog.Info("Worker stopped", "name", s.Name())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := s.sweeper.Sweep(s.maxAge); removed > 0 {
				slog.Info("Swept stale rate-limit buckets", "removed", removed)
			}
		}
	}
}
