package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sbnm007/traffic-management-system/internal/core/ports"
	"github.com/sbnm007/traffic-management-system/internal/platform/metrics"
)

const defaultReleaseInterval = 15 * time.Minute

// ReleaseService periodically gives back segment capacity held by bookings
// whose trip window has elapsed. Every run recomputes from current state, so
// a failed or overlapping run is safe to retry on the next tick.
type ReleaseService struct {
	segmentRepo ports.SegmentRepository
	interval    time.Duration
}

func NewReleaseService(segmentRepo ports.SegmentRepository, interval time.Duration) *ReleaseService {
	if interval <= 0 {
		interval = defaultReleaseInterval
	}

	return &ReleaseService{
		segmentRepo: segmentRepo,
		interval:    interval,
	}
}

// ReleaseExpired releases capacity for bookings that ended strictly before
// now minus thresholdLag. The lag matches the scheduling interval and acts as
// a grace window: a booking is not released at the instant of expiry. Returns
// the number of segments whose load changed; finding nothing to release is
// not an error.
func (s *ReleaseService) ReleaseExpired(ctx context.Context, now time.Time, thresholdLag time.Duration) (int, error) {
	threshold := now.Add(-thresholdLag)

	released, err := s.segmentRepo.ReleaseExpired(ctx, threshold)
	if err != nil {
		metrics.ReleaseRunsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("release expired bookings: %w", err)
	}

	metrics.ReleaseRunsTotal.WithLabelValues("ok").Inc()
	metrics.SegmentsReleasedTotal.Add(float64(released))

	return released, nil
}

// Run invokes ReleaseExpired on a fixed interval until ctx is cancelled.
func (s *ReleaseService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("Release worker started: checking expired bookings every %s...", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Release worker stopped.")
			return
		case <-ticker.C:
			count, err := s.ReleaseExpired(ctx, time.Now(), s.interval)
			if err != nil {
				log.Printf("Release run failed, will retry next tick: %v", err)
				continue
			}

			if count > 0 {
				log.Printf("Released capacity on %d segments", count)
			}
		}
	}
}
