package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sbnm007/traffic-management-system/internal/core/domain"
)

type SegmentRepository interface {
	// IntersectingSegments returns every segment whose shape intersects the
	// route, ordered by the position along the route where the intersection
	// begins. Ties keep the store's order.
	IntersectingSegments(ctx context.Context, route domain.Polyline) ([]domain.SegmentMatch, error)
	GetBySegmentID(ctx context.Context, segmentID string) (*domain.RoadSegment, error)
	ListSegments(ctx context.Context) ([]domain.RoadSegment, error)
	// ReleaseExpired gives back capacity held by bookings that ended strictly
	// before threshold, skipping segments still claimed by a booking whose
	// end_time is at or past the threshold. Returns the number of segments
	// whose load changed.
	ReleaseExpired(ctx context.Context, threshold time.Time) (int, error)
}

type BookingRepository interface {
	// Reserve checks spare capacity on every listed segment and, only if all
	// pass, increments each segment's load and persists the booking with its
	// segment associations as one atomic unit. On failure nothing is written.
	Reserve(ctx context.Context, booking *domain.Booking, segmentIDs []string) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type RoutePlanner interface {
	PlanRoute(ctx context.Context, origin, destination domain.Point) (*domain.Route, error)
}
