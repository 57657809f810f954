package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sbnm007/traffic-management-system/internal/core/domain"
	"github.com/sbnm007/traffic-management-system/internal/core/ports"
	"github.com/sbnm007/traffic-management-system/internal/platform/metrics"
)

// segmentStatusCacheKey caches the segment capacity listing. It is
// invalidated after every successful reservation, so a short TTL is enough.
const (
	segmentStatusCacheKey = "segments:status"
	segmentStatusCacheTTL = 30 * time.Second
)

type CreateBookingRequest struct {
	Name           string    `json:"name" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	DriversLicense string    `json:"drivers_license" validate:"required,min=5,max=50"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	OriginLat      float64   `json:"origin_lat" validate:"gte=-90,lte=90"`
	OriginLon      float64   `json:"origin_lon" validate:"gte=-180,lte=180"`
	DestinationLat float64   `json:"destination_lat" validate:"gte=-90,lte=90"`
	DestinationLon float64   `json:"destination_lon" validate:"gte=-180,lte=180"`
}

type BookingService struct {
	segmentRepo ports.SegmentRepository
	bookingRepo ports.BookingRepository
	planner     ports.RoutePlanner
	resolver    *RouteResolver
	redisClient *redis.Client
}

// NewBookingService wires the booking workflow. redisClient may be nil, in
// which case the segment status listing is served uncached.
func NewBookingService(segmentRepo ports.SegmentRepository, bookingRepo ports.BookingRepository, planner ports.RoutePlanner, redisClient *redis.Client) *BookingService {
	return &BookingService{
		segmentRepo: segmentRepo,
		bookingRepo: bookingRepo,
		planner:     planner,
		resolver:    NewRouteResolver(segmentRepo),
		redisClient: redisClient,
	}
}

// CreateBooking plans a route for the requested trip, resolves the road
// segments it traverses and reserves one unit of capacity on each of them as
// a single atomic unit. A rejected or failed request leaves no trace: no
// booking row and no segment load change.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	origin := domain.Point{Lat: req.OriginLat, Lon: req.OriginLon}
	destination := domain.Point{Lat: req.DestinationLat, Lon: req.DestinationLon}

	route, err := s.planner.PlanRoute(ctx, origin, destination)
	if err != nil {
		metrics.BookingsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, fmt.Errorf("plan route: %w", err)
	}

	segmentIDs, err := s.resolver.Resolve(ctx, route.Geometry)
	if err != nil {
		metrics.BookingsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}

	if len(segmentIDs) == 0 {
		metrics.BookingsTotal.WithLabelValues("no_segments_found").Inc()
		return nil, domain.ErrNoSegmentsFound
	}

	booking := &domain.Booking{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		DriversLicense: req.DriversLicense,
		StartTime:      req.StartTime,
		EndTime:        req.StartTime.Add(time.Duration(route.DurationSeconds) * time.Second),
		Origin:         origin,
		Destination:    destination,
		CreatedAt:      time.Now(),
	}

	if err := s.bookingRepo.Reserve(ctx, booking, segmentIDs); err != nil {
		metrics.BookingsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}

	s.invalidateSegmentCache(ctx)

	metrics.BookingsTotal.WithLabelValues("reserved").Inc()
	log.Printf("Booking %s reserved %d segments (%s to %s)", booking.ID, len(segmentIDs), booking.StartTime.Format(time.RFC3339), booking.EndTime.Format(time.RFC3339))

	return booking, nil
}

// GetBooking returns a booking together with its route segments in traversal
// order.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// GetSegment returns the capacity status of a single road segment.
func (s *BookingService) GetSegment(ctx context.Context, segmentID string) (*domain.RoadSegment, error) {
	return s.segmentRepo.GetBySegmentID(ctx, segmentID)
}

// ListSegments returns the capacity status of every managed road segment,
// served from the Redis cache when possible.
func (s *BookingService) ListSegments(ctx context.Context) ([]domain.RoadSegment, error) {
	if s.redisClient != nil {
		val, err := s.redisClient.Get(ctx, segmentStatusCacheKey).Result()
		if err == nil {
			var segments []domain.RoadSegment
			if err := json.Unmarshal([]byte(val), &segments); err == nil {
				return segments, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("Segment cache read failed: %v", err)
		}
	}

	segments, err := s.segmentRepo.ListSegments(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(segments); err == nil {
			if err := s.redisClient.Set(ctx, segmentStatusCacheKey, data, segmentStatusCacheTTL).Err(); err != nil {
				log.Printf("Segment cache write failed: %v", err)
			}
		}
	}

	return segments, nil
}

func (s *BookingService) invalidateSegmentCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}

	if err := s.redisClient.Del(ctx, segmentStatusCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate segment cache: %v", err)
	}
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientCapacity):
		return "insufficient_capacity"
	case errors.Is(err, domain.ErrSegmentNotFound):
		return "segment_not_found"
	case errors.Is(err, domain.ErrNoSegmentsFound):
		return "no_segments_found"
	case errors.Is(err, domain.ErrRouteUnavailable):
		return "route_unavailable"
	case errors.Is(err, domain.ErrInvalidRoute):
		return "invalid_route"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "error"
	}
}
