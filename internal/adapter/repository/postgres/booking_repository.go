package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sbnm007/traffic-management-system/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Reserve runs the whole admission unit in one transaction: lock every route
// segment, verify each has spare capacity, persist the booking and its
// segment associations, then increment the loads. Either everything commits
// or the rollback leaves no trace.
//
// Segments are locked in ascending segment_id order regardless of traversal
// order, so two bookings sharing segments always acquire their row locks in
// the same sequence and cannot deadlock each other.
func (r *BookingRepository) Reserve(ctx context.Context, booking *domain.Booking, segmentIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	defer tx.Rollback()

	lockQuery := `
	SELECT segment_id, capacity, current_load
	FROM road_segments
	WHERE segment_id = ANY($1)
	ORDER BY segment_id
	FOR UPDATE
	`

	rows, err := tx.QueryContext(ctx, lockQuery, pq.Array(segmentIDs))
	if err != nil {
		return fmt.Errorf("lock segments: %w", err)
	}

	locked := make(map[string]domain.RoadSegment, len(segmentIDs))
	for rows.Next() {
		var segment domain.RoadSegment
		if err := rows.Scan(&segment.SegmentID, &segment.Capacity, &segment.CurrentLoad); err != nil {
			rows.Close()
			return err
		}

		locked[segment.SegmentID] = segment
	}

	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock segments: %w", err)
	}

	for _, segmentID := range segmentIDs {
		segment, ok := locked[segmentID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrSegmentNotFound, segmentID)
		}

		if !segment.HasCapacity() {
			return fmt.Errorf("%w: segment %s at %d/%d", domain.ErrInsufficientCapacity, segmentID, segment.CurrentLoad, segment.Capacity)
		}
	}

	insertBooking := `
	INSERT INTO bookings (id, name, email, drivers_license, start_time, end_time,
	                      origin_lat, origin_lon, destination_lat, destination_lon, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.ExecContext(ctx, insertBooking,
		booking.ID,
		booking.Name,
		booking.Email,
		booking.DriversLicense,
		booking.StartTime,
		booking.EndTime,
		booking.Origin.Lat,
		booking.Origin.Lon,
		booking.Destination.Lat,
		booking.Destination.Lon,
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	insertSegment := `
	INSERT INTO booking_segments (booking_id, segment_id, segment_order)
	VALUES ($1, $2, $3)
	`

	stmt, err := tx.PrepareContext(ctx, insertSegment)
	if err != nil {
		return fmt.Errorf("failed to prepare segment statement: %w", err)
	}

	defer stmt.Close()

	for order, segmentID := range segmentIDs {
		if _, err := stmt.ExecContext(ctx, booking.ID, segmentID, order); err != nil {
			return fmt.Errorf("failed to insert booking segment %s: %w", segmentID, err)
		}
	}

	incrementLoad := `
	UPDATE road_segments
	SET current_load = current_load + 1
	WHERE segment_id = ANY($1)
	`

	if _, err := tx.ExecContext(ctx, incrementLoad, pq.Array(segmentIDs)); err != nil {
		return fmt.Errorf("failed to increment segment loads: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}

// GetByID loads a booking with its segments in traversal order, including
// each segment's current capacity status.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `
	SELECT id, name, email, drivers_license, start_time, end_time,
	       origin_lat, origin_lon, destination_lat, destination_lon, created_at
	FROM bookings
	WHERE id = $1
	`

	var booking domain.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.Name,
		&booking.Email,
		&booking.DriversLicense,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Origin.Lat,
		&booking.Origin.Lon,
		&booking.Destination.Lat,
		&booking.Destination.Lon,
		&booking.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrBookingNotFound
		}

		return nil, err
	}

	segmentQuery := `
	SELECT bs.segment_id, bs.segment_order, rs.capacity, rs.current_load
	FROM booking_segments bs
	JOIN road_segments rs ON rs.segment_id = bs.segment_id
	WHERE bs.booking_id = $1
	ORDER BY bs.segment_order
	`

	rows, err := r.db.QueryContext(ctx, segmentQuery, id)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var segment domain.BookingSegment
		if err := rows.Scan(&segment.SegmentID, &segment.Order, &segment.Capacity, &segment.CurrentLoad); err != nil {
			return nil, err
		}

		booking.Segments = append(booking.Segments, segment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &booking, nil
}
