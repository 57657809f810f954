package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a reserved point-to-point trip. It is created together with its
// segment reservations in one transaction and never mutated afterward.
type Booking struct {
	ID             uuid.UUID
	Name           string
	Email          string
	DriversLicense string
	StartTime      time.Time
	EndTime        time.Time
	Origin         Point
	Destination    Point
	CreatedAt      time.Time
	Segments       []BookingSegment
}

// Active reports whether the booking's trip window has not yet elapsed.
// There is no stored status flag; activity is derived from EndTime.
func (b *Booking) Active(now time.Time) bool {
	return !b.EndTime.Before(now)
}

// BookingSegment associates a booking with one road segment it traverses.
// Order is the 0-based position of the segment along the travel path.
type BookingSegment struct {
	SegmentID   string `json:"segment_id"`
	Order       int    `json:"order"`
	Capacity    int    `json:"capacity"`
	CurrentLoad int    `json:"current_load"`
}
