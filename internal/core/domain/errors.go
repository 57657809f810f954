package domain

import "errors"

var (
	// ErrInvalidRoute means the polyline is malformed (fewer than two points).
	ErrInvalidRoute = errors.New("route must contain at least two points")

	// ErrRouteUnavailable means the routing provider failed or returned an
	// unusable response. Callers may retry with backoff.
	ErrRouteUnavailable = errors.New("routing provider unavailable")

	// ErrNoSegmentsFound means the planned route intersects no managed road
	// segments; an unconstrained booking would defeat the capacity model.
	ErrNoSegmentsFound = errors.New("no road segments intersect the route")

	// ErrSegmentNotFound means a resolved segment no longer exists in the store.
	ErrSegmentNotFound = errors.New("road segment not found")

	// ErrInsufficientCapacity means at least one segment on the route is at
	// capacity. This is an expected business outcome, not a system failure.
	ErrInsufficientCapacity = errors.New("insufficient capacity on one or more road segments")

	// ErrStoreUnavailable means the segment store could not be reached.
	ErrStoreUnavailable = errors.New("segment store unavailable")

	ErrBookingNotFound = errors.New("booking not found")
)
