package domain

// Point is a geographic coordinate in WGS84.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Polyline is an ordered path of points describing a route geometry.
type Polyline []Point

// Route is a planned trip returned by the routing provider.
type Route struct {
	Geometry        Polyline
	DurationSeconds int
}

// RoadSegment is an atomic unit of road capacity. CurrentLoad counts the
// bookings currently holding a reservation on it and never exceeds Capacity.
type RoadSegment struct {
	SegmentID   string `json:"segment_id"`
	Name        string `json:"name,omitempty"`
	OSMID       int64  `json:"osm_id,omitempty"`
	Capacity    int    `json:"capacity"`
	CurrentLoad int    `json:"current_load"`
}

func (s *RoadSegment) HasCapacity() bool {
	return s.CurrentLoad < s.Capacity
}

// SegmentMatch is one row of the geometric intersection query: a segment the
// route passes through, with the fractional position along the route where
// the intersection begins.
type SegmentMatch struct {
	SegmentID string
	Position  float64
}
