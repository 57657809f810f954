package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/sbnm007/traffic-management-system/internal/core/domain"
	"github.com/sbnm007/traffic-management-system/internal/core/ports"
)

// RouteResolver converts a travel polyline into the ordered list of road
// segment IDs the trip passes through.
type RouteResolver struct {
	segmentRepo ports.SegmentRepository
}

func NewRouteResolver(segmentRepo ports.SegmentRepository) *RouteResolver {
	return &RouteResolver{segmentRepo: segmentRepo}
}

// Resolve returns segment IDs sorted by where along the route each segment is
// first entered. A segment touched more than once by a winding route is kept
// only at its first intersection position, since a booking reserves at most
// one unit of capacity per segment. An empty result is not an error here; the
// caller decides whether an unconstrained route is acceptable.
func (r *RouteResolver) Resolve(ctx context.Context, route domain.Polyline) ([]string, error) {
	if len(route) < 2 {
		return nil, domain.ErrInvalidRoute
	}

	matches, err := r.segmentRepo.IntersectingSegments(ctx, route)
	if err != nil {
		return nil, fmt.Errorf("intersecting segments: %w", err)
	}

	// Stable sort keeps the store's order for segments entering the route at
	// the same position, e.g. at an interchange.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Position < matches[j].Position
	})

	seen := make(map[string]struct{}, len(matches))
	segmentIDs := make([]string, 0, len(matches))

	for _, m := range matches {
		if _, ok := seen[m.SegmentID]; ok {
			continue
		}

		seen[m.SegmentID] = struct{}{}
		segmentIDs = append(segmentIDs, m.SegmentID)
	}

	return segmentIDs, nil
}
