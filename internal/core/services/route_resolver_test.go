package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sbnm007/traffic-management-system/internal/core/domain"
	"github.com/sbnm007/traffic-management-system/internal/core/ports/mocks"
	"github.com/sbnm007/traffic-management-system/internal/core/services"
)

func testPolyline() domain.Polyline {
	return domain.Polyline{
		{Lat: 51.89, Lon: -8.48},
		{Lat: 51.90, Lon: -8.47},
		{Lat: 51.91, Lon: -8.46},
	}
}

func TestResolve_OrdersSegmentsByPosition(t *testing.T) {
	mockSegmentRepo := mocks.NewSegmentRepository(t)
	resolver := services.NewRouteResolver(mockSegmentRepo)

	ctx := context.Background()
	route := testPolyline()

	mockSegmentRepo.On("IntersectingSegments", ctx, route).Return([]domain.SegmentMatch{
		{SegmentID: "seg-c", Position: 0.7},
		{SegmentID: "seg-a", Position: 0.1},
		{SegmentID: "seg-b", Position: 0.4},
	}, nil)

	segmentIDs, err := resolver.Resolve(ctx, route)

	assert.NoError(t, err)
	assert.Equal(t, []string{"seg-a", "seg-b", "seg-c"}, segmentIDs)
}

func TestResolve_DeduplicatesWindingRoute(t *testing.T) {
	mockSegmentRepo := mocks.NewSegmentRepository(t)
	resolver := services.NewRouteResolver(mockSegmentRepo)

	ctx := context.Background()
	route := testPolyline()

	// A winding route re-enters seg-a later; only the first entry counts.
	mockSegmentRepo.On("IntersectingSegments", ctx, route).Return([]domain.SegmentMatch{
		{SegmentID: "seg-a", Position: 0.0},
		{SegmentID: "seg-b", Position: 0.3},
		{SegmentID: "seg-a", Position: 0.8},
	}, nil)

	segmentIDs, err := resolver.Resolve(ctx, route)

	assert.NoError(t, err)
	assert.Equal(t, []string{"seg-a", "seg-b"}, segmentIDs)
}

func TestResolve_PreservesStoreOrderOnTies(t *testing.T) {
	mockSegmentRepo := mocks.NewSegmentRepository(t)
	resolver := services.NewRouteResolver(mockSegmentRepo)

	ctx := context.Background()
	route := testPolyline()

	// Two segments meet the route at the same interchange position.
	mockSegmentRepo.On("IntersectingSegments", ctx, route).Return([]domain.SegmentMatch{
		{SegmentID: "seg-z", Position: 0.5},
		{SegmentID: "seg-a", Position: 0.5},
	}, nil)

	segmentIDs, err := resolver.Resolve(ctx, route)

	assert.NoError(t, err)
	assert.Equal(t, []string{"seg-z", "seg-a"}, segmentIDs)
}

func TestResolve_RejectsShortPolyline(t *testing.T) {
	mockSegmentRepo := mocks.NewSegmentRepository(t)
	resolver := services.NewRouteResolver(mockSegmentRepo)

	segmentIDs, err := resolver.Resolve(context.Background(), domain.Polyline{{Lat: 51.89, Lon: -8.48}})

	assert.ErrorIs(t, err, domain.ErrInvalidRoute)
	assert.Nil(t, segmentIDs)
}

func TestResolve_EmptyResultIsNotAnError(t *testing.T) {
	mockSegmentRepo := mocks.NewSegmentRepository(t)
	resolver := services.NewRouteResolver(mockSegmentRepo)

	ctx := context.Background()
	route := testPolyline()

	mockSegmentRepo.On("IntersectingSegments", ctx, route).Return([]domain.SegmentMatch{}, nil)

	segmentIDs, err := resolver.Resolve(ctx, route)

	assert.NoError(t, err)
	assert.Empty(t, segmentIDs)
}

func TestResolve_StoreUnavailable(t *testing.T) {
	mockSegmentRepo := mocks.NewSegmentRepository(t)
	resolver := services.NewRouteResolver(mockSegmentRepo)

	ctx := context.Background()
	route := testPolyline()

	mockSegmentRepo.On("IntersectingSegments", ctx, route).Return(nil, domain.ErrStoreUnavailable)

	segmentIDs, err := resolver.Resolve(ctx, route)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Nil(t, segmentIDs)
}
