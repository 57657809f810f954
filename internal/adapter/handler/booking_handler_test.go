package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sbnm007/traffic-management-system/internal/adapter/handler"
	"github.com/sbnm007/traffic-management-system/internal/core/domain"
	"github.com/sbnm007/traffic-management-system/internal/core/ports/mocks"
	"github.com/sbnm007/traffic-management-system/internal/core/services"
)

func newTestRouter(t *testing.T, segmentRepo *mocks.SegmentRepository, bookingRepo *mocks.BookingRepository, planner *mocks.RoutePlanner) *httprouter.Router {
	t.Helper()

	svc := services.NewBookingService(segmentRepo, bookingRepo, planner, nil)
	h := handler.NewBookingHandler(svc)

	router := httprouter.New()
	router.POST("/api/bookings", h.CreateBooking)
	router.GET("/api/bookings/:id", h.GetBooking)
	router.GET("/api/segments", h.GetSegments)
	router.GET("/api/segments/:id", h.GetSegment)

	return router
}

const validBookingBody = `{
	"name": "Aoife Murphy",
	"email": "aoife@example.com",
	"drivers_license": "D1234567",
	"start_time": "2026-03-14T09:00:00Z",
	"origin_lat": 51.89,
	"origin_lon": -8.48,
	"destination_lat": 51.91,
	"destination_lon": -8.46
}`

func TestCreateBooking_Created(t *testing.T) {
	segmentRepo := mocks.NewSegmentRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	planner := mocks.NewRoutePlanner(t)

	route := &domain.Route{
		Geometry:        domain.Polyline{{Lat: 51.89, Lon: -8.48}, {Lat: 51.91, Lon: -8.46}},
		DurationSeconds: 600,
	}

	planner.On("PlanRoute", mock.Anything, mock.Anything, mock.Anything).Return(route, nil)
	segmentRepo.On("IntersectingSegments", mock.Anything, route.Geometry).Return([]domain.SegmentMatch{
		{SegmentID: "seg-a", Position: 0.1},
	}, nil)
	bookingRepo.On("Reserve", mock.Anything, mock.Anything, []string{"seg-a"}).Return(nil)

	router := newTestRouter(t, segmentRepo, bookingRepo, planner)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingBody))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "aoife@example.com", resp["email"])
	assert.Equal(t, "2026-03-14T09:10:00Z", resp["end_time"])
}

func TestCreateBooking_InsufficientCapacityIsConflict(t *testing.T) {
	segmentRepo := mocks.NewSegmentRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	planner := mocks.NewRoutePlanner(t)

	route := &domain.Route{
		Geometry:        domain.Polyline{{Lat: 51.89, Lon: -8.48}, {Lat: 51.91, Lon: -8.46}},
		DurationSeconds: 600,
	}

	planner.On("PlanRoute", mock.Anything, mock.Anything, mock.Anything).Return(route, nil)
	segmentRepo.On("IntersectingSegments", mock.Anything, route.Geometry).Return([]domain.SegmentMatch{
		{SegmentID: "seg-full", Position: 0.1},
	}, nil)
	bookingRepo.On("Reserve", mock.Anything, mock.Anything, []string{"seg-full"}).Return(domain.ErrInsufficientCapacity)

	router := newTestRouter(t, segmentRepo, bookingRepo, planner)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingBody))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateBooking_RouteUnavailableIsBadGateway(t *testing.T) {
	segmentRepo := mocks.NewSegmentRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	planner := mocks.NewRoutePlanner(t)

	planner.On("PlanRoute", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrRouteUnavailable)

	router := newTestRouter(t, segmentRepo, bookingRepo, planner)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingBody))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCreateBooking_ValidationFailure(t *testing.T) {
	segmentRepo := mocks.NewSegmentRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	planner := mocks.NewRoutePlanner(t)

	router := newTestRouter(t, segmentRepo, bookingRepo, planner)

	body := `{"name": "Aoife", "email": "not-an-email", "drivers_license": "D1", "start_time": "2026-03-14T09:00:00Z", "origin_lat": 51.89, "origin_lon": -8.48, "destination_lat": 51.91, "destination_lon": -8.46}`

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBooking_NotFound(t *testing.T) {
	segmentRepo := mocks.NewSegmentRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	planner := mocks.NewRoutePlanner(t)

	id := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrBookingNotFound)

	router := newTestRouter(t, segmentRepo, bookingRepo, planner)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+id.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBooking_InvalidID(t *testing.T) {
	segmentRepo := mocks.NewSegmentRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	planner := mocks.NewRoutePlanner(t)

	router := newTestRouter(t, segmentRepo, bookingRepo, planner)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSegments(t *testing.T) {
	segmentRepo := mocks.NewSegmentRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	planner := mocks.NewRoutePlanner(t)

	segmentRepo.On("ListSegments", mock.Anything).Return([]domain.RoadSegment{
		{SegmentID: "seg-a", Capacity: 100, CurrentLoad: 12},
	}, nil)

	router := newTestRouter(t, segmentRepo, bookingRepo, planner)

	req := httptest.NewRequest(http.MethodGet, "/api/segments", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var segments []domain.RoadSegment
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &segments))
	if assert.Len(t, segments, 1) {
		assert.Equal(t, "seg-a", segments[0].SegmentID)
		assert.Equal(t, 12, segments[0].CurrentLoad)
	}
}

func TestGetSegment_NotFound(t *testing.T) {
	segmentRepo := mocks.NewSegmentRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	planner := mocks.NewRoutePlanner(t)

	segmentRepo.On("GetBySegmentID", mock.Anything, "seg-missing").Return(nil, domain.ErrSegmentNotFound)

	router := newTestRouter(t, segmentRepo, bookingRepo, planner)

	req := httptest.NewRequest(http.MethodGet, "/api/segments/seg-missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
