package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/sbnm007/traffic-management-system/internal/core/domain"
	"github.com/sbnm007/traffic-management-system/internal/core/services"
)

type BookingHandler struct {
	svc      *services.BookingService
	validate *validator.Validate
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

type bookingResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	DriversLicense string                  `json:"drivers_license"`
	StartTime      time.Time               `json:"start_time"`
	EndTime        time.Time               `json:"end_time"`
	OriginLat      float64                 `json:"origin_lat"`
	OriginLon      float64                 `json:"origin_lon"`
	DestinationLat float64                 `json:"destination_lat"`
	DestinationLon float64                 `json:"destination_lon"`
	CreatedAt      time.Time               `json:"created_at"`
	Segments       []domain.BookingSegment `json:"segments,omitempty"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID.String(),
		Name:           b.Name,
		Email:          b.Email,
		DriversLicense: b.DriversLicense,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		OriginLat:      b.Origin.Lat,
		OriginLon:      b.Origin.Lon,
		DestinationLat: b.Destination.Lat,
		DestinationLon: b.Destination.Lon,
		CreatedAt:      b.CreatedAt,
		Segments:       b.Segments,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), req)
	if err != nil {
		status := statusForError(err)
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := h.svc.GetBooking(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) GetSegment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	segment, err := h.svc.GetSegment(r.Context(), ps.ByName("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSegmentNotFound) {
			writeError(w, http.StatusNotFound, "segment not found")
			return
		}

		writeError(w, statusForError(err), "failed to load segment")
		return
	}

	writeJSON(w, http.StatusOK, segment)
}

func (h *BookingHandler) GetSegments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	segments, err := h.svc.ListSegments(r.Context())
	if err != nil {
		writeError(w, statusForError(err), "failed to list segments")
		return
	}

	writeJSON(w, http.StatusOK, segments)
}

// statusForError distinguishes expected business rejections from
// infrastructure failures, so clients can tell a full road from a broken
// backend.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientCapacity):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoSegmentsFound), errors.Is(err, domain.ErrSegmentNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidRoute):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRouteUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
