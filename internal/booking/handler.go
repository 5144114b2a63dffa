package booking

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/hotel-pms/internal/transport"
)

type ServiceAPI interface {
	CreateBooking(ctx context.Context, hotelID string, dto CreateBookingDTO) (*Booking, error)
	ListBookings(ctx context.Context, hotelID string) ([]*Booking, error)
	GetBooking(ctx context.Context, hotelID, bookingID string) (*Booking, error)
	UpdateStatus(ctx context.Context, hotelID, bookingID string, dto UpdateStatusDTO) (*Booking, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListBookings handles GET /bookings
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := h.CallerHotelID(w, r)
	if !ok {
		return
	}

	bookings, err := h.Service.ListBookings(r.Context(), hotelID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, bookings)
}

// CreateBooking handles POST /bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := h.CallerHotelID(w, r)
	if !ok {
		return
	}

	var dto CreateBookingDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	booking, err := h.Service.CreateBooking(r.Context(), hotelID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, CreateBookingResponse{Success: true, Booking: booking})
}

// GetBooking handles GET /bookings/{id}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := h.CallerHotelID(w, r)
	if !ok {
		return
	}

	booking, err := h.Service.GetBooking(r.Context(), hotelID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, booking)
}

// UpdateStatus handles PATCH /bookings/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := h.CallerHotelID(w, r)
	if !ok {
		return
	}

	var dto UpdateStatusDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	booking, err := h.Service.UpdateStatus(r.Context(), hotelID, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, booking)
}
