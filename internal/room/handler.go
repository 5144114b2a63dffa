package room

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/hotel-pms/internal/transport"
)

type ServiceAPI interface {
	AddRooms(ctx context.Context, hotelID string, dto AddRoomsDTO) (*AddRoomsResponse, error)
	ListRooms(ctx context.Context, hotelID string) ([]*Room, error)
	GetRoom(ctx context.Context, hotelID, roomID string) (*Room, error)
	UpdateStatus(ctx context.Context, hotelID, roomID string, dto UpdateStatusDTO) (*Room, error)
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

// ListRooms handles GET /rooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := h.CallerHotelID(w, r)
	if !ok {
		return
	}

	rooms, err := h.Service.ListRooms(r.Context(), hotelID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rooms)
}

// AddRooms handles POST /rooms
func (h *Handler) AddRooms(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := h.CallerHotelID(w, r)
	if !ok {
		return
	}

	var dto AddRoomsDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	resp, err := h.Service.AddRooms(r.Context(), hotelID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, resp)
}

// GetRoom handles GET /rooms/{id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := h.CallerHotelID(w, r)
	if !ok {
		return
	}

	room, err := h.Service.GetRoom(r.Context(), hotelID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, room)
}

// UpdateStatus handles PATCH /rooms/{id}/status
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

	room, err := h.Service.UpdateStatus(r.Context(), hotelID, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, room)
}
