package staff

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
	"github.com/frahmantamala/hotel-pms/internal/transport"
)

type ServiceAPI interface {
	ListStaff(ctx context.Context, hotelID string) ([]*Member, error)
	SetApproval(ctx context.Context, actor *user.User, dto SetApprovalDTO) (*Member, error)
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

// ListStaff handles GET /staff
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := h.CallerHotelID(w, r)
	if !ok {
		return
	}

	members, err := h.Service.ListStaff(r.Context(), hotelID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, members)
}

// SetApproval handles PUT /staff
func (h *Handler) SetApproval(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated)
		return
	}

	var dto SetApprovalDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	member, err := h.Service.SetApproval(r.Context(), actor, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, member)
}
