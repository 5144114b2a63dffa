package hotel

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
	"github.com/frahmantamala/hotel-pms/internal/transport"
)

type ServiceAPI interface {
	GetPublic(ctx context.Context, id string) (*PublicHotel, error)
	GetForUser(ctx context.Context, u *user.User) (*Hotel, error)
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

// GetHotel handles GET /hotels/{id}
func (h *Handler) GetHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Service.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, hotel)
}

// GetMyHotel handles GET /hotels/me
func (h *Handler) GetMyHotel(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated)
		return
	}

	hotel, err := h.Service.GetForUser(r.Context(), u)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, hotel)
}
