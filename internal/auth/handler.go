package auth

import (
	"net/http"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/transport"
	"github.com/frahmantamala/hotel-pms/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions *SessionManager
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI, sessions *SessionManager) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
		Sessions:    sessions,
	}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	result, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	http.SetCookie(w, h.Sessions.SessionCookie(result.Session))
	h.WriteJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		User:    NewUserSummary(result.User, result.HotelName),
	})
}

// Signup handles POST /auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto SignupDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	result, err := h.Service.Signup(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	http.SetCookie(w, h.Sessions.SessionCookie(result.Session))
	h.WriteJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		User:    NewUserSummary(result.User, result.HotelName),
	})
}

// StaffSignup handles POST /auth/staff-signup
func (h *Handler) StaffSignup(w http.ResponseWriter, r *http.Request) {
	var dto StaffSignupDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	if _, err := h.Service.StaffSignup(r.Context(), dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, MessageResponse{
		Success: true,
		Message: StaffPendingMessage,
	})
}

// Logout handles POST /auth/logout. It always clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context(), h.Sessions.TokenFromRequest(r)); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	http.SetCookie(w, h.Sessions.BlankSessionCookie())
	h.WriteJSON(w, http.StatusOK, MessageResponse{Success: true})
}

// Session handles GET /auth/session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.CurrentSession(r.Context(), h.Sessions.TokenFromRequest(r))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// Authenticate resolves the session cookie to the caller's live user record.
// Store failures surface as 503 so clients retry instead of discarding the session.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.Sessions.TokenFromRequest(r)
		if token == "" {
			h.WriteAppError(w, internal.ErrUnauthenticated)
			return
		}

		ctx, cancel := internal.WithTimeout(r.Context(), internal.DefaultStoreTimeout)
		session, u, err := h.Sessions.ValidateSession(ctx, token)
		cancel()
		if err != nil {
			logger.From(r.Context()).Error("session validation failed", "error", err)
			h.WriteAppError(w, internal.NewUnavailableError("Service temporarily unavailable, please retry", internal.ErrCodeStoreTimeout, err))
			return
		}
		if session == nil || u == nil {
			h.WriteAppError(w, internal.ErrUnauthenticated)
			return
		}

		reqCtx := internal.WithUser(r.Context(), u)
		reqCtx = logger.WithPrincipal(reqCtx, u.ID, u.HotelID)
		next.ServeHTTP(w, r.WithContext(reqCtx))
	})
}
