package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/pkg/logger"
)

const maxBodyBytes = 1 << 20

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteAppError writes the stable error envelope for err.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err *internal.AppError) {
	status, body := err.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// HandleServiceError maps a service error onto the response. Unknown errors are
// logged with their cause and reported as a generic internal error.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	lg := logger.From(r.Context())

	if errors.Is(err, context.DeadlineExceeded) {
		lg.Error("store timeout", "error", err, "path", r.URL.Path)
		h.WriteAppError(w, internal.NewUnavailableError("Service temporarily unavailable, please retry", internal.ErrCodeStoreTimeout, err))
		return
	}

	if appErr, ok := internal.IsAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			lg.Error("request failed", "error", appErr, "path", r.URL.Path)
		} else {
			lg.Warn("request rejected", "type", appErr.Type, "code", appErr.Code, "message", appErr.GetDetailedMessage(), "path", r.URL.Path)
		}
		h.WriteAppError(w, appErr)
		return
	}

	lg.Error("unexpected error", "error", err, "path", r.URL.Path)
	h.WriteAppError(w, internal.NewInternalError("Internal server error", err))
}

// DecodeJSON reads a JSON body into dst, rejecting bodies larger than 1 MiB.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return internal.NewValidationError("Request body is required", internal.ErrCodeValidationFailed)
		}
		return internal.NewValidationError("Invalid request body", internal.ErrCodeValidationFailed).WithCause(err)
	}
	return nil
}

// CallerHotelID returns the tenant of the authenticated caller, writing the
// error response itself when there is none.
func (h *BaseHandler) CallerHotelID(w http.ResponseWriter, r *http.Request) (string, bool) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated)
		return "", false
	}
	if !u.HasHotel() {
		h.WriteAppError(w, internal.ErrNoHotel)
		return "", false
	}
	return *u.HotelID, true
}
