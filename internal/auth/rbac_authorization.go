package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
	"github.com/frahmantamala/hotel-pms/internal/transport"
)

// RBACAuthorization gates routes on the caller resolved by Handler.Authenticate.
// Tenant ownership of individual rooms, bookings and staff records is enforced
// by the services, which take the caller's hotel id on every lookup.
type RBACAuthorization struct {
	*transport.BaseHandler
	logger *slog.Logger
}

func NewRBACAuthorization(baseHandler *transport.BaseHandler, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: baseHandler,
		logger:      logger,
	}
}

func (ra *RBACAuthorization) check(next http.Handler, allow func(*user.User) *internal.AppError) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := internal.UserFromContext(r.Context())
		if !ok {
			ra.logger.Warn("authorization check failed: user not found in context", "path", r.URL.Path)
			ra.WriteAppError(w, internal.ErrUnauthenticated)
			return
		}

		if appErr := allow(u); appErr != nil {
			ra.logger.WarnContext(r.Context(), "access denied",
				"user_id", u.ID,
				"role", u.Role,
				"code", appErr.Code,
				"path", r.URL.Path)
			ra.WriteAppError(w, appErr)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireHotel rejects callers that are not bound to a tenant.
func (ra *RBACAuthorization) RequireHotel() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.check(next, func(u *user.User) *internal.AppError {
			if !u.HasHotel() {
				return internal.ErrNoHotel
			}
			return nil
		})
	}
}

// RequireApproved re-checks approval per request, so revoking approval takes
// effect even for a session that is somehow still alive.
func (ra *RBACAuthorization) RequireApproved() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.check(next, func(u *user.User) *internal.AppError {
			if !u.IsApproved {
				return internal.ErrNotApproved
			}
			return nil
		})
	}
}

func (ra *RBACAuthorization) RequireRoles(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.check(next, func(u *user.User) *internal.AppError {
			if !u.Role.In(roles...) {
				return internal.ErrInsufficientRole
			}
			return nil
		})
	}
}

// RequireStaffApprover admits owners and managers.
func (ra *RBACAuthorization) RequireStaffApprover() func(http.Handler) http.Handler {
	return ra.RequireRoles(user.RoleOwner, user.RoleManager)
}
