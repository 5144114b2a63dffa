package internal

import (
	"context"
	"time"

	"github.com/frahmantamala/hotel-pms/internal/core/user"
)

// DefaultStoreTimeout bounds a single credential store round trip made on the request path.
const DefaultStoreTimeout = 5 * time.Second

type contextKey string

const userContextKey contextKey = "user"

// WithTimeout returns a context with timeout, defaulting to DefaultStoreTimeout if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, duration)
}

// WithUser stores the authenticated caller on the request context.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userContextKey).(*user.User)
	return u, ok && u != nil
}
