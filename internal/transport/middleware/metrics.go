package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
)

// RequestObserver records HTTP traffic; *metrics.Metrics satisfies it.
type RequestObserver interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics labels requests by chi route pattern to keep label cardinality bounded.
func Metrics(observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			observer.ObserveHTTPRequest(r.Method, route, rec.Status(), time.Since(start))
		})
	}
}
