package rest

import (
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/hotel-pms/api"
	"github.com/frahmantamala/hotel-pms/internal/auth"
	"github.com/frahmantamala/hotel-pms/internal/booking"
	"github.com/frahmantamala/hotel-pms/internal/core/metrics"
	"github.com/frahmantamala/hotel-pms/internal/hotel"
	"github.com/frahmantamala/hotel-pms/internal/room"
	"github.com/frahmantamala/hotel-pms/internal/staff"
	"github.com/frahmantamala/hotel-pms/internal/transport/middleware"
	"github.com/frahmantamala/hotel-pms/internal/transport/swagger"
)

const openAPIPath = "/openapi.yml"

// Routes bundles everything the HTTP surface is built from. Metrics and
// AuthLimiter are optional.
type Routes struct {
	DB             *sqlx.DB
	AllowedOrigins string
	Metrics        *metrics.Metrics
	MetricsPath    string
	AuthLimiter    *middleware.RateLimiter

	Auth    *auth.Handler
	RBAC    *auth.RBACAuthorization
	Hotel   *hotel.Handler
	Room    *room.Handler
	Booking *booking.Handler
	Staff   *staff.Handler
}

func NewRouter(rt Routes) *chi.Mux {
	router := chi.NewRouter()
	RegisterAllRoutes(router, rt)
	return router
}

func RegisterAllRoutes(router *chi.Mux, rt Routes) {
	health := NewHealthHandler(rt.DB)

	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS(rt.AllowedOrigins))
	router.Use(middleware.Logging)
	if rt.Metrics != nil {
		router.Use(middleware.Metrics(rt.Metrics))
		path := rt.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, rt.Metrics.Handler())
	}

	router.Get(openAPIPath, api.Handler().ServeHTTP)
	router.Handle("/swagger/*", swagger.Handler(openAPIPath))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.Health)
		r.Get("/ping", health.Ping)

		r.Route("/auth", func(ar chi.Router) {
			if rt.AuthLimiter != nil {
				ar.Use(rt.AuthLimiter.Limit)
			}
			ar.Post("/login", rt.Auth.Login)
			ar.Post("/signup", rt.Auth.Signup)
			ar.Post("/staff-signup", rt.Auth.StaffSignup)
			ar.Post("/logout", rt.Auth.Logout)
			ar.Get("/session", rt.Auth.Session)
		})

		// Protected routes: a live session of an approved user bound to a hotel.
		r.Group(func(pr chi.Router) {
			pr.Use(rt.Auth.Authenticate)
			pr.Use(rt.RBAC.RequireHotel())
			pr.Use(rt.RBAC.RequireApproved())

			pr.Get("/hotels/me", rt.Hotel.GetMyHotel)

			pr.Route("/rooms", func(rr chi.Router) {
				rr.Get("/", rt.Room.ListRooms)
				rr.Post("/", rt.Room.AddRooms)
				rr.Get("/{id}", rt.Room.GetRoom)
				rr.Patch("/{id}/status", rt.Room.UpdateStatus)
			})

			pr.Route("/bookings", func(br chi.Router) {
				br.Get("/", rt.Booking.ListBookings)
				br.Post("/", rt.Booking.CreateBooking)
				br.Get("/{id}", rt.Booking.GetBooking)
				br.Patch("/{id}/status", rt.Booking.UpdateStatus)
			})

			pr.Route("/staff", func(sr chi.Router) {
				sr.Get("/", rt.Staff.ListStaff)
				sr.With(rt.RBAC.RequireStaffApprover()).Put("/", rt.Staff.SetApproval)
			})
		})

		// Public invite-link landing.
		r.Get("/hotels/{id}", rt.Hotel.GetHotel)
	})
}
