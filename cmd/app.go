package cmd

import (
	"fmt"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/auth"
	authPostgres "github.com/frahmantamala/hotel-pms/internal/auth/postgres"
	"github.com/frahmantamala/hotel-pms/internal/booking"
	bookingPostgres "github.com/frahmantamala/hotel-pms/internal/booking/postgres"
	"github.com/frahmantamala/hotel-pms/internal/core/events"
	"github.com/frahmantamala/hotel-pms/internal/core/metrics"
	"github.com/frahmantamala/hotel-pms/internal/hotel"
	hotelPostgres "github.com/frahmantamala/hotel-pms/internal/hotel/postgres"
	"github.com/frahmantamala/hotel-pms/internal/notification"
	"github.com/frahmantamala/hotel-pms/internal/room"
	roomPostgres "github.com/frahmantamala/hotel-pms/internal/room/postgres"
	"github.com/frahmantamala/hotel-pms/internal/staff"
	staffPostgres "github.com/frahmantamala/hotel-pms/internal/staff/postgres"
	"github.com/frahmantamala/hotel-pms/internal/transport"
	"github.com/frahmantamala/hotel-pms/internal/transport/middleware"
	"github.com/frahmantamala/hotel-pms/internal/transport/rest"
)

// Application is the fully wired service graph behind the HTTP server.
type Application struct {
	Router      *chi.Mux
	Events      *events.EventBus
	Metrics     *metrics.Metrics
	Sessions    *auth.SessionManager
	AuthLimiter *middleware.RateLimiter

	AuthService    *auth.Service
	RoomService    *room.Service
	BookingService *booking.Service
	StaffService   *staff.Service
}

// NewApplication wires repositories, services and handlers on top of an open
// database. sqlDB backs the health check; gormDB backs the repositories.
func NewApplication(cfg *internal.Config, sqlDB *sqlx.DB, gormDB *gorm.DB, lg *slog.Logger) *Application {
	var m *metrics.Metrics
	if cfg.Observability.Metrics.Enabled {
		m = metrics.New()
	}

	bus := events.NewEventBus(lg)
	notification.NewEventHandler(notification.NewLogMailer(lg), lg).RegisterEventHandlers(bus)

	authRepo := authPostgres.NewRepository(gormDB)
	hotelRepo := hotelPostgres.NewHotelRepository(gormDB)
	roomRepo := roomPostgres.NewRoomRepository(gormDB)
	bookingRepo := bookingPostgres.NewBookingRepository(gormDB)
	staffRepo := staffPostgres.NewStaffRepository(gormDB)

	sessions := auth.NewSessionManager(authRepo, authRepo, auth.CookieOptionsFromConfig(cfg.Session), cfg.Session.MaxLifetime, lg)
	hasher := auth.NewBcryptHasher(cfg.Session.BCryptCost)

	var (
		authObserver    auth.Observer
		roomObserver    room.Observer
		bookingObserver booking.Observer
		staffObserver   staff.Observer
	)
	if m != nil {
		authObserver, roomObserver, bookingObserver, staffObserver = m, m, m, m
	}

	authService := auth.NewService(authRepo, hotelRepo, hasher, sessions, bus, authObserver, lg)
	hotelService := hotel.NewService(hotelRepo, lg)
	roomService := room.NewService(roomRepo, roomObserver, lg)
	bookingService := booking.NewService(bookingRepo, roomRepo, bus, bookingObserver, lg)
	staffService := staff.NewService(staffRepo, sessions, bus, staffObserver, lg)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.AuthRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	}

	base := transport.NewBaseHandler(lg)
	router := rest.NewRouter(rest.Routes{
		DB:             sqlDB,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        m,
		MetricsPath:    cfg.Observability.Metrics.Path,
		AuthLimiter:    limiter,
		Auth:           auth.NewHandler(base, authService, sessions),
		RBAC:           auth.NewRBACAuthorization(base, lg),
		Hotel:          hotel.NewHandler(base, hotelService),
		Room:           room.NewHandler(base, roomService),
		Booking:        booking.NewHandler(base, bookingService),
		Staff:          staff.NewHandler(base, staffService),
	})

	return &Application{
		Router:         router,
		Events:         bus,
		Metrics:        m,
		Sessions:       sessions,
		AuthLimiter:    limiter,
		AuthService:    authService,
		RoomService:    roomService,
		BookingService: bookingService,
		StaffService:   staffService,
	}
}

// initDB opens the pgx pool through sqlx and verifies it.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// initGorm shares the sqlx pool with gorm so both see the same connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return gormDB, nil
}
