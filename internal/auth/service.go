package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hotel-pms/internal"
	hotelDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/hotel"
	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
	"github.com/frahmantamala/hotel-pms/internal/core/events"
	"github.com/frahmantamala/hotel-pms/internal/core/metrics"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
)

const (
	subscriptionTrial  = "trial"
	staffStatusPending = "INACTIVE"
)

// Repository is the credential store as seen by the auth flows.
type Repository interface {
	UserLookup
	// GetByEmail returns nil, nil when no user has the (already case-folded) email.
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateOwner inserts the hotel and its owner in one transaction.
	CreateOwner(ctx context.Context, hotel *hotelDatamodel.Hotel, owner *userDatamodel.User) error
	// CreateStaff inserts the pending user and its staff profile in one transaction.
	CreateStaff(ctx context.Context, u *userDatamodel.User, profile *userDatamodel.Staff) error
}

// HotelLookup resolves tenants for invite links and user summaries.
type HotelLookup interface {
	// GetByID returns nil, nil when the hotel does not exist.
	GetByID(ctx context.Context, id string) (*hotelDatamodel.Hotel, error)
}

// Observer receives auth outcomes; *metrics.Metrics satisfies it.
type Observer interface {
	ObserveLogin(outcome string)
	ObserveSessionCreated()
}

type noopObserver struct{}

func (noopObserver) ObserveLogin(string)    {}
func (noopObserver) ObserveSessionCreated() {}

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*AuthResult, error)
	Signup(ctx context.Context, dto SignupDTO) (*AuthResult, error)
	StaffSignup(ctx context.Context, dto StaffSignupDTO) (*user.User, error)
	Logout(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (SessionResponse, error)
}

// AuthResult is a freshly issued session together with the caller it belongs to.
type AuthResult struct {
	Session   *Session
	User      *user.User
	HotelName *string
}

type Service struct {
	repo      Repository
	hotels    HotelLookup
	hasher    PasswordHasher
	sessions  *SessionManager
	publisher events.Publisher
	observer  Observer
	logger    *slog.Logger
}

func NewService(repo Repository, hotels HotelLookup, hasher PasswordHasher, sessions *SessionManager, publisher events.Publisher, observer Observer, logger *slog.Logger) *Service {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Service{
		repo:      repo,
		hotels:    hotels,
		hasher:    hasher,
		sessions:  sessions,
		publisher: publisher,
		observer:  observer,
		logger:    logger,
	}
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password fail identically; unapproved accounts are refused even with valid credentials.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := user.NormalizeEmail(dto.Email)
	record, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.observer.ObserveLogin(metrics.LoginError)
		s.logger.Error("failed to load user for login", "error", err)
		return nil, internal.NewInternalError("Internal server error", err)
	}

	if record == nil || !s.hasher.Verify(record.PasswordHash, dto.Password) {
		s.observer.ObserveLogin(metrics.LoginInvalidCredentials)
		s.logger.Warn("login rejected: invalid credentials")
		return nil, internal.ErrInvalidCredentials
	}

	if !record.IsApproved {
		s.observer.ObserveLogin(metrics.LoginNotApproved)
		s.logger.Warn("login rejected: account not approved", "user_id", record.ID)
		return nil, internal.ErrNotApproved
	}

	result, err := s.issueSession(ctx, user.FromDataModel(record))
	if err != nil {
		s.observer.ObserveLogin(metrics.LoginError)
		return nil, err
	}

	s.observer.ObserveLogin(metrics.LoginSuccess)
	s.logger.Info("user logged in", "user_id", record.ID, "role", record.Role)
	return result, nil
}

// Signup creates a hotel and its auto-approved owner, then signs the owner in.
func (s *Service) Signup(ctx context.Context, dto SignupDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := user.NormalizeEmail(dto.Email)
	if err := s.ensureEmailAvailable(ctx, email); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("Internal server error", err)
	}

	roomCount := 0
	if dto.RoomCount != nil {
		roomCount = *dto.RoomCount
	}

	hotel := &hotelDatamodel.Hotel{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(dto.HotelName),
		Address:            trimmedOrNil(dto.Location),
		RoomCount:          roomCount,
		HotelType:          trimmedOrNil(dto.HotelType),
		SubscriptionStatus: subscriptionTrial,
	}
	owner := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: &digest,
		Fullname:     strings.TrimSpace(dto.Fullname),
		Role:         user.RoleOwner.String(),
		HotelID:      &hotel.ID,
		IsApproved:   true,
	}

	if err := s.repo.CreateOwner(ctx, hotel, owner); err != nil {
		if internal.IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to create hotel owner", "error", err)
		return nil, internal.NewInternalError("Internal server error", err)
	}

	s.logger.Info("hotel created", "hotel_id", hotel.ID, "user_id", owner.ID)

	result, err := s.issueSession(ctx, user.FromDataModel(owner))
	if err != nil {
		return nil, err
	}
	result.HotelName = &hotel.Name
	return result, nil
}

// StaffSignup registers an unapproved account against an invite link. No session is issued.
func (s *Service) StaffSignup(ctx context.Context, dto StaffSignupDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, _ := user.ParseRole(dto.Role)
	email := user.NormalizeEmail(dto.Email)

	hotel, err := s.hotels.GetByID(ctx, dto.HotelID)
	if err != nil {
		s.logger.Error("failed to load hotel for staff signup", "error", err, "hotel_id", dto.HotelID)
		return nil, internal.NewInternalError("Internal server error", err)
	}
	if hotel == nil {
		s.logger.Warn("staff signup with unknown hotel", "hotel_id", dto.HotelID)
		return nil, internal.ErrInvalidInvite
	}

	if err := s.ensureEmailAvailable(ctx, email); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("Internal server error", err)
	}

	fullname := strings.TrimSpace(dto.Fullname)
	record := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: &digest,
		Fullname:     fullname,
		Role:         role.String(),
		HotelID:      &hotel.ID,
		IsApproved:   false,
	}
	profile := &userDatamodel.Staff{
		ID:       uuid.NewString(),
		Fullname: fullname,
		Email:    email,
		Phone:    trimmedOrNil(dto.Phone),
		HotelID:  hotel.ID,
		Role:     role.String(),
		UserID:   record.ID,
		Status:   staffStatusPending,
		HireDate: time.Now().UTC(),
	}

	if err := s.repo.CreateStaff(ctx, record, profile); err != nil {
		if internal.IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to create staff account", "error", err, "hotel_id", hotel.ID)
		return nil, internal.NewInternalError("Internal server error", err)
	}

	s.logger.Info("staff account pending approval", "user_id", record.ID, "hotel_id", hotel.ID, "role", role)

	if s.publisher != nil {
		event := events.NewStaffSignedUpEvent(record.ID, hotel.ID, email, fullname, role.String())
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish staff signup event", "error", err, "user_id", record.ID)
		}
	}

	return user.FromDataModel(record), nil
}

// Logout is idempotent: unknown or empty tokens succeed.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.InvalidateSession(ctx, token); err != nil {
		s.logger.Error("failed to invalidate session", "error", err)
		return internal.NewInternalError("Internal server error", err)
	}
	return nil
}

// CurrentSession reports the live caller behind token, if any.
func (s *Service) CurrentSession(ctx context.Context, token string) (SessionResponse, error) {
	_, u, err := s.sessions.ValidateSession(ctx, token)
	if err != nil {
		s.logger.Error("failed to validate session", "error", err)
		return SessionResponse{}, internal.NewUnavailableError("Service temporarily unavailable, please retry", internal.ErrCodeStoreTimeout, err)
	}
	if u == nil {
		return SessionResponse{Authenticated: false}, nil
	}

	summary := NewUserSummary(u, s.hotelName(ctx, u))
	return SessionResponse{Authenticated: true, User: &summary}, nil
}

func (s *Service) issueSession(ctx context.Context, u *user.User) (*AuthResult, error) {
	session, err := s.sessions.CreateSession(ctx, u.ID)
	if err != nil {
		s.logger.Error("failed to create session", "error", err, "user_id", u.ID)
		return nil, internal.NewInternalError("Internal server error", err)
	}
	s.observer.ObserveSessionCreated()

	return &AuthResult{
		Session:   session,
		User:      u,
		HotelName: s.hotelName(ctx, u),
	}, nil
}

func (s *Service) ensureEmailAvailable(ctx context.Context, email string) error {
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		s.logger.Error("failed to check email availability", "error", err)
		return internal.NewInternalError("Internal server error", err)
	}
	if exists {
		return internal.ErrEmailExists
	}
	return nil
}

// hotelName is best effort; a lookup failure only drops the name from the summary.
func (s *Service) hotelName(ctx context.Context, u *user.User) *string {
	if !u.HasHotel() {
		return nil
	}
	hotel, err := s.hotels.GetByID(ctx, *u.HotelID)
	if err != nil {
		s.logger.Warn("failed to load hotel name", "error", err, "hotel_id", *u.HotelID)
		return nil
	}
	if hotel == nil {
		return nil
	}
	return &hotel.Name
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
