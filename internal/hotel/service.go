package hotel

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/frahmantamala/hotel-pms/internal"
	hotelDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/hotel"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
)

type Repository interface {
	// GetByID returns nil, nil when the hotel does not exist.
	GetByID(ctx context.Context, id string) (*hotelDatamodel.Hotel, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetPublic backs the invite-link landing page; it needs no session.
func (s *Service) GetPublic(ctx context.Context, id string) (*PublicHotel, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, internal.NewValidationError("Invalid hotel ID format", internal.ErrCodeInvalidID)
	}

	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	public := h.Public()
	return &public, nil
}

// GetForUser returns the caller's own hotel including subscription fields.
func (s *Service) GetForUser(ctx context.Context, u *user.User) (*Hotel, error) {
	if !u.HasHotel() {
		return nil, internal.ErrNoHotel
	}
	return s.load(ctx, *u.HotelID)
}

func (s *Service) load(ctx context.Context, id string) (*Hotel, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load hotel", "error", err, "hotel_id", id)
		return nil, internal.NewInternalError("Failed to load hotel information", err)
	}
	if record == nil {
		return nil, internal.ErrHotelNotFound
	}
	return FromDataModel(record), nil
}
