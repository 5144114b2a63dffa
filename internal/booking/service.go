package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/common/validation"
	bookingDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/booking"
	roomDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/room"
	"github.com/frahmantamala/hotel-pms/internal/core/events"
)

type Repository interface {
	// ListByHotel joins the booked room and orders by check-in, newest first.
	ListByHotel(ctx context.Context, hotelID string) ([]*bookingDatamodel.BookingWithRoom, error)
	// GetByID returns nil, nil when the booking does not exist.
	GetByID(ctx context.Context, id string) (*bookingDatamodel.BookingWithRoom, error)
	// Create reports a room outside the booking's hotel as internal.ErrRoomNotFound.
	Create(ctx context.Context, b *bookingDatamodel.Booking) error
	UpdateStatus(ctx context.Context, hotelID, id, status string) error
}

// RoomLookup resolves the room a booking is made against.
type RoomLookup interface {
	GetByID(ctx context.Context, id string) (*roomDatamodel.Room, error)
}

// Observer receives booking outcomes; *metrics.Metrics satisfies it.
type Observer interface {
	ObserveBookingCreated()
}

type Service struct {
	repo      Repository
	rooms     RoomLookup
	publisher events.Publisher
	observer  Observer
	logger    *slog.Logger
}

func NewService(repo Repository, rooms RoomLookup, publisher events.Publisher, observer Observer, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		rooms:     rooms,
		publisher: publisher,
		observer:  observer,
		logger:    logger,
	}
}

// CreateBooking books a room of the caller's hotel. The total is always
// nights times the room's nightly rate; a differing client total is rejected.
func (s *Service) CreateBooking(ctx context.Context, hotelID string, dto CreateBookingDTO) (*Booking, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	checkIn, _ := validation.ParseDate(dto.CheckInDate)
	checkOut, _ := validation.ParseDate(dto.CheckOutDate)
	status := StatusPending
	if dto.Status != nil {
		if parsed, ok := ParseStatus(*dto.Status); ok {
			status = parsed
		}
	}

	room, err := s.rooms.GetByID(ctx, dto.RoomID)
	if err != nil {
		s.logger.Error("failed to load room for booking", "error", err, "room_id", dto.RoomID)
		return nil, internal.NewInternalError("Failed to create booking", err)
	}
	if room == nil || room.HotelID != hotelID {
		s.logger.Warn("booking rejected: room outside tenant", "room_id", dto.RoomID, "hotel_id", hotelID)
		return nil, internal.ErrRoomNotFound
	}

	nights := Nights(checkIn, checkOut)
	total, ok := StayTotal(nights, room.RatePerNight)
	if !ok {
		return nil, internal.NewValidationFieldError("checkOutDate",
			fmt.Sprintf("Stay of %d night(s) is too long to price", nights),
			internal.ErrCodeStayTooLong)
	}
	if dto.TotalPrice != nil && *dto.TotalPrice != total {
		return nil, internal.NewValidationFieldError("totalPrice",
			fmt.Sprintf("Total price must be %d (%d night(s) at %d)", total, nights, room.RatePerNight),
			internal.ErrCodePriceMismatch)
	}

	record := &bookingDatamodel.Booking{
		ID:         uuid.NewString(),
		HotelID:    hotelID,
		RoomID:     room.ID,
		GuestName:  strings.TrimSpace(dto.GuestName),
		GuestEmail: strings.ToLower(strings.TrimSpace(dto.GuestEmail)),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: total,
		Status:     string(status),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create booking", "error", err, "room_id", room.ID)
		return nil, internal.NewInternalError("Failed to create booking", err)
	}

	if s.observer != nil {
		s.observer.ObserveBookingCreated()
	}
	s.logger.Info("booking created", "booking_id", record.ID, "room_id", room.ID, "nights", nights)

	created := FromDataModel(record)
	created.RoomNumber = room.RoomNumber
	created.RoomType = room.Type

	if s.publisher != nil {
		event := events.NewBookingCreatedEvent(created.ID, hotelID, room.ID, created.GuestName, created.GuestEmail,
			created.CheckInDate, created.CheckOutDate, created.TotalPrice)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish booking event", "error", err, "booking_id", created.ID)
		}
	}

	return created, nil
}

func (s *Service) ListBookings(ctx context.Context, hotelID string) ([]*Booking, error) {
	rows, err := s.repo.ListByHotel(ctx, hotelID)
	if err != nil {
		s.logger.Error("failed to list bookings", "error", err, "hotel_id", hotelID)
		return nil, internal.NewInternalError("Failed to fetch bookings", err)
	}

	bookings := make([]*Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, FromListRow(row))
	}
	return bookings, nil
}

func (s *Service) GetBooking(ctx context.Context, hotelID, bookingID string) (*Booking, error) {
	row, err := s.loadOwned(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}
	return FromListRow(row), nil
}

func (s *Service) UpdateStatus(ctx context.Context, hotelID, bookingID string, dto UpdateStatusDTO) (*Booking, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	status, _ := ParseStatus(dto.Status)

	row, err := s.loadOwned(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, hotelID, bookingID, string(status)); err != nil {
		s.logger.Error("failed to update booking status", "error", err, "booking_id", bookingID)
		return nil, internal.NewInternalError("Failed to update booking", err)
	}

	s.logger.Info("booking status changed", "booking_id", bookingID, "from", row.Status, "to", status)
	row.Status = string(status)
	return FromListRow(row), nil
}

func (s *Service) loadOwned(ctx context.Context, hotelID, bookingID string) (*bookingDatamodel.BookingWithRoom, error) {
	if _, err := uuid.Parse(bookingID); err != nil {
		return nil, internal.ErrBookingNotFound
	}

	row, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("failed to load booking", "error", err, "booking_id", bookingID)
		return nil, internal.NewInternalError("Failed to fetch booking", err)
	}
	if row == nil || row.HotelID != hotelID {
		return nil, internal.ErrBookingNotFound
	}
	return row, nil
}
