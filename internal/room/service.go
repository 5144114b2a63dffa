package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/frahmantamala/hotel-pms/internal"
	roomDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/room"
)

// ErrRoomNumberTaken is returned by the repository when the (hotel, room number)
// unique index rejects an insert.
var ErrRoomNumberTaken = errors.New("room number already exists in hotel")

type Repository interface {
	// ListByHotel orders rooms by room number ascending.
	ListByHotel(ctx context.Context, hotelID string) ([]*roomDatamodel.Room, error)
	// GetByID returns nil, nil when the room does not exist.
	GetByID(ctx context.Context, id string) (*roomDatamodel.Room, error)
	ExistingNumbers(ctx context.Context, hotelID string, numbers []string) ([]string, error)
	// CreateBatch inserts every room or none of them.
	CreateBatch(ctx context.Context, rooms []*roomDatamodel.Room) error
	UpdateStatus(ctx context.Context, hotelID, id, status string) error
}

// Observer receives inventory outcomes; *metrics.Metrics satisfies it.
type Observer interface {
	ObserveRoomsAdded(n int)
}

type Service struct {
	repo     Repository
	observer Observer
	logger   *slog.Logger
}

func NewService(repo Repository, observer Observer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		observer: observer,
		logger:   logger,
	}
}

// AddRooms inserts all requested rooms or none. Every number that already
// exists in the hotel is reported in a single conflict.
func (s *Service) AddRooms(ctx context.Context, hotelID string, dto AddRoomsDTO) (*AddRoomsResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	roomType, _ := ParseType(dto.Type)
	status := StatusAvailable
	if dto.Status != nil {
		if parsed, ok := ParseStatus(*dto.Status); ok {
			status = parsed
		}
	}
	numbers := dto.normalizedNumbers()

	if err := s.rejectExisting(ctx, hotelID, numbers); err != nil {
		return nil, err
	}

	rooms := make([]*roomDatamodel.Room, len(numbers))
	for i, n := range numbers {
		rooms[i] = &roomDatamodel.Room{
			ID:           uuid.NewString(),
			HotelID:      hotelID,
			RoomNumber:   n,
			Type:         string(roomType),
			RatePerNight: dto.Price,
			Status:       string(status),
		}
	}

	if err := s.repo.CreateBatch(ctx, rooms); err != nil {
		if errors.Is(err, ErrRoomNumberTaken) {
			// lost a race against a concurrent insert; rebuild the full list
			if conflict := s.rejectExisting(ctx, hotelID, numbers); conflict != nil {
				return nil, conflict
			}
			return nil, duplicateRoomsError(nil)
		}
		s.logger.Error("failed to add rooms", "error", err, "hotel_id", hotelID)
		return nil, internal.NewInternalError("Failed to add rooms", err)
	}

	if s.observer != nil {
		s.observer.ObserveRoomsAdded(len(rooms))
	}
	s.logger.Info("rooms added", "hotel_id", hotelID, "count", len(rooms))

	return &AddRoomsResponse{
		Success: true,
		Count:   len(rooms),
		Message: fmt.Sprintf("%d room(s) added successfully", len(rooms)),
	}, nil
}

func (s *Service) ListRooms(ctx context.Context, hotelID string) ([]*Room, error) {
	records, err := s.repo.ListByHotel(ctx, hotelID)
	if err != nil {
		s.logger.Error("failed to list rooms", "error", err, "hotel_id", hotelID)
		return nil, internal.NewInternalError("Failed to fetch rooms", err)
	}

	rooms := make([]*Room, 0, len(records))
	for _, r := range records {
		rooms = append(rooms, FromDataModel(r))
	}
	return rooms, nil
}

// GetRoom hides rooms of other hotels behind the same not-found as missing ones.
func (s *Service) GetRoom(ctx context.Context, hotelID, roomID string) (*Room, error) {
	record, err := s.loadOwned(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(record), nil
}

func (s *Service) UpdateStatus(ctx context.Context, hotelID, roomID string, dto UpdateStatusDTO) (*Room, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	status, _ := ParseStatus(dto.Status)

	record, err := s.loadOwned(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, hotelID, roomID, string(status)); err != nil {
		s.logger.Error("failed to update room status", "error", err, "room_id", roomID)
		return nil, internal.NewInternalError("Failed to update room", err)
	}

	s.logger.Info("room status changed", "room_id", roomID, "from", record.Status, "to", status)
	record.Status = string(status)
	return FromDataModel(record), nil
}

func (s *Service) loadOwned(ctx context.Context, hotelID, roomID string) (*roomDatamodel.Room, error) {
	if _, err := uuid.Parse(roomID); err != nil {
		return nil, internal.ErrRoomNotFound
	}

	record, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		s.logger.Error("failed to load room", "error", err, "room_id", roomID)
		return nil, internal.NewInternalError("Failed to fetch room", err)
	}
	if record == nil || record.HotelID != hotelID {
		return nil, internal.ErrRoomNotFound
	}
	return record, nil
}

func (s *Service) rejectExisting(ctx context.Context, hotelID string, numbers []string) error {
	existing, err := s.repo.ExistingNumbers(ctx, hotelID, numbers)
	if err != nil {
		s.logger.Error("failed to check existing room numbers", "error", err, "hotel_id", hotelID)
		return internal.NewInternalError("Failed to add rooms", err)
	}
	if len(existing) > 0 {
		s.logger.Warn("room numbers already exist", "hotel_id", hotelID, "room_numbers", existing)
		return duplicateRoomsError(existing)
	}
	return nil
}

func duplicateRoomsError(numbers []string) *internal.AppError {
	if len(numbers) == 0 {
		return internal.NewConflictError("Room numbers already exist", internal.ErrCodeDuplicateRooms)
	}
	return internal.NewConflictError(
		fmt.Sprintf("Room numbers already exist: %s", strings.Join(numbers, ", ")),
		internal.ErrCodeDuplicateRooms,
	).WithDetails(DuplicateRoomsDetails{RoomNumbers: numbers})
}
