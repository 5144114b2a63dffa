package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/hotel-pms/internal/core/common/dberr"
	roomDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/room"
	"github.com/frahmantamala/hotel-pms/internal/room"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID string) ([]*roomDatamodel.Room, error) {
	var rooms []*roomDatamodel.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*roomDatamodel.Room, error) {
	var rm roomDatamodel.Room
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rm, nil
}

// ExistingNumbers returns the subset of numbers already used in the hotel, sorted.
func (r *RoomRepository) ExistingNumbers(ctx context.Context, hotelID string, numbers []string) ([]string, error) {
	if len(numbers) == 0 {
		return nil, nil
	}
	var existing []string
	err := r.db.WithContext(ctx).
		Model(&roomDatamodel.Room{}).
		Where("hotel_id = ? AND room_number IN ?", hotelID, numbers).
		Order("room_number ASC").
		Pluck("room_number", &existing).Error
	return existing, err
}

func (r *RoomRepository) CreateBatch(ctx context.Context, rooms []*roomDatamodel.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rooms).Error
	})
	if err != nil && dberr.IsUniqueViolation(err) {
		return errors.Join(room.ErrRoomNumberTaken, err)
	}
	return err
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, hotelID, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&roomDatamodel.Room{}).
		Where("id = ? AND hotel_id = ?", id, hotelID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
