package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/common/dberr"
	bookingDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/booking"
)

const selectWithRoom = "bookings.*, rooms.room_number AS room_number, rooms.type AS room_type"

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) withRoom(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&bookingDatamodel.Booking{}).
		Select(selectWithRoom).
		Joins("LEFT JOIN rooms ON rooms.id = bookings.room_id")
}

func (r *BookingRepository) ListByHotel(ctx context.Context, hotelID string) ([]*bookingDatamodel.BookingWithRoom, error) {
	var rows []*bookingDatamodel.BookingWithRoom
	err := r.withRoom(ctx).
		Where("bookings.hotel_id = ?", hotelID).
		Order("bookings.check_in DESC").
		Order("bookings.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*bookingDatamodel.BookingWithRoom, error) {
	var rows []*bookingDatamodel.BookingWithRoom
	err := r.withRoom(ctx).
		Where("bookings.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Create relies on the (room_id, hotel_id) foreign key to refuse rooms of other hotels.
func (r *BookingRepository) Create(ctx context.Context, b *bookingDatamodel.Booking) error {
	err := r.db.WithContext(ctx).Create(b).Error
	if err != nil && dberr.IsForeignKeyViolation(err) {
		return internal.ErrRoomNotFound.WithCause(err)
	}
	return err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, hotelID, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&bookingDatamodel.Booking{}).
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
