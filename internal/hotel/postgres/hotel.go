package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	hotelDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/hotel"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) GetByID(ctx context.Context, id string) (*hotelDatamodel.Hotel, error) {
	var h hotelDatamodel.Hotel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}
