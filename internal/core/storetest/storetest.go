// Package storetest opens throwaway sqlite databases with the service schema
// for repository and handler tests.
package storetest

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bookingDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/booking"
	hotelDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/hotel"
	roomDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/room"
	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
)

// Open returns an isolated in-memory database. A single connection is kept
// so every query sees the same memory database.
func Open() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&hotelDatamodel.Hotel{},
		&userDatamodel.User{},
		&userDatamodel.Staff{},
		&userDatamodel.Session{},
		&roomDatamodel.Room{},
		&bookingDatamodel.Booking{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SeedHotel inserts a hotel and returns its id.
func SeedHotel(db *gorm.DB, name string) (string, error) {
	h := &hotelDatamodel.Hotel{ID: uuid.NewString(), Name: name, SubscriptionStatus: "trial"}
	if err := db.Create(h).Error; err != nil {
		return "", err
	}
	return h.ID, nil
}

// SeedRoom inserts an AVAILABLE room and returns it.
func SeedRoom(db *gorm.DB, hotelID, number string, rate int64) (*roomDatamodel.Room, error) {
	r := &roomDatamodel.Room{
		ID:           uuid.NewString(),
		HotelID:      hotelID,
		RoomNumber:   number,
		Type:         "STANDARD",
		RatePerNight: rate,
		Status:       "AVAILABLE",
	}
	if err := db.Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}
