package room

import "time"

type Room struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	HotelID      string    `gorm:"column:hotel_id;type:uuid;not null;uniqueIndex:idx_rooms_hotel_number"`
	RoomNumber   string    `gorm:"column:room_number;not null;uniqueIndex:idx_rooms_hotel_number"`
	Type         string    `gorm:"column:type;not null"`
	RatePerNight int64     `gorm:"column:rate_per_night;not null"`
	Status       string    `gorm:"column:status;not null;default:AVAILABLE"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Room) TableName() string {
	return "rooms"
}
