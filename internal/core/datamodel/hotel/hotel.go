package hotel

import "time"

type Hotel struct {
	ID                 string    `gorm:"primaryKey;type:uuid"`
	Name               string    `gorm:"column:name;not null"`
	Address            *string   `gorm:"column:address"`
	RoomCount          int       `gorm:"column:room_count;not null;default:0"`
	HotelType          *string   `gorm:"column:hotel_type"`
	SubscriptionStatus string    `gorm:"column:subscription_status;not null;default:trial"`
	SubscriptionTier   *string   `gorm:"column:subscription_tier"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Hotel) TableName() string {
	return "hotels"
}
