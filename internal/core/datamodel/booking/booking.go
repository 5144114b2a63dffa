package booking

import "time"

type Booking struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	HotelID    string    `gorm:"column:hotel_id;type:uuid;not null;index"`
	RoomID     string    `gorm:"column:room_id;type:uuid;not null;index"`
	GuestName  string    `gorm:"column:guest_name;not null"`
	GuestEmail string    `gorm:"column:guest_email;not null"`
	CheckIn    time.Time `gorm:"column:check_in;type:date;not null"`
	CheckOut   time.Time `gorm:"column:check_out;type:date;not null"`
	TotalPrice int64     `gorm:"column:total_price;not null"`
	Status     string    `gorm:"column:status;not null;default:PENDING"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingWithRoom is the list projection joined with the booked room.
type BookingWithRoom struct {
	Booking
	RoomNumber string `gorm:"column:room_number"`
	RoomType   string `gorm:"column:room_type"`
}
