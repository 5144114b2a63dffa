package booking

import (
	"math"
	"strings"
	"time"

	"github.com/frahmantamala/hotel-pms/internal/core/common/validation"
	bookingDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/booking"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

var Statuses = []string{string(StatusPending), string(StatusConfirmed), string(StatusCancelled)}

func ParseStatus(s string) (Status, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, st := range Statuses {
		if v == st {
			return Status(v), true
		}
	}
	return "", false
}

type Booking struct {
	ID           string    `json:"id"`
	HotelID      string    `json:"hotelId"`
	RoomID       string    `json:"roomId"`
	RoomNumber   string    `json:"roomNumber,omitempty"`
	RoomType     string    `json:"roomType,omitempty"`
	GuestName    string    `json:"guestName"`
	GuestEmail   string    `json:"guestEmail"`
	CheckInDate  string    `json:"checkInDate"`
	CheckOutDate string    `json:"checkOutDate"`
	TotalPrice   int64     `json:"totalPrice"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromDataModel(b *bookingDatamodel.Booking) *Booking {
	return &Booking{
		ID:           b.ID,
		HotelID:      b.HotelID,
		RoomID:       b.RoomID,
		GuestName:    b.GuestName,
		GuestEmail:   b.GuestEmail,
		CheckInDate:  formatDate(b.CheckIn),
		CheckOutDate: formatDate(b.CheckOut),
		TotalPrice:   b.TotalPrice,
		Status:       Status(b.Status),
		CreatedAt:    b.CreatedAt,
	}
}

func FromListRow(row *bookingDatamodel.BookingWithRoom) *Booking {
	b := FromDataModel(&row.Booking)
	b.RoomNumber = row.RoomNumber
	b.RoomType = row.RoomType
	return b
}

const secondsPerDay = 24 * 60 * 60

// Nights counts calendar nights between two UTC midnight dates, including
// spans longer than a time.Duration can hold.
func Nights(checkIn, checkOut time.Time) int64 {
	return (checkOut.Unix() - checkIn.Unix()) / secondsPerDay
}

// StayTotal returns nights times rate, or false when the product overflows.
func StayTotal(nights, rate int64) (int64, bool) {
	if nights < 0 || rate < 0 {
		return 0, false
	}
	if rate > 0 && nights > math.MaxInt64/rate {
		return 0, false
	}
	return nights * rate, true
}

func formatDate(t time.Time) string {
	return t.UTC().Format(validation.DateLayout)
}
