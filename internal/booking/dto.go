package booking

import (
	"strings"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/common/validation"
)

// CreateBookingDTO carries a new reservation. TotalPrice is optional; when
// given it must equal the server-side nights times nightly rate.
type CreateBookingDTO struct {
	RoomID       string  `json:"roomId"`
	GuestName    string  `json:"guestName"`
	GuestEmail   string  `json:"guestEmail"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	TotalPrice   *int64  `json:"totalPrice,omitempty"`
	Status       *string `json:"status,omitempty"`
}

func (d CreateBookingDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("roomId", d.RoomID).Required().UUID()
	v.Field("guestName", strings.TrimSpace(d.GuestName)).Required().MinLength(2).MaxLength(255)
	v.Field("guestEmail", strings.TrimSpace(d.GuestEmail)).Required().Email()
	v.Field("checkInDate", d.CheckInDate).Required().Date()
	v.Field("checkOutDate", d.CheckOutDate).Required().Date().Custom(d.checkOutAfterCheckIn)
	v.Field("totalPrice", d.TotalPrice).Optional().Positive()
	v.Field("status", d.Status).Optional().OneOf(Statuses...)
	return v.Validate()
}

func (d CreateBookingDTO) checkOutAfterCheckIn(interface{}) *internal.AppError {
	checkIn, err := validation.ParseDate(d.CheckInDate)
	if err != nil {
		return nil
	}
	checkOut, err := validation.ParseDate(d.CheckOutDate)
	if err != nil {
		return nil
	}
	if !checkOut.After(checkIn) {
		return internal.NewValidationFieldError("checkOutDate", "Check-out date must be after check-in date", internal.ErrCodeInvalidDateRange)
	}
	return nil
}

type CreateBookingResponse struct {
	Success bool     `json:"success"`
	Booking *Booking `json:"booking"`
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d UpdateStatusDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("status", d.Status).Required().OneOf(Statuses...)
	return v.Validate()
}
