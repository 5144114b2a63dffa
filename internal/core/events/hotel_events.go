package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeStaffSignedUp       = "staff.signed_up"
	EventTypeStaffApprovalChange = "staff.approval_changed"
	EventTypeBookingCreated      = "booking.created"
)

type StaffSignedUpEvent struct {
	BaseEvent
	UserID   string `json:"user_id"`
	HotelID  string `json:"hotel_id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

func NewStaffSignedUpEvent(userID, hotelID, email, fullname, role string) *StaffSignedUpEvent {
	return &StaffSignedUpEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeStaffSignedUp,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":  userID,
				"hotel_id": hotelID,
				"email":    email,
				"role":     role,
			},
		},
		UserID:   userID,
		HotelID:  hotelID,
		Email:    email,
		Fullname: fullname,
		Role:     role,
	}
}

type StaffApprovalChangedEvent struct {
	BaseEvent
	UserID     string `json:"user_id"`
	HotelID    string `json:"hotel_id"`
	Email      string `json:"email"`
	IsApproved bool   `json:"is_approved"`
	ChangedBy  string `json:"changed_by"`
}

func NewStaffApprovalChangedEvent(userID, hotelID, email string, isApproved bool, changedBy string) *StaffApprovalChangedEvent {
	return &StaffApprovalChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeStaffApprovalChange,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":     userID,
				"hotel_id":    hotelID,
				"is_approved": isApproved,
				"changed_by":  changedBy,
			},
		},
		UserID:     userID,
		HotelID:    hotelID,
		Email:      email,
		IsApproved: isApproved,
		ChangedBy:  changedBy,
	}
}

type BookingCreatedEvent struct {
	BaseEvent
	BookingID  string `json:"booking_id"`
	HotelID    string `json:"hotel_id"`
	RoomID     string `json:"room_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	TotalPrice int64  `json:"total_price"`
}

func NewBookingCreatedEvent(bookingID, hotelID, roomID, guestName, guestEmail, checkIn, checkOut string, totalPrice int64) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBookingCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"booking_id":  bookingID,
				"hotel_id":    hotelID,
				"room_id":     roomID,
				"check_in":    checkIn,
				"check_out":   checkOut,
				"total_price": totalPrice,
			},
		},
		BookingID:  bookingID,
		HotelID:    hotelID,
		RoomID:     roomID,
		GuestName:  guestName,
		GuestEmail: guestEmail,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: totalPrice,
	}
}
