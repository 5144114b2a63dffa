package room

import (
	"strings"
	"time"

	roomDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/room"
)

type Type string

const (
	TypeSingle   Type = "SINGLE"
	TypeDouble   Type = "DOUBLE"
	TypeSuite    Type = "SUITE"
	TypeDeluxe   Type = "DELUXE"
	TypeStandard Type = "STANDARD"
)

var Types = []string{string(TypeSingle), string(TypeDouble), string(TypeSuite), string(TypeDeluxe), string(TypeStandard)}

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusMaintenance Status = "MAINTENANCE"
	StatusCleaning    Status = "CLEANING"
	StatusReserved    Status = "RESERVED"
)

var Statuses = []string{string(StatusAvailable), string(StatusOccupied), string(StatusMaintenance), string(StatusCleaning), string(StatusReserved)}

// ParseType accepts any casing and returns the stored upper-case form.
func ParseType(s string) (Type, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range Types {
		if v == t {
			return Type(v), true
		}
	}
	return "", false
}

func ParseStatus(s string) (Status, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, st := range Statuses {
		if v == st {
			return Status(v), true
		}
	}
	return "", false
}

type Room struct {
	ID           string    `json:"id"`
	HotelID      string    `json:"hotel_id"`
	RoomNumber   string    `json:"room_number"`
	Type         Type      `json:"type"`
	RatePerNight int64     `json:"rate_per_night"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromDataModel(r *roomDatamodel.Room) *Room {
	return &Room{
		ID:           r.ID,
		HotelID:      r.HotelID,
		RoomNumber:   r.RoomNumber,
		Type:         Type(r.Type),
		RatePerNight: r.RatePerNight,
		Status:       Status(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
