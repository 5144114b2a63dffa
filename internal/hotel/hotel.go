package hotel

import (
	"time"

	hotelDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/hotel"
)

// Hotel is the tenant as seen by its own members.
type Hotel struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Address            *string   `json:"address"`
	RoomCount          int       `json:"room_count"`
	HotelType          *string   `json:"hotel_type,omitempty"`
	SubscriptionStatus string    `json:"subscription_status"`
	SubscriptionTier   *string   `json:"subscription_tier"`
	CreatedAt          time.Time `json:"created_at"`
}

// PublicHotel is what an invite link may reveal to anyone holding the id.
type PublicHotel struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   *string `json:"address"`
	RoomCount int     `json:"room_count"`
}

func (h *Hotel) Public() PublicHotel {
	return PublicHotel{
		ID:        h.ID,
		Name:      h.Name,
		Address:   h.Address,
		RoomCount: h.RoomCount,
	}
}

func FromDataModel(h *hotelDatamodel.Hotel) *Hotel {
	return &Hotel{
		ID:                 h.ID,
		Name:               h.Name,
		Address:            h.Address,
		RoomCount:          h.RoomCount,
		HotelType:          h.HotelType,
		SubscriptionStatus: h.SubscriptionStatus,
		SubscriptionTier:   h.SubscriptionTier,
		CreatedAt:          h.CreatedAt,
	}
}
