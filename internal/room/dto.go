package room

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/common/validation"
)

const maxRoomNumberLength = 10

// AddRoomsDTO adds one room per number, all sharing type, rate and status.
type AddRoomsDTO struct {
	RoomNumbers []string `json:"roomNumbers"`
	Type        string   `json:"type"`
	Price       int64    `json:"price"`
	Status      *string  `json:"status,omitempty"`
}

func (d AddRoomsDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("roomNumbers", d.RoomNumbers).Required().MinItems(1).EachLength(1, maxRoomNumberLength).Custom(uniqueNumbers)
	v.Field("type", d.Type).Required().OneOf(Types...)
	v.Field("price", d.Price).Required().Positive()
	v.Field("status", d.Status).Optional().OneOf(Statuses...)
	return v.Validate()
}

// normalizedNumbers trims every room number; order is preserved.
func (d AddRoomsDTO) normalizedNumbers() []string {
	out := make([]string, len(d.RoomNumbers))
	for i, n := range d.RoomNumbers {
		out[i] = strings.TrimSpace(n)
	}
	return out
}

func uniqueNumbers(value interface{}) *internal.AppError {
	numbers, ok := value.([]string)
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(numbers))
	var repeated []string
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if seen[n] {
			repeated = append(repeated, n)
			continue
		}
		seen[n] = true
	}
	if len(repeated) > 0 {
		return internal.NewValidationFieldError("roomNumbers",
			fmt.Sprintf("Room numbers repeated in request: %s", strings.Join(repeated, ", ")), internal.ErrCodeValidationFailed)
	}
	return nil
}

type AddRoomsResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// DuplicateRoomsDetails lists every room number that already exists in the hotel.
type DuplicateRoomsDetails struct {
	RoomNumbers []string `json:"roomNumbers"`
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d UpdateStatusDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("status", d.Status).Required().OneOf(Statuses...)
	return v.Validate()
}
