package auth

import (
	"strings"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/common/validation"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
)

const StaffPendingMessage = "Staff account created! Your account is pending approval from a manager or owner."

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8).MaxBytes(MaxPasswordBytes)
	return v.Validate()
}

// SignupDTO creates a hotel together with its owner account.
type SignupDTO struct {
	Fullname  string  `json:"fullname"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	HotelName string  `json:"hotelName"`
	Location  *string `json:"location,omitempty"`
	RoomCount *int    `json:"roomCount,omitempty"`
	HotelType *string `json:"hotelType,omitempty"`
}

func (d SignupDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("fullname", strings.TrimSpace(d.Fullname)).Required().MinLength(2)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8).MaxBytes(MaxPasswordBytes)
	v.Field("hotelName", strings.TrimSpace(d.HotelName)).Required().MinLength(2)
	v.Field("roomCount", d.RoomCount).Optional().Positive()
	return v.Validate()
}

// StaffSignupDTO registers a pending staff account through a hotel invite link.
type StaffSignupDTO struct {
	Fullname string  `json:"fullname"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password"`
	HotelID  string  `json:"hotelId"`
	Role     string  `json:"role"`
}

func (d StaffSignupDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("fullname", strings.TrimSpace(d.Fullname)).Required().MinLength(2)
	v.Field("email", d.Email).Required().Email()
	v.Field("phone", d.Phone).Optional().MinLength(10)
	v.Field("password", d.Password).Required().MinLength(6).MaxBytes(MaxPasswordBytes)
	v.Field("hotelId", d.HotelID).Required().UUID()
	v.Field("role", d.Role).Required().OneOf(user.RoleNames(user.StaffSignupRoles)...)
	return v.Validate()
}

// UserSummary is the caller view returned by the auth endpoints.
type UserSummary struct {
	ID         string    `json:"id"`
	Fullname   string    `json:"fullname"`
	Email      string    `json:"email"`
	Role       user.Role `json:"role"`
	HotelID    *string   `json:"hotelId"`
	HotelName  *string   `json:"hotelName,omitempty"`
	IsApproved bool      `json:"isApproved"`
}

func NewUserSummary(u *user.User, hotelName *string) UserSummary {
	return UserSummary{
		ID:         u.ID,
		Fullname:   u.Fullname,
		Email:      u.Email,
		Role:       u.Role,
		HotelID:    u.HotelID,
		HotelName:  hotelName,
		IsApproved: u.IsApproved,
	}
}

type AuthResponse struct {
	Success bool        `json:"success"`
	User    UserSummary `json:"user"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *UserSummary `json:"user,omitempty"`
}
