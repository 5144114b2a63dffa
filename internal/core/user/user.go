package user

import (
	"strings"
	"time"

	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
)

type Role string

const (
	RoleOwner     Role = "owner"
	RoleManager   Role = "manager"
	RoleStaff     Role = "staff"
	RoleFrontdesk Role = "frontdesk"
	RoleCleaner   Role = "cleaner"
)

var allRoles = []Role{RoleOwner, RoleManager, RoleStaff, RoleFrontdesk, RoleCleaner}

// StaffSignupRoles are the roles a hotel invite link may grant.
var StaffSignupRoles = []Role{RoleStaff, RoleManager, RoleFrontdesk, RoleCleaner}

// ParseRole is the single place role strings are interpreted. Matching is
// case-insensitive so legacy upper-case values still resolve.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range allRoles {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

func (r Role) CanApproveStaff() bool {
	return r.In(RoleOwner, RoleManager)
}

func RoleNames(roles []Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// User is the live identity record of a caller, re-read from the store on every request.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Fullname   string    `json:"fullname"`
	Role       Role      `json:"role"`
	HotelID    *string   `json:"hotelId"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) HasHotel() bool {
	return u.HotelID != nil && *u.HotelID != ""
}

func FromDataModel(u *userDatamodel.User) *User {
	role, _ := ParseRole(u.Role)
	return &User{
		ID:         u.ID,
		Email:      u.Email,
		Fullname:   u.Fullname,
		Role:       role,
		HotelID:    u.HotelID,
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt,
	}
}

// NormalizeEmail is the case-folded form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
