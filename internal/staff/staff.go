package staff

import (
	"time"

	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Member is one account of a hotel as shown on the staff page.
type Member struct {
	ID         string     `json:"id"`
	Fullname   string     `json:"fullname"`
	Email      string     `json:"email"`
	Role       user.Role  `json:"role"`
	IsApproved bool       `json:"is_approved"`
	CreatedAt  time.Time  `json:"created_at"`
	Phone      *string    `json:"phone,omitempty"`
	Status     *string    `json:"status,omitempty"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
}

func FromDataModel(m *userDatamodel.StaffMember) *Member {
	role, _ := user.ParseRole(m.Role)
	return &Member{
		ID:         m.ID,
		Fullname:   m.Fullname,
		Email:      m.Email,
		Role:       role,
		IsApproved: m.IsApproved,
		CreatedAt:  m.CreatedAt,
		Phone:      m.Phone,
		Status:     m.Status,
		HireDate:   m.HireDate,
	}
}

// profileStatus is the staff profile status that mirrors an approval flag.
func profileStatus(approved bool) string {
	if approved {
		return StatusActive
	}
	return StatusInactive
}
