package user

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash *string   `gorm:"column:password_hash"`
	Fullname     string    `gorm:"column:fullname;not null"`
	Role         string    `gorm:"column:role;not null"`
	HotelID      *string   `gorm:"column:hotel_id;type:uuid;index"`
	IsApproved   bool      `gorm:"column:is_approved;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Staff is the employment profile kept alongside a non-owner user.
type Staff struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Fullname  string    `gorm:"column:fullname;not null"`
	Email     string    `gorm:"column:email;not null"`
	Phone     *string   `gorm:"column:phone"`
	HotelID   string    `gorm:"column:hotel_id;type:uuid;not null;index"`
	Role      string    `gorm:"column:role;not null"`
	UserID    string    `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	Status    string    `gorm:"column:status;not null;default:INACTIVE"`
	HireDate  time.Time `gorm:"column:hire_date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Staff) TableName() string {
	return "staff"
}

type Session struct {
	ID        string     `gorm:"primaryKey"`
	UserID    string     `gorm:"column:user_id;type:uuid;not null;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

// StaffMember is a user of a hotel joined with its optional staff profile.
type StaffMember struct {
	ID         string     `gorm:"column:id"`
	Fullname   string     `gorm:"column:fullname"`
	Email      string     `gorm:"column:email"`
	Role       string     `gorm:"column:role"`
	HotelID    *string    `gorm:"column:hotel_id"`
	IsApproved bool       `gorm:"column:is_approved"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	Phone      *string    `gorm:"column:phone"`
	Status     *string    `gorm:"column:status"`
	HireDate   *time.Time `gorm:"column:hire_date"`
}
