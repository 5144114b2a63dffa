package postgres

import (
	"context"

	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
)

const selectMember = "users.id, users.fullname, users.email, users.role, users.hotel_id, users.is_approved, users.created_at, " +
	"staff.phone AS phone, staff.status AS status, staff.hire_date AS hire_date"

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) members(ctx context.Context, hotelID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Select(selectMember).
		Joins("LEFT JOIN staff ON staff.user_id = users.id").
		Where("users.hotel_id = ?", hotelID)
}

func (r *StaffRepository) ListByHotel(ctx context.Context, hotelID string) ([]*userDatamodel.StaffMember, error) {
	var members []*userDatamodel.StaffMember
	err := r.members(ctx, hotelID).
		Order("users.created_at DESC").
		Scan(&members).Error
	return members, err
}

func (r *StaffRepository) GetMember(ctx context.Context, hotelID, userID string) (*userDatamodel.StaffMember, error) {
	var members []*userDatamodel.StaffMember
	err := r.members(ctx, hotelID).
		Where("users.id = ?", userID).
		Limit(1).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	return members[0], nil
}

func (r *StaffRepository) SetApproval(ctx context.Context, userID string, approved bool, profileStatus string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userDatamodel.User{}).
			Where("id = ?", userID).
			Update("is_approved", approved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&userDatamodel.Staff{}).
			Where("user_id = ?", userID).
			Update("status", profileStatus).Error
	})
}
