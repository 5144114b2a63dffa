package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/core/common/dberr"
	hotelDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/hotel"
	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
)

// Repository backs the auth flows and the session store with the users, staff,
// hotels and sessions tables.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateOwner(ctx context.Context, hotel *hotelDatamodel.Hotel, owner *userDatamodel.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(hotel).Error; err != nil {
			return err
		}
		return tx.Create(owner).Error
	})
	return translateUserError(err)
}

func (r *Repository) CreateStaff(ctx context.Context, u *userDatamodel.User, profile *userDatamodel.Staff) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Select("*") keeps is_approved=false from being replaced by the column default
		if err := tx.Select("*").Create(u).Error; err != nil {
			return err
		}
		return tx.Create(profile).Error
	})
	return translateUserError(err)
}

func (r *Repository) CreateSession(ctx context.Context, session *userDatamodel.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *Repository) GetSession(ctx context.Context, id string) (*userDatamodel.Session, error) {
	var s userDatamodel.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&userDatamodel.Session{}).Error
}

func (r *Repository) DeleteUserSessions(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&userDatamodel.Session{}).Error
}

func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Delete(&userDatamodel.Session{})
	return res.RowsAffected, res.Error
}

// translateUserError maps the users.email unique index onto the conflict the
// pre-check would have produced, for signups that race each other.
func translateUserError(err error) error {
	if err == nil {
		return nil
	}
	if dberr.IsUniqueViolation(err) {
		return internal.ErrEmailExists.WithCause(err)
	}
	return err
}
