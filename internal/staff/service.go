package staff

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hotel-pms/internal"
	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
	"github.com/frahmantamala/hotel-pms/internal/core/events"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
)

type Repository interface {
	// ListByHotel returns every user of the hotel, newest first.
	ListByHotel(ctx context.Context, hotelID string) ([]*userDatamodel.StaffMember, error)
	// GetMember returns nil, nil when the user does not exist in the hotel.
	GetMember(ctx context.Context, hotelID, userID string) (*userDatamodel.StaffMember, error)
	// SetApproval updates the user flag and the staff profile status together.
	SetApproval(ctx context.Context, userID string, approved bool, profileStatus string) error
}

// SessionRevoker ends every session of a user; *auth.SessionManager satisfies it.
type SessionRevoker interface {
	InvalidateUserSessions(ctx context.Context, userID string) error
}

// Observer receives approval outcomes; *metrics.Metrics satisfies it.
type Observer interface {
	ObserveStaffApproval(approved bool)
}

type Service struct {
	repo      Repository
	sessions  SessionRevoker
	publisher events.Publisher
	observer  Observer
	logger    *slog.Logger
}

func NewService(repo Repository, sessions SessionRevoker, publisher events.Publisher, observer Observer, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sessions:  sessions,
		publisher: publisher,
		observer:  observer,
		logger:    logger,
	}
}

func (s *Service) ListStaff(ctx context.Context, hotelID string) ([]*Member, error) {
	records, err := s.repo.ListByHotel(ctx, hotelID)
	if err != nil {
		s.logger.Error("failed to list staff", "error", err, "hotel_id", hotelID)
		return nil, internal.NewInternalError("Failed to fetch staff", err)
	}

	members := make([]*Member, 0, len(records))
	for _, r := range records {
		members = append(members, FromDataModel(r))
	}
	return members, nil
}

// SetApproval lets an owner or manager approve or revoke a user of the same
// hotel. Revoking also ends the target's sessions.
func (s *Service) SetApproval(ctx context.Context, actor *user.User, dto SetApprovalDTO) (*Member, error) {
	if !actor.HasHotel() {
		return nil, internal.ErrNoHotel
	}
	if !actor.Role.CanApproveStaff() {
		return nil, internal.ErrInsufficientRole
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	hotelID := *actor.HotelID
	approved := *dto.IsApproved

	target, err := s.repo.GetMember(ctx, hotelID, dto.StaffID)
	if err != nil {
		s.logger.Error("failed to load staff member", "error", err, "staff_id", dto.StaffID)
		return nil, internal.NewInternalError("Failed to update staff", err)
	}
	if target == nil {
		return nil, internal.ErrStaffNotFound
	}
	if target.ID == actor.ID {
		return nil, internal.ErrSelfApproval
	}
	if role, _ := user.ParseRole(target.Role); role == user.RoleOwner {
		return nil, internal.ErrOwnerApproval
	}

	status := profileStatus(approved)
	if err := s.repo.SetApproval(ctx, target.ID, approved, status); err != nil {
		s.logger.Error("failed to update staff approval", "error", err, "staff_id", target.ID)
		return nil, internal.NewInternalError("Failed to update staff", err)
	}

	if !approved {
		if err := s.sessions.InvalidateUserSessions(ctx, target.ID); err != nil {
			s.logger.Error("failed to revoke sessions of unapproved staff", "error", err, "staff_id", target.ID)
		}
	}

	if s.observer != nil {
		s.observer.ObserveStaffApproval(approved)
	}
	s.logger.Info("staff approval changed", "staff_id", target.ID, "approved", approved, "changed_by", actor.ID)

	if s.publisher != nil {
		event := events.NewStaffApprovalChangedEvent(target.ID, hotelID, target.Email, approved, actor.ID)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish staff approval event", "error", err, "staff_id", target.ID)
		}
	}

	target.IsApproved = approved
	if target.Status != nil {
		target.Status = &status
	}
	return FromDataModel(target), nil
}
