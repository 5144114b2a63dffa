package staff_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hotel-pms/internal"
	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
	"github.com/frahmantamala/hotel-pms/internal/core/events"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
	"github.com/frahmantamala/hotel-pms/internal/staff"
)

func TestStaff(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Staff Suite")
}

// MockRepository implements staff.Repository for testing
type MockRepository struct {
	members   map[string]*userDatamodel.StaffMember
	failError error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{members: make(map[string]*userDatamodel.StaffMember)}
}

func (m *MockRepository) ListByHotel(_ context.Context, hotelID string) ([]*userDatamodel.StaffMember, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	var out []*userDatamodel.StaffMember
	for _, member := range m.members {
		if member.HotelID != nil && *member.HotelID == hotelID {
			cp := *member
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) GetMember(_ context.Context, hotelID, userID string) (*userDatamodel.StaffMember, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	member, ok := m.members[userID]
	if !ok || member.HotelID == nil || *member.HotelID != hotelID {
		return nil, nil
	}
	cp := *member
	return &cp, nil
}

func (m *MockRepository) SetApproval(_ context.Context, userID string, approved bool, profileStatus string) error {
	if m.failError != nil {
		return m.failError
	}
	member := m.members[userID]
	member.IsApproved = approved
	if member.Status != nil {
		member.Status = &profileStatus
	}
	return nil
}

func (m *MockRepository) add(hotelID, role string, approved bool) *userDatamodel.StaffMember {
	status := "INACTIVE"
	if approved {
		status = "ACTIVE"
	}
	member := &userDatamodel.StaffMember{
		ID:         uuid.NewString(),
		Fullname:   "Member " + role,
		Email:      role + "@example.com",
		Role:       role,
		HotelID:    &hotelID,
		IsApproved: approved,
		CreatedAt:  time.Now(),
	}
	if role != "owner" {
		member.Status = &status
	}
	m.members[member.ID] = member
	return member
}

// MockRevoker implements staff.SessionRevoker for testing
type MockRevoker struct {
	revoked   []string
	failError error
}

func (r *MockRevoker) InvalidateUserSessions(_ context.Context, userID string) error {
	r.revoked = append(r.revoked, userID)
	return r.failError
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func actorFrom(m *userDatamodel.StaffMember) *user.User {
	return user.FromDataModel(&userDatamodel.User{
		ID:         m.ID,
		Email:      m.Email,
		Fullname:   m.Fullname,
		Role:       m.Role,
		HotelID:    m.HotelID,
		IsApproved: m.IsApproved,
	})
}

var _ = Describe("Staff Service", func() {
	var (
		repo      *MockRepository
		revoker   *MockRevoker
		publisher *recordingPublisher
		service   *staff.Service
		ctx       context.Context
		hotelID   string
		owner     *userDatamodel.StaffMember
		manager   *userDatamodel.StaffMember
		pending   *userDatamodel.StaffMember
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		revoker = &MockRevoker{}
		publisher = &recordingPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = staff.NewService(repo, revoker, publisher, nil, logger)
		ctx = context.Background()

		hotelID = uuid.NewString()
		owner = repo.add(hotelID, "owner", true)
		manager = repo.add(hotelID, "manager", true)
		pending = repo.add(hotelID, "frontdesk", false)
	})

	Describe("ListStaff", func() {
		It("lists every account of the hotel", func() {
			repo.add(uuid.NewString(), "cleaner", true)

			members, err := service.ListStaff(ctx, hotelID)
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(3))
		})

		It("wraps store failures", func() {
			repo.failError = errors.New("connection refused")
			_, err := service.ListStaff(ctx, hotelID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("SetApproval", func() {
		It("lets the owner approve pending staff", func() {
			member, err := service.SetApproval(ctx, actorFrom(owner), staff.SetApprovalDTO{
				StaffID:    pending.ID,
				IsApproved: boolPtr(true),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(member.IsApproved).To(BeTrue())
			Expect(*member.Status).To(Equal(staff.StatusActive))
			Expect(repo.members[pending.ID].IsApproved).To(BeTrue())
			Expect(revoker.revoked).To(BeEmpty())

			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].EventType()).To(Equal(events.EventTypeStaffApprovalChange))
		})

		It("lets a manager approve pending staff", func() {
			_, err := service.SetApproval(ctx, actorFrom(manager), staff.SetApprovalDTO{
				StaffID:    pending.ID,
				IsApproved: boolPtr(true),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("ends every session when approval is revoked", func() {
			member, err := service.SetApproval(ctx, actorFrom(owner), staff.SetApprovalDTO{
				StaffID:    manager.ID,
				IsApproved: boolPtr(false),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(member.IsApproved).To(BeFalse())
			Expect(*member.Status).To(Equal(staff.StatusInactive))
			Expect(revoker.revoked).To(ConsistOf(manager.ID))
		})

		It("still revokes approval when session cleanup fails", func() {
			revoker.failError = errors.New("store down")
			_, err := service.SetApproval(ctx, actorFrom(owner), staff.SetApprovalDTO{
				StaffID:    manager.ID,
				IsApproved: boolPtr(false),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.members[manager.ID].IsApproved).To(BeFalse())
		})

		It("refuses callers who cannot approve", func() {
			staffer := repo.add(hotelID, "staff", true)
			_, err := service.SetApproval(ctx, actorFrom(staffer), staff.SetApprovalDTO{
				StaffID:    pending.ID,
				IsApproved: boolPtr(true),
			})
			Expect(err).To(Equal(internal.ErrInsufficientRole))
			Expect(repo.members[pending.ID].IsApproved).To(BeFalse())
		})

		It("refuses callers without a hotel", func() {
			actor := actorFrom(owner)
			actor.HotelID = nil
			_, err := service.SetApproval(ctx, actor, staff.SetApprovalDTO{
				StaffID:    pending.ID,
				IsApproved: boolPtr(true),
			})
			Expect(err).To(Equal(internal.ErrNoHotel))
		})

		It("refuses changes to the caller's own approval", func() {
			_, err := service.SetApproval(ctx, actorFrom(manager), staff.SetApprovalDTO{
				StaffID:    manager.ID,
				IsApproved: boolPtr(false),
			})
			Expect(err).To(Equal(internal.ErrSelfApproval))
		})

		It("refuses changes to the owner's approval", func() {
			_, err := service.SetApproval(ctx, actorFrom(manager), staff.SetApprovalDTO{
				StaffID:    owner.ID,
				IsApproved: boolPtr(false),
			})
			Expect(err).To(Equal(internal.ErrOwnerApproval))
			Expect(repo.members[owner.ID].IsApproved).To(BeTrue())
		})

		It("hides accounts of other hotels", func() {
			foreign := repo.add(uuid.NewString(), "staff", false)
			_, err := service.SetApproval(ctx, actorFrom(owner), staff.SetApprovalDTO{
				StaffID:    foreign.ID,
				IsApproved: boolPtr(true),
			})
			Expect(err).To(Equal(internal.ErrStaffNotFound))
			Expect(repo.members[foreign.ID].IsApproved).To(BeFalse())
		})

		It("requires a staff id and an approval flag", func() {
			_, err := service.SetApproval(ctx, actorFrom(owner), staff.SetApprovalDTO{StaffID: "nope"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))

			details := appErr.Details.(internal.ValidationErrors)
			Expect(details.Errors).To(HaveLen(2))
		})
	})
})
