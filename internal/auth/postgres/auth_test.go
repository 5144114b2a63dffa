package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/hotel-pms/internal"
	authPostgres "github.com/frahmantamala/hotel-pms/internal/auth/postgres"
	hotelDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/hotel"
	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
	"github.com/frahmantamala/hotel-pms/internal/core/storetest"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

var _ = Describe("Auth Repository", func() {
	var (
		db   *gorm.DB
		repo *authPostgres.Repository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = storetest.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = authPostgres.NewRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	newOwner := func(email string) (*hotelDatamodel.Hotel, *userDatamodel.User) {
		hotel := &hotelDatamodel.Hotel{ID: uuid.NewString(), Name: "Grand Palace", SubscriptionStatus: "trial"}
		digest := "digest"
		owner := &userDatamodel.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: &digest,
			Fullname:     "Jane Owner",
			Role:         "owner",
			HotelID:      &hotel.ID,
			IsApproved:   true,
		}
		return hotel, owner
	}

	Describe("users", func() {
		It("creates a hotel with its owner", func() {
			hotel, owner := newOwner("jane@example.com")
			Expect(repo.CreateOwner(ctx, hotel, owner)).To(Succeed())

			got, err := repo.GetByEmail(ctx, "jane@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(owner.ID))
			Expect(*got.HotelID).To(Equal(hotel.ID))
			Expect(got.IsApproved).To(BeTrue())

			exists, err := repo.EmailExists(ctx, "jane@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("returns nil for unknown users", func() {
			u, err := repo.GetByID(ctx, uuid.NewString())
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(BeNil())

			u, err = repo.GetByEmail(ctx, "nobody@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(BeNil())
		})

		It("maps the unique email index onto the email conflict", func() {
			hotel, owner := newOwner("jane@example.com")
			Expect(repo.CreateOwner(ctx, hotel, owner)).To(Succeed())

			otherHotel, dup := newOwner("jane@example.com")
			err := repo.CreateOwner(ctx, otherHotel, dup)
			Expect(errors.Is(err, internal.ErrEmailExists)).To(BeTrue())

			var count int64
			Expect(db.Model(&hotelDatamodel.Hotel{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("keeps new staff unapproved", func() {
			hotel, owner := newOwner("jane@example.com")
			Expect(repo.CreateOwner(ctx, hotel, owner)).To(Succeed())

			staff := &userDatamodel.User{
				ID:       uuid.NewString(),
				Email:    "sam@example.com",
				Fullname: "Sam Staff",
				Role:     "staff",
				HotelID:  &hotel.ID,
			}
			profile := &userDatamodel.Staff{
				ID:       uuid.NewString(),
				Fullname: "Sam Staff",
				Email:    "sam@example.com",
				HotelID:  hotel.ID,
				Role:     "staff",
				UserID:   staff.ID,
				Status:   "INACTIVE",
				HireDate: time.Now().UTC(),
			}
			Expect(repo.CreateStaff(ctx, staff, profile)).To(Succeed())

			got, err := repo.GetByID(ctx, staff.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.IsApproved).To(BeFalse())
		})
	})

	Describe("sessions", func() {
		var userID string

		BeforeEach(func() {
			hotel, owner := newOwner("jane@example.com")
			Expect(repo.CreateOwner(ctx, hotel, owner)).To(Succeed())
			userID = owner.ID
		})

		It("stores, loads and deletes sessions", func() {
			Expect(repo.CreateSession(ctx, &userDatamodel.Session{ID: "token-1", UserID: userID})).To(Succeed())

			s, err := repo.GetSession(ctx, "token-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.UserID).To(Equal(userID))
			Expect(s.ExpiresAt).To(BeNil())

			Expect(repo.DeleteSession(ctx, "token-1")).To(Succeed())
			s, err = repo.GetSession(ctx, "token-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(BeNil())

			Expect(repo.DeleteSession(ctx, "token-1")).To(Succeed())
		})

		It("deletes every session of a user", func() {
			Expect(repo.CreateSession(ctx, &userDatamodel.Session{ID: "token-1", UserID: userID})).To(Succeed())
			Expect(repo.CreateSession(ctx, &userDatamodel.Session{ID: "token-2", UserID: userID})).To(Succeed())

			Expect(repo.DeleteUserSessions(ctx, userID)).To(Succeed())

			var count int64
			Expect(db.Model(&userDatamodel.Session{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("purges expired sessions only", func() {
			past := time.Now().Add(-time.Hour)
			future := time.Now().Add(time.Hour)
			Expect(repo.CreateSession(ctx, &userDatamodel.Session{ID: "expired", UserID: userID, ExpiresAt: &past})).To(Succeed())
			Expect(repo.CreateSession(ctx, &userDatamodel.Session{ID: "live", UserID: userID, ExpiresAt: &future})).To(Succeed())
			Expect(repo.CreateSession(ctx, &userDatamodel.Session{ID: "forever", UserID: userID})).To(Succeed())

			n, err := repo.DeleteExpiredSessions(ctx, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			s, err := repo.GetSession(ctx, "forever")
			Expect(err).NotTo(HaveOccurred())
			Expect(s).NotTo(BeNil())
		})
	})
})
