package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/auth"
	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
)

var _ = Describe("SessionManager", func() {
	var (
		store   *MockStore
		manager *auth.SessionManager
		ctx     context.Context
		now     time.Time
		userID  string
	)

	newManager := func(maxLifetime time.Duration) *auth.SessionManager {
		m := auth.NewSessionManager(store, store, auth.CookieOptions{}, maxLifetime, testLogger())
		m.SetNow(func() time.Time { return now })
		return m
	}

	BeforeEach(func() {
		ctx = context.Background()
		store = NewMockStore(hotelLookup{})
		now = time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
		userID = "6f1c2d3e-0000-4000-8000-000000000001"
		store.users[userID] = &userDatamodel.User{
			ID:         userID,
			Email:      "jane@example.com",
			Fullname:   "Jane Owner",
			Role:       "owner",
			IsApproved: true,
		}
		manager = newManager(0)
	})

	Describe("CreateSession", func() {
		It("issues distinct opaque tokens without an expiry by default", func() {
			first, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			second, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())

			Expect(first.ID).To(MatchRegexp(`^[0-9a-f]{64}$`))
			Expect(first.ID).NotTo(Equal(second.ID))
			Expect(first.ExpiresAt).To(BeNil())
		})

		It("sets an expiry when a maximum lifetime is configured", func() {
			manager = newManager(time.Hour)
			session, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.ExpiresAt).NotTo(BeNil())
			Expect(*session.ExpiresAt).To(Equal(now.Add(time.Hour)))
		})
	})

	Describe("ValidateSession", func() {
		It("resolves the current user record", func() {
			session, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())

			store.users[userID].IsApproved = false
			got, u, err := manager.ValidateSession(ctx, session.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UserID).To(Equal(userID))
			Expect(u.IsApproved).To(BeFalse())
		})

		It("treats empty and unknown tokens as anonymous", func() {
			for _, token := range []string{"", "unknown"} {
				session, u, err := manager.ValidateSession(ctx, token)
				Expect(err).NotTo(HaveOccurred())
				Expect(session).To(BeNil())
				Expect(u).To(BeNil())
			}
		})

		It("drops sessions past their lifetime", func() {
			manager = newManager(time.Hour)
			session, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())

			now = now.Add(time.Hour)
			got, u, err := manager.ValidateSession(ctx, session.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
			Expect(u).To(BeNil())
			Expect(store.SessionCount()).To(Equal(0))
		})

		It("treats sessions of deleted users as anonymous", func() {
			session, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			delete(store.users, userID)

			got, u, err := manager.ValidateSession(ctx, session.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
			Expect(u).To(BeNil())
		})

		It("reports store failures", func() {
			session, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			store.SetShouldFail(context.DeadlineExceeded)

			_, _, err = manager.ValidateSession(ctx, session.ID)
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})
	})

	Describe("revocation", func() {
		It("invalidates every session of a user", func() {
			other := "6f1c2d3e-0000-4000-8000-000000000002"
			store.users[other] = &userDatamodel.User{ID: other, Email: "sam@example.com", Role: "staff"}

			_, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			_, err = manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			kept, err := manager.CreateSession(ctx, other)
			Expect(err).NotTo(HaveOccurred())

			Expect(manager.InvalidateUserSessions(ctx, userID)).To(Succeed())
			Expect(store.SessionCount()).To(Equal(1))
			_, u, err := manager.ValidateSession(ctx, kept.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(other))
		})

		It("purges only expired sessions", func() {
			_, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())

			manager = newManager(time.Minute)
			_, err = manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())

			now = now.Add(2 * time.Minute)
			n, err := manager.PurgeExpired(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))
			Expect(store.SessionCount()).To(Equal(1))
		})
	})

	Describe("cookies", func() {
		It("issues an HttpOnly session cookie without Max-Age", func() {
			session, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())

			c := manager.SessionCookie(session)
			Expect(c.Name).To(Equal(internal.DefaultSessionCookieName))
			Expect(c.Value).To(Equal(session.ID))
			Expect(c.HttpOnly).To(BeTrue())
			Expect(c.Path).To(Equal("/"))
			Expect(c.MaxAge).To(Equal(0))
			Expect(c.Expires.IsZero()).To(BeTrue())
			Expect(c.SameSite).To(Equal(http.SameSiteLaxMode))
		})

		It("honours configured cookie options", func() {
			manager = auth.NewSessionManager(store, store, auth.CookieOptions{
				Name:     "pms_session",
				Secure:   true,
				SameSite: http.SameSiteStrictMode,
			}, 0, testLogger())

			session, err := manager.CreateSession(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			c := manager.SessionCookie(session)
			Expect(c.Name).To(Equal("pms_session"))
			Expect(c.Secure).To(BeTrue())
			Expect(c.SameSite).To(Equal(http.SameSiteStrictMode))
		})

		It("clears the cookie on logout", func() {
			c := manager.BlankSessionCookie()
			Expect(c.Value).To(BeEmpty())
			Expect(c.MaxAge).To(BeNumerically("<", 0))
		})

		It("reads the token from the request cookie", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			Expect(manager.TokenFromRequest(req)).To(BeEmpty())

			req.AddCookie(&http.Cookie{Name: manager.CookieName(), Value: "abc123"})
			Expect(manager.TokenFromRequest(req)).To(Equal("abc123"))
		})
	})
})
