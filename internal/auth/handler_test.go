package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/auth"
	authPostgres "github.com/frahmantamala/hotel-pms/internal/auth/postgres"
	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
	"github.com/frahmantamala/hotel-pms/internal/core/storetest"
	hotelPostgres "github.com/frahmantamala/hotel-pms/internal/hotel/postgres"
	"github.com/frahmantamala/hotel-pms/internal/transport"
)

type errorEnvelope struct {
	Error struct {
		Type string `json:"type"`
		Code string `json:"code"`
	} `json:"error"`
}

var _ = Describe("Auth Handler", func() {
	var (
		db       *gorm.DB
		sessions *auth.SessionManager
		router   http.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = storetest.Open()
		Expect(err).NotTo(HaveOccurred())

		lg := testLogger()
		repo := authPostgres.NewRepository(db)
		sessions = auth.NewSessionManager(repo, repo, auth.CookieOptions{}, 0, lg)
		svc := auth.NewService(repo, hotelPostgres.NewHotelRepository(db), auth.NewBcryptHasher(4), sessions, nil, nil, lg)

		base := transport.NewBaseHandler(lg)
		handler := auth.NewHandler(base, svc, sessions)
		rbac := auth.NewRBACAuthorization(base, lg)

		r := chi.NewRouter()
		r.Post("/auth/signup", handler.Signup)
		r.Post("/auth/staff-signup", handler.StaffSignup)
		r.Post("/auth/login", handler.Login)
		r.Post("/auth/logout", handler.Logout)
		r.Get("/auth/session", handler.Session)
		r.Group(func(r chi.Router) {
			r.Use(handler.Authenticate)
			r.Use(rbac.RequireHotel())
			r.Use(rbac.RequireApproved())
			r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
				u, _ := internal.UserFromContext(r.Context())
				base.WriteJSON(w, http.StatusOK, map[string]string{"id": u.ID, "role": u.Role.String()})
			})
			r.With(rbac.RequireStaffApprover()).Get("/approvers-only", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		})
		router = r
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	do := func(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	sessionCookie := func(rec *httptest.ResponseRecorder) *http.Cookie {
		for _, c := range rec.Result().Cookies() {
			if c.Name == sessions.CookieName() {
				return c
			}
		}
		return nil
	}

	errorCode := func(rec *httptest.ResponseRecorder) string {
		var env errorEnvelope
		Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(Succeed())
		return env.Error.Code
	}

	signup := func() (*http.Cookie, auth.AuthResponse) {
		rec := do(http.MethodPost, "/auth/signup", map[string]interface{}{
			"fullname":  "Jane Owner",
			"email":     "jane@example.com",
			"password":  "password123",
			"hotelName": "Grand Palace",
			"location":  "Jakarta",
		})
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var resp auth.AuthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		cookie := sessionCookie(rec)
		Expect(cookie).NotTo(BeNil())
		return cookie, resp
	}

	It("signs the owner in on signup", func() {
		cookie, resp := signup()
		Expect(resp.Success).To(BeTrue())
		Expect(resp.User.IsApproved).To(BeTrue())
		Expect(*resp.User.HotelName).To(Equal("Grand Palace"))
		Expect(cookie.HttpOnly).To(BeTrue())
		Expect(cookie.MaxAge).To(Equal(0))

		rec := do(http.MethodGet, "/whoami", nil, cookie)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"role":"owner"`))
	})

	It("rejects a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects duplicate signups with 409", func() {
		signup()
		rec := do(http.MethodPost, "/auth/signup", map[string]interface{}{
			"fullname":  "Jane Again",
			"email":     "JANE@example.com",
			"password":  "password123",
			"hotelName": "Second Hotel",
		})
		Expect(rec.Code).To(Equal(http.StatusConflict))
		Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeEmailExists)))
	})

	It("requires a session on protected routes", func() {
		rec := do(http.MethodGet, "/whoami", nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))

		rec = do(http.MethodGet, "/whoami", nil, &http.Cookie{Name: sessions.CookieName(), Value: "forged"})
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeUnauthenticated)))
	})

	It("ends the session on logout", func() {
		cookie, _ := signup()

		rec := do(http.MethodPost, "/auth/logout", nil, cookie)
		Expect(rec.Code).To(Equal(http.StatusOK))
		cleared := sessionCookie(rec)
		Expect(cleared).NotTo(BeNil())
		Expect(cleared.Value).To(BeEmpty())

		rec = do(http.MethodGet, "/whoami", nil, cookie)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))

		rec = do(http.MethodPost, "/auth/logout", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("reports the session state", func() {
		rec := do(http.MethodGet, "/auth/session", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"authenticated":false`))

		cookie, _ := signup()
		rec = do(http.MethodGet, "/auth/session", nil, cookie)
		var resp auth.SessionResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Authenticated).To(BeTrue())
		Expect(resp.User.Email).To(Equal("jane@example.com"))
	})

	Describe("staff accounts", func() {
		var hotelID string

		BeforeEach(func() {
			_, resp := signup()
			hotelID = *resp.User.HotelID

			rec := do(http.MethodPost, "/auth/staff-signup", map[string]interface{}{
				"fullname": "Sam Staff",
				"email":    "sam@example.com",
				"password": "password123",
				"hotelId":  hotelID,
				"role":     "frontdesk",
			})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(sessionCookie(rec)).To(BeNil())
			Expect(rec.Body.String()).To(ContainSubstring(auth.StaffPendingMessage))
		})

		login := func() *httptest.ResponseRecorder {
			return do(http.MethodPost, "/auth/login", map[string]string{
				"email":    "sam@example.com",
				"password": "password123",
			})
		}

		It("refuses login until approved", func() {
			rec := login()
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeNotApproved)))

			Expect(db.Model(&userDatamodel.User{}).Where("email = ?", "sam@example.com").
				Update("is_approved", true).Error).To(Succeed())

			rec = login()
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(sessionCookie(rec)).NotTo(BeNil())
		})

		It("keeps non-approvers out of approver routes", func() {
			Expect(db.Model(&userDatamodel.User{}).Where("email = ?", "sam@example.com").
				Update("is_approved", true).Error).To(Succeed())
			cookie := sessionCookie(login())

			rec := do(http.MethodGet, "/approvers-only", nil, cookie)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeInsufficientRole)))
		})

		It("re-checks approval on every request", func() {
			Expect(db.Model(&userDatamodel.User{}).Where("email = ?", "sam@example.com").
				Update("is_approved", true).Error).To(Succeed())
			cookie := sessionCookie(login())
			Expect(do(http.MethodGet, "/whoami", nil, cookie).Code).To(Equal(http.StatusOK))

			Expect(db.Model(&userDatamodel.User{}).Where("email = ?", "sam@example.com").
				Update("is_approved", false).Error).To(Succeed())
			rec := do(http.MethodGet, "/whoami", nil, cookie)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeNotApproved)))
		})

		It("rejects invites for unknown hotels", func() {
			rec := do(http.MethodPost, "/auth/staff-signup", map[string]interface{}{
				"fullname": "Nobody",
				"email":    "nobody@example.com",
				"password": "password123",
				"hotelId":  "00000000-0000-4000-8000-000000000000",
				"role":     "staff",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeInvalidInvite)))
		})
	})
})
