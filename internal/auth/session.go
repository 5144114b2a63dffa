package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/hotel-pms/internal"
	userDatamodel "github.com/frahmantamala/hotel-pms/internal/core/datamodel/user"
	"github.com/frahmantamala/hotel-pms/internal/core/user"
)

const sessionTokenBytes = 32

// SessionStore persists the token to user binding.
type SessionStore interface {
	CreateSession(ctx context.Context, session *userDatamodel.Session) error
	// GetSession returns nil, nil when the token is unknown.
	GetSession(ctx context.Context, id string) (*userDatamodel.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error
	// DeleteExpiredSessions removes sessions whose expiry is at or before now and reports how many.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// UserLookup resolves the live user record behind a session.
type UserLookup interface {
	// GetByID returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
}

type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (s *Session) expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

type CookieOptions struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

func CookieOptionsFromConfig(cfg internal.SessionConfig) CookieOptions {
	name := cfg.CookieName
	if name == "" {
		name = internal.DefaultSessionCookieName
	}
	return CookieOptions{
		Name:     name,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSiteMode(),
	}
}

// SessionManager issues, validates and revokes opaque session tokens.
type SessionManager struct {
	store       SessionStore
	users       UserLookup
	cookie      CookieOptions
	maxLifetime time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

func NewSessionManager(store SessionStore, users UserLookup, cookie CookieOptions, maxLifetime time.Duration, logger *slog.Logger) *SessionManager {
	if cookie.Name == "" {
		cookie.Name = internal.DefaultSessionCookieName
	}
	if cookie.SameSite == 0 {
		cookie.SameSite = http.SameSiteLaxMode
	}
	return &SessionManager{
		store:       store,
		users:       users,
		cookie:      cookie,
		maxLifetime: maxLifetime,
		logger:      logger,
		now:         time.Now,
	}
}

func (m *SessionManager) CookieName() string {
	return m.cookie.Name
}

func (m *SessionManager) CreateSession(ctx context.Context, userID string) (*Session, error) {
	token, err := GenerateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := m.now()
	record := &userDatamodel.Session{
		ID:        token,
		UserID:    userID,
		CreatedAt: now,
	}
	if m.maxLifetime > 0 {
		expiresAt := now.Add(m.maxLifetime)
		record.ExpiresAt = &expiresAt
	}

	if err := m.store.CreateSession(ctx, record); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.logger.Debug("session created", "user_id", userID)
	return sessionFromDataModel(record), nil
}

// ValidateSession resolves token to its session and the user's current record.
// Unknown, expired and orphaned tokens yield nil, nil, nil; only store failures are errors.
func (m *SessionManager) ValidateSession(ctx context.Context, token string) (*Session, *user.User, error) {
	if token == "" {
		return nil, nil, nil
	}

	record, err := m.store.GetSession(ctx, token)
	if err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}
	if record == nil {
		return nil, nil, nil
	}

	session := sessionFromDataModel(record)
	if session.expired(m.now()) {
		m.logger.Info("session expired", "user_id", session.UserID)
		if err := m.store.DeleteSession(ctx, token); err != nil {
			m.logger.Warn("failed to delete expired session", "user_id", session.UserID, "error", err)
		}
		return nil, nil, nil
	}

	u, err := m.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("load session user: %w", err)
	}
	if u == nil {
		return nil, nil, nil
	}

	return session, user.FromDataModel(u), nil
}

// InvalidateSession is idempotent; unknown tokens are not an error.
func (m *SessionManager) InvalidateSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (m *SessionManager) InvalidateUserSessions(ctx context.Context, userID string) error {
	if err := m.store.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	m.logger.Info("user sessions invalidated", "user_id", userID)
	return nil
}

// PurgeExpired drops sessions past their maximum lifetime. Non-expiring
// sessions are never touched.
func (m *SessionManager) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpiredSessions(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if n > 0 {
		m.logger.Info("expired sessions purged", "count", n)
	}
	return n, nil
}

// SessionCookie carries no Max-Age: the cookie lives until logout. An
// Expires attribute is only set when a maximum lifetime is configured.
func (m *SessionManager) SessionCookie(session *Session) *http.Cookie {
	c := &http.Cookie{
		Name:     m.cookie.Name,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: m.cookie.SameSite,
	}
	if session.ExpiresAt != nil {
		c.Expires = *session.ExpiresAt
	}
	return c
}

// BlankSessionCookie clears the session cookie on the client.
func (m *SessionManager) BlankSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: m.cookie.SameSite,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	}
}

// TokenFromRequest returns the session token carried by the request cookie, if any.
func (m *SessionManager) TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(m.cookie.Name)
	if err != nil {
		return ""
	}
	return c.Value
}

func sessionFromDataModel(s *userDatamodel.Session) *Session {
	return &Session{
		ID:        s.ID,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}

// GenerateRandomToken generates a cryptographically secure random token
func GenerateRandomToken() (string, error) {
	bytes := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
