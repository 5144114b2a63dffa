package auth

import "time"

// SetNow replaces the session clock.
func (m *SessionManager) SetNow(now func() time.Time) {
	m.now = now
}
