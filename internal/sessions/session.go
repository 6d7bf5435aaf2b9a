package sessions

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "awc_session"
	userIDKey   = "user_id"
)

// Manager wraps the cookie store. The secret is injected at startup; there
// is no package-level state.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager derives a signing key and an encryption key from the secret
// and configures a 7-day cookie.
func NewManager(secret string, secure bool) *Manager {
	if secret == "" {
		secret = "dev-insecure-secret-change-me-now"
	}

	h := sha256.Sum256([]byte("auth:" + secret))
	e := sha256.Sum256([]byte("enc:" + secret))

	store := sessions.NewCookieStore(h[:], e[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, sessionName)
}

// SetUserID marks the session as an authenticated admin.
func (m *Manager) SetUserID(w http.ResponseWriter, r *http.Request, userID int64) error {
	s, err := m.get(r)
	if err != nil {
		return err
	}
	s.Values[userIDKey] = userID
	return s.Save(r, w)
}

// UserID returns the authenticated admin id, if any.
func (m *Manager) UserID(r *http.Request) (int64, bool) {
	s, err := m.get(r)
	if err != nil {
		return 0, false
	}
	if v, ok := s.Values[userIDKey].(int64); ok {
		return v, true
	}
	return 0, false
}

// Clear logs the admin out and expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s, err := m.get(r)
	if err != nil {
		return err
	}
	delete(s.Values, userIDKey)
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

// Flash stores a one-shot message shown on the next page render.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, msg string) error {
	s, err := m.get(r)
	if err != nil {
		return err
	}
	s.AddFlash(msg)
	return s.Save(r, w)
}

// PopFlash returns and consumes the pending flash message, if any.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) (string, bool) {
	s, err := m.get(r)
	if err != nil {
		return "", false
	}
	flashes := s.Flashes()
	if len(flashes) == 0 {
		return "", false
	}
	_ = s.Save(r, w)
	if msg, ok := flashes[0].(string); ok {
		return msg, true
	}
	return "", false
}
