package handlers

import (
	"net/http"
	"os"

	"github.com/gorilla/sessions"
)

const (
	sessionName    = "warbler-session"
	sessionUserKey = "user_id"
)

// SessionManager wraps the cookie store. Session identity is the only
// per-request context; handlers read it here and pass the id explicitly into
// the repository layer, never through shared state.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager builds the cookie store from SESSION_KEY, falling back to
// a development key when unset.
func NewSessionManager() *SessionManager {
	key := os.Getenv("SESSION_KEY")
	if key == "" {
		key = "development-key"
	}
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// CurrentUserID returns the authenticated user's id, or false for anonymous
// requests.
func (s *SessionManager) CurrentUserID(r *http.Request) (uint, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values[sessionUserKey].(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// Login transitions the session from Anonymous to Authenticated.
func (s *SessionManager) Login(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[sessionUserKey] = userID
	return session.Save(r, w)
}

// Logout drops the identity and expires the cookie.
func (s *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, sessionUserKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
