package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inmohub/logging"
)

const sessionCookieName = "inmohub_session"

// SessionManager tracks back office sessions in memory. A process restart
// logs every admin out, which is acceptable for a single-operator back office.
type SessionManager struct {
	username     string
	passwordHash string
	ttl          time.Duration
	logger       *logging.Logger

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry
}

// NewSessionManager creates a session manager gated on the given credentials.
// passwordHash must be a bcrypt hash; an empty hash rejects every login.
func NewSessionManager(username, passwordHash string, ttl time.Duration, logger *logging.Logger) *SessionManager {
	return &SessionManager{
		username:     username,
		passwordHash: passwordHash,
		ttl:          ttl,
		logger:       logger,
		sessions:     make(map[string]time.Time),
	}
}

// Login verifies the credentials and mints a session token on success.
func (m *SessionManager) Login(username, password string) (string, bool) {
	if m.passwordHash == "" || username != m.username {
		return "", false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.passwordHash), []byte(password)); err != nil {
		return "", false
	}

	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = time.Now().Add(m.ttl)
	m.mu.Unlock()
	return token, true
}

// Logout invalidates the token. Unknown tokens are ignored.
func (m *SessionManager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Validate reports whether the token belongs to a live session. Expired
// sessions are pruned on sight.
func (m *SessionManager) Validate(token string) bool {
	if token == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(m.sessions, token)
		return false
	}
	return true
}

// TokenFromRequest pulls the session token from the cookie, falling back to
// a bearer Authorization header for API clients.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	const prefix = "Bearer "
	if auth := r.Header.Get("Authorization"); len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// RequireAdmin rejects requests that do not carry a live admin session.
func (m *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if !m.Validate(token) {
			m.logger.Security("admin access denied", "path", r.URL.Path, "remote", r.RemoteAddr)
			RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetSessionCookie writes the session cookie on a successful login.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on logout.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
