package auth

import "net/http"

// CookieName is the single cookie the auth core reads and writes.
const CookieName = "pharma-auth"

// SessionCookie carries the session token between browser and server.
type SessionCookie struct {
	secure bool
}

// NewSessionCookie creates the session transport. secure should be true
// in production deployments so the cookie is only sent over TLS.
func NewSessionCookie(secure bool) *SessionCookie {
	return &SessionCookie{secure: secure}
}

// Write sets the session cookie with the token.
func (sc *SessionCookie) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenLifetime.Seconds()),
		HttpOnly: true,
		Secure:   sc.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session token for the request. Absence is a normal,
// non-error outcome.
func (sc *SessionCookie) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Clear overwrites the session cookie with an expired empty one.
// Safe to call when no session exists.
func (sc *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
