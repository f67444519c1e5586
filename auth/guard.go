package auth

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pharmatrace/dashboard-api/models/account"
)

const (
	adminPathPrefix = "/admin"
	loginPath       = "/login"
	dashboardPath   = "/dashboard"
)

// Routes that don't require authentication
var publicPaths = []string{
	"/",
	"/login",
	"/register",
	"/hello",
	"/api/auth/login",
	"/api/auth/logout",
	"/api/auth/register",
	"/dashboard",
	"/users",
	"/reports",
	"/api/dashboard/stats",
}

// Routes that start with these prefixes are public
var publicPrefixes = []string{
	"/api/auth/",
	"/static/",
	"/favicon.ico",
	"/dashboard",
	"/users",
	"/reports",
	"/api/dashboard/stats",
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Guard gates every request ahead of the router: public paths pass with
// zero auth work, unauthenticated requests are redirected to login with
// the original destination preserved, and admin paths additionally
// require the admin role.
type Guard struct {
	codec    *Codec
	cookie   *SessionCookie
	resolver *Resolver
}

// NewGuard creates a Guard
func NewGuard(codec *Codec, cookie *SessionCookie, resolver *Resolver) *Guard {
	return &Guard{codec: codec, cookie: cookie, resolver: resolver}
}

// Wrap returns a handler that applies the guard before next.
func (g *Guard) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if isPublicPath(path) {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := g.cookie.Read(r)
		if !ok {
			redirectToLogin(w, r, path)
			return
		}

		if _, err := g.codec.Verify(token); err != nil {
			// Expired or forged tokens are treated like no token at all,
			// and the stale cookie is cleared.
			g.cookie.Clear(w)
			redirectToLogin(w, r, path)
			return
		}

		if strings.HasPrefix(path, adminPathPrefix) {
			acc, err := g.resolver.Resolve(r)
			if err != nil {
				log.WithError(err).Error("Guard account lookup failed")
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if acc == nil {
				g.cookie.Clear(w)
				redirectToLogin(w, r, path)
				return
			}
			if acc.Role != account.RoleAdmin {
				// Not an error from the user's point of view: route them
				// to the landing page they are allowed to see.
				http.Redirect(w, r, dashboardPath, http.StatusFound)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, loginPath+"?redirect="+path, http.StatusFound)
}
