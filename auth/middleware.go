package auth

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/julienschmidt/httprouter"

	"github.com/pharmatrace/dashboard-api/models/account"
)

type contextKey string

const (
	accountContextKey contextKey = "account"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Middleware provides session-based request middlewares for the JSON API.
type Middleware struct {
	resolver *Resolver
}

// NewMiddleware creates a Middleware
func NewMiddleware(resolver *Resolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// RequireUser resolves the session cookie and rejects unauthenticated
// requests with 401. Store failures surface as 500, never as a logout.
func (m *Middleware) RequireUser(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		acc, err := m.resolver.Resolve(r)
		if err != nil {
			log.WithError(err).Error("Account resolution failed")
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			return
		}
		if acc == nil {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, acc)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin checks the re-fetched account role, not the token claim.
func (m *Middleware) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return m.RequireUser(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		acc := AccountFromContext(r.Context())
		if acc == nil || acc.Role != account.RoleAdmin {
			writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "forbidden"})
			return
		}

		next(w, r, ps)
	})
}

// AccountFromContext gets the resolved account from the request context
func AccountFromContext(ctx context.Context) *account.Account {
	acc, ok := ctx.Value(accountContextKey).(*account.Account)
	if !ok {
		return nil
	}
	return acc
}
