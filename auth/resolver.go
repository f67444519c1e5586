package auth

import (
	"errors"
	"net/http"

	"github.com/pharmatrace/dashboard-api/models/account"
)

// Resolver recovers the authenticated account for a request by combining
// the session cookie, the token codec and the credential store.
type Resolver struct {
	codec  *Codec
	cookie *SessionCookie
	store  account.Store
}

// NewResolver creates a Resolver
func NewResolver(codec *Codec, cookie *SessionCookie, store account.Store) *Resolver {
	return &Resolver{codec: codec, cookie: cookie, store: store}
}

// Resolve returns the current account or nil when the request carries no
// valid session. Missing cookie, invalid or expired token, and a deleted
// account all collapse to (nil, nil). A non-nil error means the store
// failed; callers must treat that as a server fault, not as logged-out.
//
// The account is always re-fetched: the token's embedded role is advisory
// only, since roles can change after issuance.
func (rv *Resolver) Resolve(r *http.Request) (*account.Account, error) {
	token, ok := rv.cookie.Read(r)
	if !ok {
		return nil, nil
	}

	claims, err := rv.codec.Verify(token)
	if err != nil {
		return nil, nil
	}

	acc, err := rv.store.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}
