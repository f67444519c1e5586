package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmatrace/dashboard-api/models/account"
)

func newTestResolver(store account.Store) (*Resolver, *Codec, *SessionCookie) {
	codec := NewCodec("test-secret")
	cookie := NewSessionCookie(false)
	return NewResolver(codec, cookie, store), codec, cookie
}

func requestWithToken(t *testing.T, codec *Codec, userID int, email, role string) *http.Request {
	t.Helper()
	token, err := codec.Issue(userID, email, role)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	return r
}

func TestResolver_NoCookie(t *testing.T) {
	rv, _, _ := newTestResolver(&account.Mock{})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	acc, err := rv.Resolve(r)
	assert.NoError(t, err)
	assert.Nil(t, acc)
}

func TestResolver_InvalidToken(t *testing.T) {
	rv, _, _ := newTestResolver(&account.Mock{})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	acc, err := rv.Resolve(r)
	assert.NoError(t, err)
	assert.Nil(t, acc)
}

func TestResolver_DeletedAccount(t *testing.T) {
	rv, codec, _ := newTestResolver(&account.Mock{})

	r := requestWithToken(t, codec, 99, "gone@x.com", "pharmacist")
	acc, err := rv.Resolve(r)
	assert.NoError(t, err)
	assert.Nil(t, acc)
}

func TestResolver_OK(t *testing.T) {
	store := &account.Mock{Accounts: []*account.Account{
		{ID: 7, FullName: "Alice Chen", Email: "a@x.com", Role: account.RolePharmacist},
	}}
	rv, codec, _ := newTestResolver(store)

	r := requestWithToken(t, codec, 7, "a@x.com", "pharmacist")
	acc, err := rv.Resolve(r)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, 7, acc.ID)
	assert.Equal(t, account.RolePharmacist, acc.Role)
}

func TestResolver_RoleFromStoreNotToken(t *testing.T) {
	// the stored role wins over the claim role
	store := &account.Mock{Accounts: []*account.Account{
		{ID: 7, Email: "a@x.com", Role: account.RoleDistributor},
	}}
	rv, codec, _ := newTestResolver(store)

	r := requestWithToken(t, codec, 7, "a@x.com", "admin")
	acc, err := rv.Resolve(r)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, account.RoleDistributor, acc.Role)
}

func TestResolver_StoreFault(t *testing.T) {
	store := &account.Mock{Err: errors.New("db down")}
	rv, codec, _ := newTestResolver(store)

	r := requestWithToken(t, codec, 7, "a@x.com", "pharmacist")
	acc, err := rv.Resolve(r)
	assert.Error(t, err)
	assert.Nil(t, acc)
}
