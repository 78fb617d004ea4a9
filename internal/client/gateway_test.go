package client_test

import (
	"testing"

	"github.com/asdine/storm/v3"
	"github.com/mdouchement/paperflow/internal/client"
	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestGateway_Login(t *testing.T) {
	_, store, gateway, teardown := newGateway(t)
	defer teardown()

	role, err := gateway.Login("admin@test.com", "password42")
	assert.NoError(t, err)
	assert.Equal(t, libpf.RoleAdmin, role)

	session := store.Current()
	assert.True(t, session.Defined())
	assert.Equal(t, "admin@test.com", session.Email)
	assert.Equal(t, libpf.RoleAdmin, session.Role)
	assert.Equal(t, session.AccessToken, store.Token())

	// Both storage keys mirror the session.
	var raw, token string
	assert.NoError(t, store.DB().Get("session", "user", &raw))
	assert.NoError(t, store.DB().Get("session", "access_token", &token))
	assert.Equal(t, session.AccessToken, token)

	v, err := fastjson.Parse(raw)
	assert.NoError(t, err)
	assert.Equal(t, "admin@test.com", string(v.GetStringBytes("email")))
	assert.Equal(t, "admin", string(v.GetStringBytes("role")))
}

func TestGateway_LoginRejected(t *testing.T) {
	_, store, gateway, teardown := newGateway(t)
	defer teardown()

	_, err := gateway.Login("admin@test.com", "nope")
	assert.EqualError(t, err, "Incorrect email or password")

	// The store is untouched by a failed attempt.
	assert.False(t, store.Current().Defined())
	var s string
	assert.Equal(t, storm.ErrNotFound, store.DB().Get("session", "user", &s))
}

func TestGateway_RegisterDoesNotAutoLogin(t *testing.T) {
	_, store, gateway, teardown := newGateway(t)
	defer teardown()

	assert.NoError(t, gateway.Register("new@test.com", "password42", libpf.RoleAuthor))
	assert.False(t, store.Current().Defined())

	err := gateway.Register("admin@test.com", "password42", libpf.RoleAuthor)
	assert.EqualError(t, err, "Email already registered")

	// The new account can login afterwards.
	role, err := gateway.Login("new@test.com", "password42")
	assert.NoError(t, err)
	assert.Equal(t, libpf.RoleAuthor, role)
}

func TestGateway_LogoutIsLocalAndIdempotent(t *testing.T) {
	_, store, gateway, teardown := newGateway(t)
	defer teardown()

	_, err := gateway.Login("author@test.com", "password42")
	assert.NoError(t, err)

	assert.NoError(t, gateway.Logout())
	assert.False(t, store.Current().Defined())

	var s string
	assert.Equal(t, storm.ErrNotFound, store.DB().Get("session", "user", &s))
	assert.Equal(t, storm.ErrNotFound, store.DB().Get("session", "access_token", &s))

	assert.NoError(t, gateway.Logout())
	assert.False(t, store.Current().Defined())
}

func TestGateway_Papers(t *testing.T) {
	_, _, gateway, teardown := newGateway(t)
	defer teardown()

	_, err := gateway.Login("author@test.com", "password42")
	assert.NoError(t, err)

	papers, err := gateway.Papers()
	assert.NoError(t, err)
	assert.Len(t, papers, 1)
	assert.Equal(t, "AI in Education", papers[0].Title)
}

func TestGateway_ForcedLogoutOnRevokedToken(t *testing.T) {
	pt, store, gateway, teardown := newGateway(t)
	defer teardown()

	_, err := gateway.Login("reviewer@test.com", "password42")
	assert.NoError(t, err)

	pt.revoke(store.Token())

	_, err = gateway.Papers()
	assert.True(t, libpf.IsAuthenticationFailure(err))
	assert.EqualError(t, err, "authentication failed") // not the portal's response body

	// The session is gone, memory and disk.
	assert.False(t, store.Current().Defined())
	var s string
	assert.Equal(t, storm.ErrNotFound, store.DB().Get("session", "user", &s))
	assert.Equal(t, storm.ErrNotFound, store.DB().Get("session", "access_token", &s))

	// And a later call fails the same way without a session.
	_, err = gateway.Papers()
	assert.Error(t, err)
}

func TestGateway_LoginThenGuard(t *testing.T) {
	_, store, gateway, teardown := newGateway(t)
	defer teardown()

	_, err := gateway.Login("admin@test.com", "password42")
	assert.NoError(t, err)

	guard := client.NewGuard(store)
	assert.Equal(t, client.DecisionAllow, guard.Authorize(libpf.RoleAdmin))
	assert.Equal(t, client.DecisionDenied, guard.Authorize(libpf.RoleAuthor))

	assert.NoError(t, gateway.Logout())
	assert.Equal(t, client.DecisionRedirect, guard.Authorize(libpf.RoleAdmin))
}
