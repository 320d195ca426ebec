package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/remote"
)

type fakeIdentityAPI struct {
	loginID      domain.Identity
	adminLoginID domain.Identity
	err          error

	logins      int
	adminLogins int
	signups     int
}

func (f *fakeIdentityAPI) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	f.logins++
	return f.loginID, f.err
}

func (f *fakeIdentityAPI) LoginAdmin(ctx context.Context, email, password string) (domain.Identity, error) {
	f.adminLogins++
	return f.adminLoginID, f.err
}

func (f *fakeIdentityAPI) Signup(ctx context.Context, name, email, password string) error {
	f.signups++
	return f.err
}

func TestLoginStoresUserCredentialAndNavigates(t *testing.T) {
	api := &fakeIdentityAPI{loginID: domain.Identity{Token: "tok", Role: domain.RoleUser}}
	nav := &recordingNav{}
	sess := newSession(t)
	a := NewAuth(api, sess, nav)

	require.NoError(t, a.Login(context.Background(), "a@b.c", "pw"))
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, []string{RouteUserDashboard}, nav.visited())
}

func TestLoginRejectsAdminCredential(t *testing.T) {
	api := &fakeIdentityAPI{loginID: domain.Identity{Token: "tok", Role: domain.RoleAdmin}}
	nav := &recordingNav{}
	sess := newSession(t)
	a := NewAuth(api, sess, nav)

	err := a.Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, remote.ErrUnauthorized)
	assert.False(t, sess.LoggedIn(), "rejected credential must not be stored")
	assert.Empty(t, nav.visited())
}

func TestLoginAdminUsesDedicatedOperation(t *testing.T) {
	api := &fakeIdentityAPI{adminLoginID: domain.Identity{Token: "tok", Role: domain.RoleAdmin}}
	nav := &recordingNav{}
	sess := newSession(t)
	a := NewAuth(api, sess, nav)

	require.NoError(t, a.LoginAdmin(context.Background(), "a@b.c", "pw"))
	assert.Equal(t, 1, api.adminLogins)
	assert.Equal(t, 0, api.logins, "admin login never touches the user endpoint")
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, []string{RouteAdminDashboard}, nav.visited())
}

func TestLoginAdminRejectsUserCredential(t *testing.T) {
	api := &fakeIdentityAPI{adminLoginID: domain.Identity{Token: "tok", Role: domain.RoleUser}}
	nav := &recordingNav{}
	sess := newSession(t)
	a := NewAuth(api, sess, nav)

	err := a.LoginAdmin(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, remote.ErrUnauthorized)
	assert.False(t, sess.LoggedIn())
}

func TestSignupValidatesThenNavigatesToLogin(t *testing.T) {
	api := &fakeIdentityAPI{}
	nav := &recordingNav{}
	a := NewAuth(api, newSession(t), nav)
	ctx := context.Background()

	err := a.Signup(ctx, "", "a@b.c", "pw")
	require.Error(t, err)
	assert.True(t, remote.IsValidation(err))
	assert.Equal(t, 0, api.signups)

	require.NoError(t, a.Signup(ctx, "Asha", "a@b.c", "pw"))
	assert.Equal(t, []string{RouteLogin}, nav.visited())
}
