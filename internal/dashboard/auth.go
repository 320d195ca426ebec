package dashboard

import (
	"context"

	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/remote"
	"github.com/talkincode/brewhub/internal/session"
	"go.uber.org/zap"
)

// Auth drives the login, admin login and signup views.
type Auth struct {
	api  remote.IdentityAPI
	sess *session.Store
	nav  Navigator
}

func NewAuth(api remote.IdentityAPI, sess *session.Store, nav Navigator) *Auth {
	return &Auth{api: api, sess: sess, nav: nav}
}

// Login authenticates a customer. A credential with any other role is
// rejected without being stored.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	id, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if id.Role != domain.RoleUser {
		return remote.ErrUnauthorized
	}
	if err := a.sess.Set(id); err != nil {
		return err
	}
	zap.L().Info("login", zap.String("role", id.Role))
	a.nav.Navigate(RouteUserDashboard)
	return nil
}

// LoginAdmin authenticates an administrator against the dedicated admin
// endpoint. The server already rejects non-admin accounts there; the
// local role check just refuses to store a credential that slipped
// through without the role.
func (a *Auth) LoginAdmin(ctx context.Context, email, password string) error {
	id, err := a.api.LoginAdmin(ctx, email, password)
	if err != nil {
		return err
	}
	if !id.IsAdmin() {
		return remote.ErrUnauthorized
	}
	if err := a.sess.Set(id); err != nil {
		return err
	}
	zap.L().Info("admin login")
	a.nav.Navigate(RouteAdminDashboard)
	return nil
}

// Signup registers a new account and sends the user to the login view.
func (a *Auth) Signup(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		var missing []string
		if name == "" {
			missing = append(missing, "name")
		}
		if email == "" {
			missing = append(missing, "email")
		}
		if password == "" {
			missing = append(missing, "password")
		}
		return &remote.ValidationError{Fields: missing}
	}
	if err := a.api.Signup(ctx, name, email, password); err != nil {
		return err
	}
	a.nav.Navigate(RouteLogin)
	return nil
}
