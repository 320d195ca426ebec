package dashboard

import (
	"context"
	"strings"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/talkincode/brewhub/internal/booking"
	"github.com/talkincode/brewhub/internal/catalog"
	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/orders"
	"github.com/talkincode/brewhub/internal/remote"
	"github.com/talkincode/brewhub/internal/session"
	"go.uber.org/zap"
)

// AdminSection is the active view of the admin dashboard.
type AdminSection int

const (
	AdminSectionProducts AdminSection = iota
	AdminSectionUsers
	AdminSectionCategories
	AdminSectionOrders
	AdminSectionBookings
)

// Admin is the administrator's controller: full catalog upkeep, user
// removal and visibility over every user's orders and bookings.
type Admin struct {
	catalog  *catalog.Store
	api      remote.AdminAPI
	bookings *booking.Manager
	history  *orders.History
	sess     *session.Store
	nav      Navigator
	bus      EventBus.Bus

	mu         sync.Mutex
	section    AdminSection
	editTarget string // product ID being edited, "" when the form is a create
	users      []domain.User
	allBooking []domain.Booking
	loggedOut  bool
}

type AdminDeps struct {
	Catalog   *catalog.Store
	Api       remote.AdminAPI
	Bookings  *booking.Manager
	History   *orders.History
	Session   *session.Store
	Navigator Navigator
	Bus       EventBus.Bus
}

func NewAdmin(deps AdminDeps) *Admin {
	return &Admin{
		catalog:  deps.Catalog,
		api:      deps.Api,
		bookings: deps.Bookings,
		history:  deps.History,
		sess:     deps.Session,
		nav:      deps.Navigator,
		bus:      deps.Bus,
	}
}

// Refresh loads the catalog and the user listing.
func (a *Admin) Refresh(ctx context.Context) error {
	if a.sess.LoggedIn() {
		a.mu.Lock()
		a.loggedOut = false
		a.mu.Unlock()
	}
	if err := a.catalog.Load(ctx); err != nil {
		return a.fail(err, "Error fetching data. Please try again later.")
	}
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		return a.fail(err, "Error fetching users. Please try again later.")
	}
	a.mu.Lock()
	a.users = users
	a.mu.Unlock()
	return nil
}

func (a *Admin) Show(s AdminSection) {
	a.mu.Lock()
	a.section = s
	a.mu.Unlock()
}

func (a *Admin) Section() AdminSection {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.section
}

func (a *Admin) Search(term string) { a.catalog.SetSearch(term) }

func (a *Admin) VisibleProducts() []domain.Product { return a.catalog.Filtered() }

func (a *Admin) Categories() []domain.Category { return a.catalog.Categories() }

func (a *Admin) Users() []domain.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.User, len(a.users))
	copy(out, a.users)
	return out
}

// StartEdit marks a product as the edit target of the product form.
func (a *Admin) StartEdit(productID string) {
	a.mu.Lock()
	a.editTarget = productID
	a.mu.Unlock()
}

func (a *Admin) CancelEdit() { a.StartEdit("") }

func (a *Admin) EditTarget() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editTarget
}

// SaveProduct creates or updates depending on whether an edit target is
// set, then reloads the catalog so every view sees server truth.
func (a *Admin) SaveProduct(ctx context.Context, in domain.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &remote.ValidationError{Fields: []string{"name"}}
	}
	if in.Price.IsNegative() {
		return &remote.ValidationError{Fields: []string{"price"}}
	}
	target := a.EditTarget()
	var err error
	if target == "" {
		_, err = a.api.CreateProduct(ctx, in)
	} else {
		_, err = a.api.UpdateProduct(ctx, target, in)
	}
	if err != nil {
		return a.fail(err, "Error saving product. Please try again later.")
	}
	a.CancelEdit()
	return a.catalog.Load(ctx)
}

func (a *Admin) DeleteProduct(ctx context.Context, productID string) error {
	if err := a.api.DeleteProduct(ctx, productID); err != nil {
		return a.fail(err, "Error deleting product. Please try again later.")
	}
	return a.catalog.Load(ctx)
}

func (a *Admin) CreateCategory(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return &remote.ValidationError{Fields: []string{"name"}}
	}
	if _, err := a.api.CreateCategory(ctx, name); err != nil {
		return a.fail(err, "Error adding category. Please try again later.")
	}
	return a.catalog.Load(ctx)
}

func (a *Admin) DeleteUser(ctx context.Context, userID string) error {
	if err := a.api.DeleteUser(ctx, userID); err != nil {
		return a.fail(err, "Error deleting user. Please try again later.")
	}
	a.mu.Lock()
	kept := a.users[:0]
	for _, u := range a.users {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	a.users = kept
	a.mu.Unlock()
	return nil
}

// AllOrders loads every user's completed orders.
func (a *Admin) AllOrders(ctx context.Context) ([]domain.Order, error) {
	if err := a.history.Load(ctx); err != nil {
		return nil, a.fail(err, "Error fetching orders. Please try again later.")
	}
	a.Show(AdminSectionOrders)
	return a.history.Orders(), nil
}

// AllBookings loads every user's table reservations.
func (a *Admin) AllBookings(ctx context.Context) ([]domain.Booking, error) {
	all, err := a.bookings.ListAll(ctx)
	if err != nil {
		return nil, a.fail(err, "Error fetching bookings. Please try again later.")
	}
	a.mu.Lock()
	a.allBooking = all
	a.section = AdminSectionBookings
	a.mu.Unlock()
	return all, nil
}

// Logout clears the stored credential and returns to the admin login.
func (a *Admin) Logout() {
	a.mu.Lock()
	a.loggedOut = true
	a.mu.Unlock()
	if err := a.sess.Clear(); err != nil {
		zap.L().Warn("failed to clear session", zap.Error(err))
	}
	a.nav.Navigate(RouteAdminLogin)
}

func (a *Admin) fail(err error, msg string) error {
	if errors.Is(err, remote.ErrUnauthorized) {
		a.handleUnauthorized()
		return err
	}
	notify(a.bus, msg)
	return err
}

func (a *Admin) handleUnauthorized() {
	a.mu.Lock()
	if a.loggedOut {
		a.mu.Unlock()
		return
	}
	a.loggedOut = true
	a.mu.Unlock()
	zap.L().Info("admin session rejected, redirecting to login")
	if err := a.sess.Clear(); err != nil {
		zap.L().Warn("failed to clear session", zap.Error(err))
	}
	a.nav.Navigate(RouteAdminLogin)
}
