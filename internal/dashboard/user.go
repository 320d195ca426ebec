package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/talkincode/brewhub/internal/booking"
	"github.com/talkincode/brewhub/internal/cart"
	"github.com/talkincode/brewhub/internal/catalog"
	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/events"
	"github.com/talkincode/brewhub/internal/orders"
	"github.com/talkincode/brewhub/internal/remote"
	"github.com/talkincode/brewhub/internal/session"
	"github.com/talkincode/brewhub/internal/syncer"
	"github.com/talkincode/brewhub/internal/wishlist"
	"go.uber.org/zap"
)

// Section is the active view of the user dashboard.
type Section int

const (
	SectionProducts Section = iota
	SectionWishlist
	SectionCart
	SectionBookings
	SectionBookTable
	SectionHistory
)

// User is the signed-in customer's controller.
type User struct {
	catalog  *catalog.Store
	cart     *cart.Manager
	wishlist *wishlist.Manager
	bookings *booking.Manager
	history  *orders.History
	sess     *session.Store
	nav      Navigator
	bus      EventBus.Bus

	// checkoutRedirect is how long the success message stays visible
	// before navigating back to the dashboard.
	checkoutRedirect time.Duration

	mu        sync.Mutex
	section   Section
	loggedOut bool
}

type UserDeps struct {
	Catalog          *catalog.Store
	Cart             *cart.Manager
	Wishlist         *wishlist.Manager
	Bookings         *booking.Manager
	History          *orders.History
	Session          *session.Store
	Navigator        Navigator
	Bus              EventBus.Bus
	CheckoutRedirect time.Duration
}

func NewUser(deps UserDeps) *User {
	u := &User{
		catalog:          deps.Catalog,
		cart:             deps.Cart,
		wishlist:         deps.Wishlist,
		bookings:         deps.Bookings,
		history:          deps.History,
		sess:             deps.Session,
		nav:              deps.Navigator,
		bus:              deps.Bus,
		checkoutRedirect: deps.CheckoutRedirect,
	}
	if u.checkoutRedirect <= 0 {
		u.checkoutRedirect = 2 * time.Second
	}
	if u.bus != nil {
		_ = u.bus.Subscribe(events.TopicCheckout, u.onCheckout)
	}
	return u
}

// Refresh loads everything the dashboard renders: catalog, wishlist, cart
// and order history. An unauthorized failure clears the credential and
// redirects to the login view.
func (u *User) Refresh(ctx context.Context) error {
	// A valid credential means a fresh login; re-arm the redirect latch
	// so a later rejection is handled again.
	if u.sess.LoggedIn() {
		u.mu.Lock()
		u.loggedOut = false
		u.mu.Unlock()
	}
	loads := []func(context.Context) error{
		u.catalog.Load,
		u.wishlist.Load,
		u.cart.Load,
		u.history.Load,
	}
	for _, load := range loads {
		if err := load(ctx); err != nil {
			return u.fail(err, "Error fetching data. Please try again later.")
		}
	}
	return nil
}

func (u *User) Show(s Section) {
	u.mu.Lock()
	u.section = s
	u.mu.Unlock()
}

func (u *User) Section() Section {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.section
}

// Search updates the search term; the visible product list narrows to
// case-insensitive name matches.
func (u *User) Search(term string) {
	u.catalog.SetSearch(term)
}

// FilterCategory selects a category; catalog.AllCategories resets it.
func (u *User) FilterCategory(name string) {
	u.catalog.SetCategory(name)
}

// VisibleProducts is the filtered product list for the products section.
func (u *User) VisibleProducts() []domain.Product {
	return u.catalog.Filtered()
}

func (u *User) Categories() []domain.Category { return u.catalog.Categories() }

func (u *User) WishlistProducts() []domain.Product { return u.wishlist.Products() }

func (u *User) CartLines() []domain.CartLine { return u.cart.Lines() }

func (u *User) CartCount() int { return u.cart.Count() }

func (u *User) InCart(productID string) bool { return u.cart.Contains(productID) }

func (u *User) InWishlist(productID string) bool { return u.wishlist.Contains(productID) }

func (u *User) Bookings() []domain.Booking { return u.bookings.Bookings() }

func (u *User) Orders() []domain.Order { return u.history.Orders() }

// ToggleWishlist is the heart icon on a product card.
func (u *User) ToggleWishlist(ctx context.Context, p domain.Product) {
	if _, err := u.wishlist.Toggle(ctx, p); err != nil {
		u.mutationFailed(err, "Error updating wishlist. Please try again later.")
	}
}

// ToggleCart is the add/remove button on a product card.
func (u *User) ToggleCart(ctx context.Context, p domain.Product) {
	if _, err := u.cart.Toggle(ctx, p); err != nil {
		u.mutationFailed(err, "Error updating cart. Please try again later.")
	}
}

// ChangeQuantity adjusts a cart line locally; quantities are finalized at
// checkout.
func (u *User) ChangeQuantity(productID string, delta int) {
	u.cart.ChangeQuantity(productID, delta)
}

// BookTable submits the reservation form.
func (u *User) BookTable(ctx context.Context, b domain.Booking) error {
	err := u.bookings.Add(ctx, b)
	switch {
	case err == nil:
		notify(u.bus, "Booking successful!")
		return nil
	case remote.IsValidation(err):
		// Precondition failure: surfaced inline, no network call happened.
		return err
	default:
		return u.fail(err, "Booking failed. Please try again.")
	}
}

// MyBookings loads and shows the caller's reservations.
func (u *User) MyBookings(ctx context.Context) error {
	if err := u.bookings.Load(ctx); err != nil {
		return u.fail(err, "Error fetching bookings. Please try again later.")
	}
	u.Show(SectionBookings)
	return nil
}

// Checkout runs the payment call. On success the cart manager clears
// itself and publishes TopicCheckout, which schedules the delayed
// navigation back to the dashboard.
func (u *User) Checkout(ctx context.Context, method domain.PaymentMethod) error {
	if err := u.cart.Checkout(ctx, method); err != nil {
		if remote.IsValidation(err) {
			return err
		}
		return u.fail(err, "Error processing payment. Please try again later.")
	}
	notify(u.bus, "Payment successful! Redirecting to dashboard...")
	return nil
}

func (u *User) onCheckout() {
	time.AfterFunc(u.checkoutRedirect, func() {
		u.mu.Lock()
		out := u.loggedOut
		u.mu.Unlock()
		if !out {
			u.nav.Navigate(RouteUserDashboard)
		}
	})
}

// Logout clears the stored credential and returns to the login view.
func (u *User) Logout() {
	u.mu.Lock()
	u.loggedOut = true
	u.mu.Unlock()
	if err := u.sess.Clear(); err != nil {
		zap.L().Warn("failed to clear session", zap.Error(err))
	}
	u.cart.Clear()
	u.wishlist.Clear()
	u.bookings.Clear()
	u.history.Clear()
	u.nav.Navigate(RouteLogin)
}

// fail translates a load failure. Unauthorized means the credential is
// gone or stale: redirect once, suppress the error popup loop.
func (u *User) fail(err error, msg string) error {
	if errors.Is(err, remote.ErrUnauthorized) {
		u.handleUnauthorized()
		return err
	}
	notify(u.bus, msg)
	return err
}

// mutationFailed reports an optimistic mutation that was rolled back.
// ErrPending is silent: the first click is still in flight and will
// settle the state.
func (u *User) mutationFailed(err error, msg string) {
	if errors.Is(err, syncer.ErrPending) {
		return
	}
	_ = u.fail(err, msg)
}

func (u *User) handleUnauthorized() {
	u.mu.Lock()
	if u.loggedOut {
		u.mu.Unlock()
		return
	}
	u.loggedOut = true
	u.mu.Unlock()
	zap.L().Info("session rejected, redirecting to login")
	if err := u.sess.Clear(); err != nil {
		zap.L().Warn("failed to clear session", zap.Error(err))
	}
	u.nav.Navigate(RouteLogin)
}
