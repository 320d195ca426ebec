package remote

import (
	"context"

	"github.com/talkincode/brewhub/internal/domain"
)

// Credentials supplies the bearer token attached to authorized calls.
// The session store implements this; tests substitute a literal.
type Credentials interface {
	Token() string
}

// CatalogAPI reads the product catalog. Filtering is client-side, so the
// interface is list-only.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CartAPI is the remote cart collection, keyed by product ID.
type CartAPI interface {
	ListCart(ctx context.Context) ([]domain.CartLine, error)
	AddCartItem(ctx context.Context, productID string) error
	RemoveCartItem(ctx context.Context, productID string) error
}

// WishlistAPI is the remote wishlist collection, keyed by product ID.
type WishlistAPI interface {
	ListWishlist(ctx context.Context) ([]domain.Product, error)
	AddWishlistItem(ctx context.Context, productID string) error
	RemoveWishlistItem(ctx context.Context, productID string) error
}

// BookingAPI creates and lists table reservations. ListAllBookings is
// admin-only; the server enforces the role.
type BookingAPI interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, b domain.Booking) error
}

// OrderAPI lists completed orders: own for users, all for admins.
type OrderAPI interface {
	ListOwnOrders(ctx context.Context) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
}

// PaymentAPI finalizes a checkout. The server creates the order records
// as a side effect of a successful call.
type PaymentAPI interface {
	Pay(ctx context.Context, lines []domain.CartLine, method domain.PaymentMethod, idempotencyKey string) error
}

// IdentityAPI issues credentials. Token verification stays server-side.
// LoginAdmin is a distinct endpoint; the server rejects non-admin
// accounts there.
type IdentityAPI interface {
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	LoginAdmin(ctx context.Context, email, password string) (domain.Identity, error)
	Signup(ctx context.Context, name, email, password string) error
}

// AdminAPI covers the admin-only mutations: product and category upkeep
// and user removal.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, in domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	CreateCategory(ctx context.Context, name string) (domain.Category, error)
}
