package remote

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/talkincode/brewhub/config"
	"github.com/talkincode/brewhub/internal/domain"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the BrewHub document-store API. One instance serves all
// collections; the credential is read per call so login/logout take effect
// on the next request.
type Client struct {
	base    string
	timeout time.Duration
	creds   Credentials
}

var (
	_ CatalogAPI  = (*Client)(nil)
	_ CartAPI     = (*Client)(nil)
	_ WishlistAPI = (*Client)(nil)
	_ BookingAPI  = (*Client)(nil)
	_ OrderAPI    = (*Client)(nil)
	_ PaymentAPI  = (*Client)(nil)
	_ IdentityAPI = (*Client)(nil)
	_ AdminAPI    = (*Client)(nil)
)

func NewClient(cfg config.ApiConfig, creds Credentials) *Client {
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.RequestTimeout(),
		creds:   creds,
	}
}

func (c *Client) url(path string) string { return c.base + path }

func (c *Client) headers() gout.H {
	h := gout.H{"X-Request-Id": uuid.NewString()}
	if tok := c.creds.Token(); tok != "" {
		h["Authorization"] = "Bearer " + tok
	}
	return h
}

// exec runs a prepared dataflow, maps the status code onto the failure
// taxonomy and decodes a 2xx body into out when out is non-nil.
func (c *Client) exec(ctx context.Context, df *dataflow.DataFlow, path string, out interface{}) error {
	var (
		code int
		body []byte
	)
	err := df.WithContext(ctx).
		SetTimeout(c.timeout).
		SetHeader(c.headers()).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		zap.L().Warn("remote call failed", zap.String("path", path), zap.Error(err))
		return errors.Wrapf(ErrUnavailable, "%s: %s", path, err.Error())
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code < 200 || code >= 300:
		zap.L().Warn("remote call rejected", zap.String("path", path), zap.Int("status", code))
		return errors.Wrapf(ErrUnavailable, "%s: status %d", path, code)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(ErrUnavailable, "%s: decode: %s", path, err.Error())
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.exec(ctx, gout.GET(c.url(path)), path, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	df := gout.POST(c.url(path))
	if payload != nil {
		df = df.SetJSON(payload)
	}
	return c.exec(ctx, df, path, out)
}

func (c *Client) put(ctx context.Context, path string, payload, out interface{}) error {
	return c.exec(ctx, gout.PUT(c.url(path)).SetJSON(payload), path, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.exec(ctx, gout.DELETE(c.url(path)), path, nil)
}

// ---- catalog ----

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.get(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- cart ----

func (c *Client) ListCart(ctx context.Context) ([]domain.CartLine, error) {
	var out []domain.CartLine
	if err := c.get(ctx, "/cart", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddCartItem(ctx context.Context, productID string) error {
	return c.post(ctx, "/cart", gout.H{"productId": productID}, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	return c.del(ctx, "/cart/"+productID)
}

// ---- wishlist ----

func (c *Client) ListWishlist(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "/wishlist", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddWishlistItem(ctx context.Context, productID string) error {
	return c.post(ctx, "/wishlist", gout.H{"productId": productID}, nil)
}

func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) error {
	return c.del(ctx, "/wishlist/"+productID)
}

// ---- bookings ----

type bookingPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"number,omitempty"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Guests  int    `json:"guests"`
	Message string `json:"message,omitempty"`
}

func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.get(ctx, "/table-bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.get(ctx, "/all-table-bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBooking(ctx context.Context, b domain.Booking) error {
	// The local placeholder ID never leaves the client; the server assigns
	// the real one.
	return c.post(ctx, "/table-bookings", bookingPayload{
		Name:    b.Name,
		Email:   b.Email,
		Phone:   b.Phone,
		Date:    b.Date,
		Time:    b.Time,
		Guests:  b.Guests,
		Message: b.Message,
	}, nil)
}

// ---- orders ----

func (c *Client) ListOwnOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.get(ctx, "/orders1", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.get(ctx, "/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- payment ----

type paymentPayload struct {
	CartItems      []domain.CartLine    `json:"cartItems"`
	Method         domain.PaymentMethod `json:"paymentMethod"`
	IdempotencyKey string               `json:"idempotencyKey"`
}

func (c *Client) Pay(ctx context.Context, lines []domain.CartLine, method domain.PaymentMethod, idempotencyKey string) error {
	return c.post(ctx, "/payment", paymentPayload{
		CartItems:      lines,
		Method:         method,
		IdempotencyKey: idempotencyKey,
	}, nil)
}

// ---- identity ----

func (c *Client) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	var out domain.Identity
	err := c.post(ctx, "/login", gout.H{"email": email, "password": password}, &out)
	if err != nil {
		return domain.Identity{}, err
	}
	if !out.Valid() {
		return domain.Identity{}, ErrUnauthorized
	}
	return out, nil
}

func (c *Client) LoginAdmin(ctx context.Context, email, password string) (domain.Identity, error) {
	var out domain.Identity
	err := c.post(ctx, "/login-admin", gout.H{"email": email, "password": password}, &out)
	if err != nil {
		return domain.Identity{}, err
	}
	if !out.Valid() {
		return domain.Identity{}, ErrUnauthorized
	}
	return out, nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	return c.post(ctx, "/signup", gout.H{"name": name, "email": email, "password": password}, nil)
}

// ---- admin ----

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.get(ctx, "/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.del(ctx, "/users/"+userID)
}

func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var out domain.Product
	if err := c.post(ctx, "/products", in, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, in domain.ProductInput) (domain.Product, error) {
	var out domain.Product
	if err := c.put(ctx, "/products/"+productID, in, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.del(ctx, "/products/"+productID)
}

func (c *Client) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	var out domain.Category
	if err := c.post(ctx, "/categories", gout.H{"name": name}, &out); err != nil {
		return domain.Category{}, err
	}
	return out, nil
}
