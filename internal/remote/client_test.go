package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/brewhub/config"
	"github.com/talkincode/brewhub/internal/domain"
)

type staticCreds string

func (c staticCreds) Token() string { return string(c) }

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(config.ApiConfig{BaseURL: srv.URL, Timeout: 2}, staticCreds(token))
	return c, srv
}

func TestBearerHeaderAttachedWhenLoggedIn(t *testing.T) {
	var gotAuth, gotReqID string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`[]`))
	}), "tok-1")

	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var sawAuth bool
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}), "")

	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestStatusCodeTaxonomy(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrUnavailable},
		{http.StatusBadGateway, ErrUnavailable},
	}
	for _, tc := range cases {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}), "tok")

		err := c.AddCartItem(context.Background(), "p1")
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	c := NewClient(config.ApiConfig{BaseURL: srv.URL, Timeout: 1}, staticCreds("tok"))

	_, err := c.ListCart(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestListProductsDecodesDocumentShape(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"_id":"p1","coffeeName":"Latte","rate":4.2,"photo":"latte.jpg","category":{"_id":"c1","name":"Hot"}},
			{"_id":"p2","coffeeName":"Water","rate":0}
		]`))
	}), "tok")

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Latte", products[0].Name)
	assert.Equal(t, "4.2", products[0].Price.String())
	assert.Equal(t, "Hot", products[0].CategoryName())
	assert.Equal(t, "", products[1].CategoryName())
}

func TestLoginReturnsIdentity(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"tok-9","role":"admin"}`))
	}), "")

	id, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-9", id.Token)
	assert.True(t, id.IsAdmin())
}

func TestLoginAdminUsesAdminEndpoint(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login-admin", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"tok-7","role":"admin"}`))
	}), "")

	id, err := c.LoginAdmin(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-7", id.Token)
	assert.True(t, id.IsAdmin())
}

func TestLoginWithoutTokenIsUnauthorized(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}), "")

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPaymentPayloadCarriesLinesAndKey(t *testing.T) {
	var got paymentPayload
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}), "tok")

	lines := []domain.CartLine{{ID: "p1", Name: "Latte", Quantity: 2}}
	err := c.Pay(context.Background(), lines, domain.PayUPI, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "key-1", got.IdempotencyKey)
	assert.Equal(t, domain.PayUPI, got.Method)
	require.Len(t, got.CartItems, 1)
	assert.Equal(t, 2, got.CartItems[0].Quantity)
}

func TestDeleteTargetsItemPath(t *testing.T) {
	var gotPath, gotMethod string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.WriteHeader(http.StatusOK)
	}), "tok")

	require.NoError(t, c.RemoveWishlistItem(context.Background(), "p42"))
	assert.Equal(t, "/wishlist/p42", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}
