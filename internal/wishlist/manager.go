// Package wishlist specializes the optimistic collection as a membership
// set of products. No quantity, no total; Toggle is the primary entry
// point from the product cards.
package wishlist

import (
	"context"

	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/remote"
	"github.com/talkincode/brewhub/internal/syncer"
)

type wishlistOps struct {
	api remote.WishlistAPI
}

func (o wishlistOps) List(ctx context.Context) ([]domain.Product, error) {
	return o.api.ListWishlist(ctx)
}

func (o wishlistOps) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	return p, o.api.AddWishlistItem(ctx, p.ID)
}

func (o wishlistOps) Delete(ctx context.Context, key string) error {
	return o.api.RemoveWishlistItem(ctx, key)
}

type Manager struct {
	col *syncer.Collection[domain.Product]
}

func New(api remote.WishlistAPI) *Manager {
	return &Manager{col: syncer.New[domain.Product]("wishlist", wishlistOps{api: api})}
}

func (m *Manager) Load(ctx context.Context) error { return m.col.Load(ctx) }

func (m *Manager) Products() []domain.Product { return m.col.Items() }

func (m *Manager) Contains(productID string) bool { return m.col.Contains(productID) }

func (m *Manager) Remove(ctx context.Context, productID string) error {
	return m.col.Remove(ctx, productID)
}

// Toggle is the "like" action: present removes, absent adds.
func (m *Manager) Toggle(ctx context.Context, p domain.Product) (added bool, err error) {
	return m.col.Toggle(ctx, p)
}

// Clear drops the local projection, e.g. at logout.
func (m *Manager) Clear() { m.col.Clear() }
