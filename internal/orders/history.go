// Package orders is the read-only projection over completed orders,
// role-filtered: users see their own, admins see everyone's.
package orders

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/remote"
)

// RoleSource tells the history which endpoint applies.
type RoleSource interface {
	IsAdmin() bool
}

type History struct {
	api  remote.OrderAPI
	role RoleSource

	mu     sync.RWMutex
	orders []domain.Order
}

func NewHistory(api remote.OrderAPI, role RoleSource) *History {
	return &History{api: api, role: role}
}

// Load fetches own orders for users and all orders for admins.
func (h *History) Load(ctx context.Context) error {
	var (
		fetched []domain.Order
		err     error
	)
	if h.role.IsAdmin() {
		fetched, err = h.api.ListAllOrders(ctx)
	} else {
		fetched, err = h.api.ListOwnOrders(ctx)
	}
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.orders = fetched
	h.mu.Unlock()
	return nil
}

func (h *History) Orders() []domain.Order {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.Order, len(h.orders))
	copy(out, h.orders)
	return out
}

// Total is the order-summary amount on the payment view.
func (h *History) Total() decimal.Decimal {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return domain.OrderTotal(h.orders)
}

// Clear drops the projection, e.g. at logout.
func (h *History) Clear() {
	h.mu.Lock()
	h.orders = nil
	h.mu.Unlock()
}
