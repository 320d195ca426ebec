// Package cart specializes the optimistic collection for line items with
// quantities and derived totals, and owns the checkout flow.
package cart

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/events"
	"github.com/talkincode/brewhub/internal/remote"
	"github.com/talkincode/brewhub/internal/syncer"
	"go.uber.org/zap"
)

// cartOps adapts the remote cart endpoints to the synchronizer contract.
// The remote create returns no body, so the optimistic line stands in as
// the echo.
type cartOps struct {
	api remote.CartAPI
}

func (o cartOps) List(ctx context.Context) ([]domain.CartLine, error) {
	return o.api.ListCart(ctx)
}

func (o cartOps) Create(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	return line, o.api.AddCartItem(ctx, line.ID)
}

func (o cartOps) Delete(ctx context.Context, key string) error {
	return o.api.RemoveCartItem(ctx, key)
}

// Manager is the cart: one per authenticated user. Quantity changes stay
// local until checkout finalizes them.
type Manager struct {
	col  *syncer.Collection[domain.CartLine]
	pay  remote.PaymentAPI
	bus  EventBus.Bus
	node *snowflake.Node
}

func New(api remote.CartAPI, pay remote.PaymentAPI, bus EventBus.Bus, node *snowflake.Node) *Manager {
	return &Manager{
		col:  syncer.New[domain.CartLine]("cart", cartOps{api: api}),
		pay:  pay,
		bus:  bus,
		node: node,
	}
}

func (m *Manager) Load(ctx context.Context) error { return m.col.Load(ctx) }

func (m *Manager) Lines() []domain.CartLine { return m.col.Items() }

func (m *Manager) Count() int { return m.col.Len() }

func (m *Manager) Contains(productID string) bool { return m.col.Contains(productID) }

// Add puts a quantity-1 line for the product into the cart.
func (m *Manager) Add(ctx context.Context, p domain.Product) error {
	return m.col.Add(ctx, domain.NewCartLine(p))
}

// Remove drops the line for the product.
func (m *Manager) Remove(ctx context.Context, productID string) error {
	return m.col.Remove(ctx, productID)
}

// Toggle is the product-card "Add to Cart / Remove from Cart" action.
func (m *Manager) Toggle(ctx context.Context, p domain.Product) (added bool, err error) {
	return m.col.Toggle(ctx, domain.NewCartLine(p))
}

// ChangeQuantity adjusts a line's quantity by delta, clamped at 1.
// Decrementing a quantity-1 line is a no-op, never an implicit removal.
// Local-only: quantities are finalized at checkout, not persisted per
// change.
func (m *Manager) ChangeQuantity(productID string, delta int) bool {
	return m.col.MutateLocal(productID, func(l domain.CartLine) domain.CartLine {
		q := l.Quantity + delta
		if q < 1 {
			q = 1
		}
		l.Quantity = q
		return l
	})
}

// Clear drops the local projection without touching the remote cart.
// Used at logout.
func (m *Manager) Clear() { m.col.Clear() }

// Total sums price times quantity over all lines. Empty cart yields 0.
func (m *Manager) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range m.col.Items() {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Checkout sends the full line list to the payment collaborator. On
// success the cart is cleared locally and TopicCheckout published; on
// failure the cart is left untouched. The idempotency key lets the server
// dedupe a re-submitted payment whose first response was lost.
func (m *Manager) Checkout(ctx context.Context, method domain.PaymentMethod) error {
	lines := m.col.Items()
	if len(lines) == 0 {
		return &remote.ValidationError{Fields: []string{"cart"}}
	}
	key := m.node.Generate().String()
	if err := m.pay.Pay(ctx, lines, method, key); err != nil {
		zap.L().Warn("checkout failed", zap.String("idempotency_key", key), zap.Error(err))
		return err
	}
	m.col.Clear()
	zap.L().Info("checkout complete",
		zap.Int("lines", len(lines)),
		zap.String("idempotency_key", key))
	if m.bus != nil {
		m.bus.Publish(events.TopicCheckout)
	}
	return nil
}
