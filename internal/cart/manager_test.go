package cart

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/events"
	"github.com/talkincode/brewhub/internal/remote"
)

type fakeCartAPI struct {
	lines   []domain.CartLine
	addErr  error
	listErr error

	removeErr error
	// blockRemove holds a remove open so local edits can land while the
	// remote call is suspended.
	blockRemove chan struct{}
}

func (f *fakeCartAPI) ListCart(ctx context.Context) ([]domain.CartLine, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.CartLine, len(f.lines))
	copy(out, f.lines)
	return out, nil
}

func (f *fakeCartAPI) AddCartItem(ctx context.Context, productID string) error {
	return f.addErr
}

func (f *fakeCartAPI) RemoveCartItem(ctx context.Context, productID string) error {
	if f.blockRemove != nil {
		<-f.blockRemove
	}
	return f.removeErr
}

type fakePaymentAPI struct {
	calls   int
	lastKey string
	lastN   int
	err     error
}

func (f *fakePaymentAPI) Pay(ctx context.Context, lines []domain.CartLine, method domain.PaymentMethod, key string) error {
	f.calls++
	f.lastKey = key
	f.lastN = len(lines)
	return f.err
}

func newManager(t *testing.T, api remote.CartAPI, pay remote.PaymentAPI) *Manager {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(api, pay, EventBus.New(), node)
}

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func product(id, name, p string) domain.Product {
	return domain.Product{ID: id, Name: name, Price: price(p)}
}

func TestTotalEmptyCartIsZero(t *testing.T) {
	m := newManager(t, &fakeCartAPI{}, &fakePaymentAPI{})
	assert.True(t, m.Total().IsZero())
}

func TestTotalSumsPriceTimesQuantity(t *testing.T) {
	api := &fakeCartAPI{lines: []domain.CartLine{
		{ID: "a", Price: price("5"), Quantity: 2},
		{ID: "b", Price: price("3"), Quantity: 1},
	}}
	m := newManager(t, api, &fakePaymentAPI{})
	require.NoError(t, m.Load(context.Background()))

	assert.Equal(t, "13", m.Total().String())
}

func TestChangeQuantityClampsAtOne(t *testing.T) {
	api := &fakeCartAPI{lines: []domain.CartLine{{ID: "a", Price: price("2.50"), Quantity: 1}}}
	m := newManager(t, api, &fakePaymentAPI{})
	require.NoError(t, m.Load(context.Background()))

	// Decrement at 1 is a no-op, never an implicit removal.
	m.ChangeQuantity("a", -1)
	require.Equal(t, 1, m.Count())
	assert.Equal(t, 1, m.Lines()[0].Quantity)

	m.ChangeQuantity("a", -100)
	assert.Equal(t, 1, m.Lines()[0].Quantity)

	m.ChangeQuantity("a", +3)
	assert.Equal(t, 4, m.Lines()[0].Quantity)

	m.ChangeQuantity("a", -10)
	assert.Equal(t, 1, m.Lines()[0].Quantity)
}

func TestToggleAddsQuantityOneLine(t *testing.T) {
	m := newManager(t, &fakeCartAPI{}, &fakePaymentAPI{})

	added, err := m.Toggle(context.Background(), product("p1", "Latte", "4.20"))
	require.NoError(t, err)
	assert.True(t, added)
	require.Equal(t, 1, m.Count())
	assert.Equal(t, 1, m.Lines()[0].Quantity)
	assert.Equal(t, "Latte", m.Lines()[0].Name)
}

func TestAddRollsBackWhenRemoteFails(t *testing.T) {
	api := &fakeCartAPI{addErr: errors.New("boom")}
	m := newManager(t, api, &fakePaymentAPI{})

	err := m.Add(context.Background(), product("p1", "Latte", "4.20"))
	require.Error(t, err)
	assert.Equal(t, 0, m.Count())
}

func TestQuantityEditSurvivesFailedRemoveOfOtherLine(t *testing.T) {
	api := &fakeCartAPI{
		lines: []domain.CartLine{
			{ID: "a", Price: price("5"), Quantity: 1},
			{ID: "b", Price: price("3"), Quantity: 1},
		},
		removeErr:   errors.New("boom"),
		blockRemove: make(chan struct{}),
	}
	m := newManager(t, api, &fakePaymentAPI{})
	require.NoError(t, m.Load(context.Background()))

	done := make(chan error, 1)
	go func() { done <- m.Remove(context.Background(), "a") }()
	for m.Contains("a") {
		time.Sleep(time.Millisecond)
	}

	// Quantities are local-only until checkout; a rollback of line "a"
	// has no remote truth to restore "b" from and must not touch it.
	require.True(t, m.ChangeQuantity("b", +2))

	close(api.blockRemove)
	require.Error(t, <-done)

	require.Equal(t, 2, m.Count())
	for _, l := range m.Lines() {
		if l.ID == "b" {
			assert.Equal(t, 3, l.Quantity)
		}
	}
}

func TestCheckoutClearsCartAndPublishes(t *testing.T) {
	api := &fakeCartAPI{lines: []domain.CartLine{
		{ID: "a", Price: price("5"), Quantity: 2},
	}}
	pay := &fakePaymentAPI{}
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	bus := EventBus.New()
	fired := make(chan struct{}, 1)
	require.NoError(t, bus.Subscribe(events.TopicCheckout, func() { fired <- struct{}{} }))

	m := New(api, pay, bus, node)
	require.NoError(t, m.Load(context.Background()))
	require.NoError(t, m.Checkout(context.Background(), domain.PayCashOnDelivery))

	assert.Equal(t, 0, m.Count())
	assert.True(t, m.Total().IsZero())
	assert.Equal(t, 1, pay.calls)
	assert.NotEmpty(t, pay.lastKey)
	assert.Equal(t, 1, pay.lastN)
	bus.WaitAsync()
	select {
	case <-fired:
	default:
		t.Fatal("checkout event not published")
	}
}

func TestCheckoutFailureLeavesCartUntouched(t *testing.T) {
	api := &fakeCartAPI{lines: []domain.CartLine{
		{ID: "a", Price: price("5"), Quantity: 2},
		{ID: "b", Price: price("3"), Quantity: 1},
	}}
	pay := &fakePaymentAPI{err: errors.New("gateway down")}
	m := newManager(t, api, pay)
	require.NoError(t, m.Load(context.Background()))

	before := m.Total()
	err := m.Checkout(context.Background(), domain.PayUPI)
	require.Error(t, err)
	assert.Equal(t, 2, m.Count())
	assert.True(t, before.Equal(m.Total()))
}

func TestCheckoutEmptyCartIsValidationError(t *testing.T) {
	pay := &fakePaymentAPI{}
	m := newManager(t, &fakeCartAPI{}, pay)

	err := m.Checkout(context.Background(), domain.PayUPI)
	require.Error(t, err)
	assert.True(t, remote.IsValidation(err))
	assert.Equal(t, 0, pay.calls)
}
