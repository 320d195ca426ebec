package domain

import "github.com/shopspring/decimal"

// CartLine is one product in the cart plus a quantity. The line ID is the
// product ID: the remote cart collection is keyed by product.
type CartLine struct {
	ID       string          `json:"_id"`
	Name     string          `json:"coffeeName"`
	Price    decimal.Decimal `json:"rate"`
	Image    string          `json:"photo,omitempty"`
	Quantity int             `json:"quantity"`
}

func (l CartLine) Key() string { return l.ID }

// LineTotal is price times quantity, computed on demand.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewCartLine builds the quantity-1 line created on first add.
func NewCartLine(p Product) CartLine {
	return CartLine{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
	}
}

// PaymentMethod is the selection on the payment view. The server does not
// capture real payments; the method travels with the checkout call.
type PaymentMethod string

const (
	PayCreditCard     PaymentMethod = "Credit Card"
	PayDebitCard      PaymentMethod = "Debit Card"
	PayPayPal         PaymentMethod = "PayPal"
	PayUPI            PaymentMethod = "UPI"
	PayNetBanking     PaymentMethod = "Net Banking"
	PayCashOnDelivery PaymentMethod = "Cash on Delivery"
)
