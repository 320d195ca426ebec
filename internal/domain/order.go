package domain

import "github.com/shopspring/decimal"

// Order is created server-side when a payment succeeds. Price is the
// at-purchase snapshot, not a live product reference.
type Order struct {
	ID          string          `json:"_id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	User        *UserRef        `json:"userId,omitempty"`
}

// OrderTotal sums price times quantity over a list of orders.
func OrderTotal(orders []Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Price.Mul(decimal.NewFromInt(int64(o.Quantity))))
	}
	return total
}
