package domain

import "github.com/shopspring/decimal"

// Category groups products on the menu. Names are unique within the catalog.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Product is a catalog item. Immutable from the client's perspective;
// created and changed only through the admin API.
type Product struct {
	ID       string          `json:"_id"`
	Name     string          `json:"coffeeName"`
	Price    decimal.Decimal `json:"rate"`
	Image    string          `json:"photo"` // file name under the server's /uploads
	Category *Category       `json:"category,omitempty"`
}

func (p Product) Key() string { return p.ID }

// CategoryName returns the category name or "" for uncategorized products.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// ProductInput is the admin-side create/update payload.
type ProductInput struct {
	Name       string          `json:"coffeeName"`
	Price      decimal.Decimal `json:"rate"`
	Image      string          `json:"photo,omitempty"`
	CategoryID string          `json:"category,omitempty"`
}
