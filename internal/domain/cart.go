package domain

import "github.com/shopspring/decimal"

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 99

// LineItem is one product+weight selection. Name, price and image are copies
// taken when the item was first added.
type LineItem struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductNameHi string          `json:"product_name_hi,omitempty"`
	Weight        Weight          `json:"weight"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
}

func (i LineItem) Matches(productID string, w Weight) bool {
	return i.ProductID == productID && i.Weight == w
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
