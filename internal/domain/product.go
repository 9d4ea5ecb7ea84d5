package domain

import "github.com/shopspring/decimal"

// Prices is the per-weight price table of a product. A zero value means the
// size is not priced.
type Prices struct {
	G250  decimal.Decimal `json:"g250"`
	G500  decimal.Decimal `json:"g500"`
	G1000 decimal.Decimal `json:"g1000"`
}

type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	NameHi       string   `json:"name_hi,omitempty"`
	Description  string   `json:"description,omitempty"`
	CategorySlug string   `json:"category_slug,omitempty"`
	Prices       Prices   `json:"prices"`
	Images       []string `json:"images,omitempty"`
	InStock      bool     `json:"in_stock"`
	Featured     bool     `json:"featured,omitempty"`
	Badge        string   `json:"badge,omitempty"`
}

// PriceFor looks up the unit price for w. Unpriced sizes yield zero.
func (p Product) PriceFor(w Weight) (decimal.Decimal, error) {
	key, ok := w.PriceKey()
	if !ok {
		return decimal.Zero, ErrUnknownWeight
	}
	switch key {
	case "g250":
		return p.Prices.G250, nil
	case "g500":
		return p.Prices.G500, nil
	default:
		return p.Prices.G1000, nil
	}
}

// PrimaryImage returns the first image or an empty string.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Category groups products on the storefront. Slug is what products
// reference in their category field.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameHi string `json:"name_hi"`
	Slug   string `json:"slug"`
	Emoji  string `json:"emoji,omitempty"`
	Image  string `json:"image,omitempty"`
	Order  int    `json:"order"`
}
