package domain

import "github.com/shopspring/decimal"

// CouponApplication is a coupon the backend accepted for a given subtotal.
type CouponApplication struct {
	Code              string          `json:"code"`
	Discount          decimal.Decimal `json:"discount"`
	Description       string          `json:"description"`
	ValidatedSubtotal decimal.Decimal `json:"validated_subtotal"`
}

// ValidFor reports whether the coupon was validated against subtotal.
func (c CouponApplication) ValidFor(subtotal decimal.Decimal) bool {
	return c.ValidatedSubtotal.Equal(subtotal)
}
