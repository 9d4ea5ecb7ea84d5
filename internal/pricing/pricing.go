// Package pricing derives delivery fee, discount and grand total from a cart
// subtotal. Every function here is pure.
package pricing

import (
	"fmt"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/shopspring/decimal"
)

// Policy decides how long a validated coupon keeps applying.
type Policy string

const (
	// PolicyRevalidate drops the discount as soon as the subtotal moves away
	// from the one the coupon was validated against.
	PolicyRevalidate Policy = "revalidate"
	// PolicyPinned keeps the discount until checkout, where it is checked
	// again against the final subtotal.
	PolicyPinned Policy = "pinned"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyRevalidate:
		return PolicyRevalidate, nil
	case PolicyPinned:
		return PolicyPinned, nil
	}
	return "", fmt.Errorf("unknown coupon policy %q", s)
}

type Config struct {
	FreeDeliveryThreshold decimal.Decimal
	DeliveryFee           decimal.Decimal
	Policy                Policy
}

func DefaultConfig() Config {
	return Config{
		FreeDeliveryThreshold: decimal.NewFromInt(500),
		DeliveryFee:           decimal.NewFromInt(40),
		Policy:                PolicyRevalidate,
	}
}

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	if cfg.Policy == "" {
		cfg.Policy = PolicyRevalidate
	}
	return &Calculator{cfg: cfg}
}

type Input struct {
	Subtotal     decimal.Decimal
	ItemCount    int
	DeliveryType domain.DeliveryType
	Coupon       *domain.CouponApplication
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	CouponCode  string          `json:"coupon_code,omitempty"`
	CouponStale bool            `json:"coupon_stale,omitempty"`
	// ToFreeDelivery is how much more subtotal waives the fee; zero once
	// reached.
	ToFreeDelivery decimal.Decimal `json:"to_free_delivery"`
}

func (c *Calculator) Policy() Policy {
	return c.cfg.Policy
}

// DeliveryFee is zero for pickup, for an empty cart, and at or above the
// free-delivery threshold.
func (c *Calculator) DeliveryFee(subtotal decimal.Decimal, itemCount int, dt domain.DeliveryType) decimal.Decimal {
	if dt == domain.DeliveryTypePickup || itemCount <= 0 {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(c.cfg.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return c.cfg.DeliveryFee
}

// CouponApplies reports whether coupon's discount counts against subtotal
// under the configured policy.
func (c *Calculator) CouponApplies(coupon *domain.CouponApplication, subtotal decimal.Decimal) bool {
	if coupon == nil {
		return false
	}
	if c.cfg.Policy == PolicyPinned {
		return true
	}
	return coupon.ValidFor(subtotal)
}

func (c *Calculator) Quote(in Input) Totals {
	fee := c.DeliveryFee(in.Subtotal, in.ItemCount, in.DeliveryType)

	t := Totals{
		Subtotal:       in.Subtotal,
		DeliveryFee:    fee,
		Discount:       decimal.Zero,
		ToFreeDelivery: decimal.Max(decimal.Zero, c.cfg.FreeDeliveryThreshold.Sub(in.Subtotal)),
	}
	if in.Coupon != nil {
		t.CouponCode = in.Coupon.Code
		if c.CouponApplies(in.Coupon, in.Subtotal) {
			t.Discount = in.Coupon.Discount
		} else {
			t.CouponStale = true
		}
	}

	t.Total = decimal.Max(decimal.Zero, in.Subtotal.Add(fee).Sub(t.Discount))
	return t
}
