package pricing

import (
	"testing"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rs(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDeliveryFeeBoundary(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	tests := []struct {
		name     string
		subtotal decimal.Decimal
		count    int
		dt       domain.DeliveryType
		want     decimal.Decimal
	}{
		{"just below threshold", rs(499), 1, domain.DeliveryTypeDelivery, rs(40)},
		{"at threshold", rs(500), 1, domain.DeliveryTypeDelivery, rs(0)},
		{"above threshold", rs(1200), 3, domain.DeliveryTypeDelivery, rs(0)},
		{"empty cart", rs(0), 0, domain.DeliveryTypeDelivery, rs(0)},
		{"empty cart with stray subtotal", rs(100), 0, domain.DeliveryTypeDelivery, rs(0)},
		{"pickup waives fee", rs(120), 1, domain.DeliveryTypePickup, rs(0)},
		{"fractional below", decimal.RequireFromString("499.99"), 2, domain.DeliveryTypeDelivery, rs(40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.DeliveryFee(tt.subtotal, tt.count, tt.dt)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestConfigurableThresholdAndFee(t *testing.T) {
	c := NewCalculator(Config{FreeDeliveryThreshold: rs(1000), DeliveryFee: rs(60)})

	assert.True(t, c.DeliveryFee(rs(999), 1, domain.DeliveryTypeDelivery).Equal(rs(60)))
	assert.True(t, c.DeliveryFee(rs(1000), 1, domain.DeliveryTypeDelivery).IsZero())
	assert.Equal(t, PolicyRevalidate, c.Policy())
}

func TestQuote_CheckoutExample(t *testing.T) {
	c := NewCalculator(DefaultConfig())
	coupon := &domain.CouponApplication{Code: "FIRST50", Discount: rs(50), ValidatedSubtotal: rs(600)}

	got := c.Quote(Input{Subtotal: rs(600), ItemCount: 3, Coupon: coupon})

	assert.True(t, got.DeliveryFee.IsZero())
	assert.True(t, got.Discount.Equal(rs(50)))
	assert.True(t, got.Total.Equal(rs(550)))
	assert.Equal(t, "FIRST50", got.CouponCode)
	assert.False(t, got.CouponStale)
	assert.True(t, got.ToFreeDelivery.IsZero())
}

func TestQuote_TotalNeverNegative(t *testing.T) {
	c := NewCalculator(DefaultConfig())
	coupon := &domain.CouponApplication{Code: "BIG", Discount: rs(1000), ValidatedSubtotal: rs(100)}

	got := c.Quote(Input{Subtotal: rs(100), ItemCount: 1, Coupon: coupon})

	assert.True(t, got.Total.IsZero())
}

func TestQuote_RevalidatePolicyDropsStaleCoupon(t *testing.T) {
	c := NewCalculator(DefaultConfig())
	coupon := &domain.CouponApplication{Code: "RASRAJ10", Discount: rs(60), ValidatedSubtotal: rs(600)}

	got := c.Quote(Input{Subtotal: rs(350), ItemCount: 2, Coupon: coupon})

	assert.True(t, got.CouponStale)
	assert.True(t, got.Discount.IsZero())
	assert.True(t, got.Total.Equal(rs(390)))
	assert.True(t, got.ToFreeDelivery.Equal(rs(150)))
}

func TestQuote_PinnedPolicyKeepsCoupon(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyPinned
	c := NewCalculator(cfg)
	coupon := &domain.CouponApplication{Code: "RASRAJ10", Discount: rs(60), ValidatedSubtotal: rs(600)}

	got := c.Quote(Input{Subtotal: rs(350), ItemCount: 2, Coupon: coupon})

	assert.False(t, got.CouponStale)
	assert.True(t, got.Discount.Equal(rs(60)))
	assert.True(t, got.Total.Equal(rs(330)))
}

func TestQuote_IsIdempotent(t *testing.T) {
	c := NewCalculator(DefaultConfig())
	in := Input{Subtotal: rs(450), ItemCount: 2}

	first, second := c.Quote(in), c.Quote(in)
	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.DeliveryFee.Equal(second.DeliveryFee))
	assert.True(t, first.Total.Equal(rs(490)))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyRevalidate, p)

	p, err = ParsePolicy("pinned")
	require.NoError(t, err)
	assert.Equal(t, PolicyPinned, p)

	_, err = ParsePolicy("forever")
	assert.Error(t, err)
}
