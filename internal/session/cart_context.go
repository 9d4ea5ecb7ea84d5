package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/cart"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/metrics"
	"github.com/UTarts/RASRAJ-themithaishop/internal/payment"
	"github.com/UTarts/RASRAJ-themithaishop/internal/pricing"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartContext is a session's cart together with the coupon applied to it and
// the in-flight checkout guard.
type CartContext struct {
	engine *cart.Engine
	calc   *pricing.Calculator
	api    Backend

	mu      sync.Mutex
	coupon  *domain.CouponApplication
	pending *payment.Intent

	placing atomic.Bool
}

func newCartContext(engine *cart.Engine, calc *pricing.Calculator, api Backend) *CartContext {
	return &CartContext{engine: engine, calc: calc, api: api}
}

func (c *CartContext) Engine() *cart.Engine {
	return c.engine
}

func (c *CartContext) Calculator() *pricing.Calculator {
	return c.calc
}

// Add looks the product up so price and name come from the catalog, never
// from the caller.
func (c *CartContext) Add(ctx context.Context, productID string, weight domain.Weight, qty int) error {
	if !weight.Valid() {
		return domain.ErrUnknownWeight
	}
	product, err := c.api.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	return c.AddProduct(ctx, product, weight, qty)
}

func (c *CartContext) AddProduct(ctx context.Context, product domain.Product, weight domain.Weight, qty int) error {
	if err := c.engine.Add(ctx, product, weight, qty); err != nil {
		return err
	}
	metrics.CartMutations.WithLabelValues("add").Inc()
	c.afterChange(ctx)
	return nil
}

func (c *CartContext) Update(ctx context.Context, productID string, weight domain.Weight, qty int) error {
	if err := c.engine.Update(ctx, productID, weight, qty); err != nil {
		return err
	}
	metrics.CartMutations.WithLabelValues("update").Inc()
	c.afterChange(ctx)
	return nil
}

func (c *CartContext) Remove(ctx context.Context, productID string, weight domain.Weight) {
	c.engine.Remove(ctx, productID, weight)
	metrics.CartMutations.WithLabelValues("remove").Inc()
	c.afterChange(ctx)
}

// Clear empties the cart and forgets the coupon.
func (c *CartContext) Clear(ctx context.Context) {
	c.engine.Clear(ctx)
	metrics.CartMutations.WithLabelValues("clear").Inc()

	c.mu.Lock()
	c.coupon = nil
	c.pending = nil
	c.mu.Unlock()
}

func (c *CartContext) Reorder(ctx context.Context, order domain.Order) []domain.OrderItem {
	skipped := c.engine.Reorder(ctx, order)
	metrics.CartMutations.WithLabelValues("reorder").Inc()
	c.afterChange(ctx)
	return skipped
}

// ApplyCoupon validates code against the current subtotal. On any failure
// the previously applied coupon stays as it was.
func (c *CartContext) ApplyCoupon(ctx context.Context, code string) (domain.CouponApplication, error) {
	return c.validateCoupon(ctx, code, c.engine.Subtotal())
}

// RecheckCoupon validates code against subtotal, the subtotal of a frozen
// snapshot, rather than the live cart.
func (c *CartContext) RecheckCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (domain.CouponApplication, error) {
	return c.validateCoupon(ctx, code, subtotal)
}

func (c *CartContext) validateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (domain.CouponApplication, error) {
	app, err := c.api.ValidateCoupon(ctx, code, subtotal)
	if err != nil {
		metrics.CouponValidations.WithLabelValues("rejected").Inc()
		return domain.CouponApplication{}, err
	}
	metrics.CouponValidations.WithLabelValues("accepted").Inc()

	c.mu.Lock()
	c.coupon = &app
	c.mu.Unlock()
	return app, nil
}

func (c *CartContext) RemoveCoupon() {
	c.mu.Lock()
	c.coupon = nil
	c.mu.Unlock()
}

// Coupon returns a copy of the applied coupon, if any.
func (c *CartContext) Coupon() *domain.CouponApplication {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.coupon == nil {
		return nil
	}
	cp := *c.coupon
	return &cp
}

// Totals prices the current cart for the given delivery type.
func (c *CartContext) Totals(dt domain.DeliveryType) pricing.Totals {
	snap := c.engine.Snapshot()
	return c.calc.Quote(pricing.Input{
		Subtotal:     snap.Subtotal,
		ItemCount:    snap.Count,
		DeliveryType: dt,
		Coupon:       c.Coupon(),
	})
}

// afterChange re-validates a coupon whose subtotal moved, when the pricing
// policy asks for it.
func (c *CartContext) afterChange(ctx context.Context) {
	if c.calc.Policy() != pricing.PolicyRevalidate {
		return
	}
	coupon := c.Coupon()
	if coupon == nil {
		return
	}
	subtotal := c.engine.Subtotal()
	if coupon.ValidFor(subtotal) {
		return
	}

	log := logger.FromContext(ctx)
	app, err := c.api.ValidateCoupon(ctx, coupon.Code, subtotal)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.coupon == nil || c.coupon.Code != coupon.Code {
		// replaced or removed while we were asking
		return
	}
	switch {
	case err == nil:
		metrics.CouponValidations.WithLabelValues("revalidated").Inc()
		c.coupon = &app
	case isRejection(err):
		metrics.CouponValidations.WithLabelValues("dropped").Inc()
		log.Info("coupon no longer applies", zap.String("code", coupon.Code), zap.String("detail", backend.Detail(err, "")))
		c.coupon = nil
	default:
		// kept but stale; the calculator applies no discount for it
		log.Warn("coupon revalidation failed", zap.String("code", coupon.Code), zap.Error(err))
	}
}

func isRejection(err error) bool {
	if errors.Is(err, backend.ErrCouponInvalid) {
		return true
	}
	var apiErr *backend.APIError
	return errors.As(err, &apiErr) && !apiErr.Temporary()
}

// BeginPlacing marks a checkout as in flight. It returns false when one
// already is.
func (c *CartContext) BeginPlacing() bool {
	return c.placing.CompareAndSwap(false, true)
}

func (c *CartContext) EndPlacing() {
	c.placing.Store(false)
}

func (c *CartContext) Placing() bool {
	return c.placing.Load()
}

// SetPendingPayment remembers the gateway order created for this checkout.
func (c *CartContext) SetPendingPayment(intent payment.Intent) {
	c.mu.Lock()
	c.pending = &intent
	c.mu.Unlock()
}

func (c *CartContext) PendingPayment() *payment.Intent {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return nil
	}
	cp := *c.pending
	return &cp
}
