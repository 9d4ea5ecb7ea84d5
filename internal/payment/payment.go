// Package payment runs the online payment step that must succeed before an
// order is submitted.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrCancelled      = errors.New("payment cancelled or failed")
	ErrUnavailable    = errors.New("payment gateway unavailable")
	ErrNoIntent       = errors.New("no payment was started for this checkout")
	ErrAmountMismatch = errors.New("payment amount does not match order total")
	ErrOrderMismatch  = errors.New("payment does not belong to this checkout")
)

// Intent is a gateway order waiting for the shopper to pay.
type Intent struct {
	KeyID         string          `json:"key_id"`
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	GatewayAmount decimal.Decimal `json:"gateway_amount"`
	Currency      string          `json:"currency"`
	Mock          bool            `json:"mock"`
}

// Payer yields a payment reference for amount or fails; on failure no order
// may be submitted.
type Payer interface {
	Pay(ctx context.Context, token string, amount decimal.Decimal) (domain.PaymentRef, error)
}

// Confirmer completes an intent, typically by showing the gateway's payment
// sheet to the shopper.
type Confirmer interface {
	Confirm(ctx context.Context, intent Intent) (domain.PaymentRef, error)
}

type ConfirmerFunc func(ctx context.Context, intent Intent) (domain.PaymentRef, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, intent Intent) (domain.PaymentRef, error) {
	return f(ctx, intent)
}

type api interface {
	PaymentKey(ctx context.Context, token string) (string, error)
	CreatePaymentOrder(ctx context.Context, token string, amount decimal.Decimal) (backend.PaymentOrder, error)
}

// Gateway talks to the backend's Razorpay endpoints.
type Gateway struct {
	api api
	now func() time.Time
}

func NewGateway(a api) *Gateway {
	return &Gateway{api: a, now: time.Now}
}

// Prepare fetches the public key and creates a gateway order for amount.
func (g *Gateway) Prepare(ctx context.Context, token string, amount decimal.Decimal) (Intent, error) {
	key, err := g.api.PaymentKey(ctx, token)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	order, err := g.api.CreatePaymentOrder(ctx, token, amount)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	currency := order.Currency
	if currency == "" {
		currency = "INR"
	}
	return Intent{
		KeyID:         key,
		OrderID:       order.ID,
		Amount:        amount,
		GatewayAmount: order.Amount,
		Currency:      currency,
		Mock:          order.Mock,
	}, nil
}

// MockRef is the reference used when the backend runs without gateway keys.
func (g *Gateway) MockRef(intent Intent) domain.PaymentRef {
	return domain.PaymentRef{
		PaymentID: fmt.Sprintf("mock_pay_%d", g.now().UnixMilli()),
		OrderID:   intent.OrderID,
		Signature: "mock",
	}
}

// Interactive returns a Payer that prepares and confirms in one call.
func (g *Gateway) Interactive(c Confirmer) Payer {
	return &interactive{gw: g, confirm: c}
}

type interactive struct {
	gw      *Gateway
	confirm Confirmer
}

func (i *interactive) Pay(ctx context.Context, token string, amount decimal.Decimal) (domain.PaymentRef, error) {
	intent, err := i.gw.Prepare(ctx, token, amount)
	if err != nil {
		return domain.PaymentRef{}, err
	}
	if intent.Mock {
		logger.FromContext(ctx).Info("using mock payment", zap.String("order_id", intent.OrderID))
		return i.gw.MockRef(intent), nil
	}

	ref, err := i.confirm.Confirm(ctx, intent)
	if err != nil {
		return domain.PaymentRef{}, fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	if ref.PaymentID == "" {
		return domain.PaymentRef{}, ErrCancelled
	}
	if ref.OrderID == "" {
		ref.OrderID = intent.OrderID
	}
	return ref, nil
}

// Completed resumes an intent that was confirmed outside this process, e.g.
// by the browser. A nil Ref means the shopper cancelled.
func (g *Gateway) Completed(intent *Intent, ref *domain.PaymentRef) Payer {
	return &completed{gw: g, intent: intent, ref: ref}
}

type completed struct {
	gw     *Gateway
	intent *Intent
	ref    *domain.PaymentRef
}

func (c *completed) Pay(ctx context.Context, _ string, amount decimal.Decimal) (domain.PaymentRef, error) {
	if c.intent == nil || c.intent.OrderID == "" {
		return domain.PaymentRef{}, ErrNoIntent
	}
	if !amount.Equal(c.intent.Amount) {
		return domain.PaymentRef{}, ErrAmountMismatch
	}
	if c.intent.Mock {
		return c.gw.MockRef(*c.intent), nil
	}
	if c.ref == nil || c.ref.PaymentID == "" {
		return domain.PaymentRef{}, ErrCancelled
	}
	if c.ref.OrderID != c.intent.OrderID {
		return domain.PaymentRef{}, ErrOrderMismatch
	}
	return *c.ref, nil
}
