// Package checkout turns a session's cart and a checkout draft into exactly
// one backend order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/cart"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/events"
	"github.com/UTarts/RASRAJ-themithaishop/internal/metrics"
	"github.com/UTarts/RASRAJ-themithaishop/internal/payment"
	"github.com/UTarts/RASRAJ-themithaishop/internal/pricing"
	"github.com/UTarts/RASRAJ-themithaishop/internal/session"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderAPI submits orders to the shop backend.
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, req backend.OrderRequest, idempotencyKey string) (domain.Order, error)
}

type Service struct {
	orders    OrderAPI
	publisher events.Publisher
	now       func() time.Time
	newKey    func() string
}

func NewService(orders OrderAPI, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		orders:    orders,
		publisher: publisher,
		now:       time.Now,
		newKey:    uuid.NewString,
	}
}

// Quote is what the shopper will be charged, computed from a frozen cart.
type Quote struct {
	Items  []domain.LineItem         `json:"items"`
	Totals pricing.Totals            `json:"totals"`
	Coupon *domain.CouponApplication `json:"coupon,omitempty"`
}

// Prepare validates the draft and prices the cart as Place would, without
// submitting anything.
func (s *Service) Prepare(ctx context.Context, sess *session.Session, draft domain.CheckoutDraft) (Quote, error) {
	if err := ValidateDraft(draft); err != nil {
		return Quote{}, err
	}
	if !sess.Auth.Authenticated() {
		return Quote{}, session.ErrNotAuthenticated
	}
	snap := sess.Cart.Engine().Snapshot()
	if len(snap.Items) == 0 {
		return Quote{}, ErrEmptyCart
	}
	return s.quote(ctx, sess, snap, draft.DeliveryType)
}

// StartPayment creates the gateway order for the current cart and remembers
// it on the session, for a browser that completes payment itself.
func (s *Service) StartPayment(ctx context.Context, sess *session.Session, draft domain.CheckoutDraft, gw *payment.Gateway) (payment.Intent, error) {
	if draft.PaymentMethod != domain.PaymentMethodOnline {
		return payment.Intent{}, &ValidationError{Field: "payment_method", Message: "payment intent is only needed for online payment"}
	}
	q, err := s.Prepare(ctx, sess, draft)
	if err != nil {
		return payment.Intent{}, err
	}
	intent, err := gw.Prepare(ctx, sess.Auth.Token(), q.Totals.Total)
	if err != nil {
		return payment.Intent{}, err
	}
	sess.Cart.SetPendingPayment(intent)
	return intent, nil
}

// Place submits the cart as one order. Nothing on the session changes unless
// the backend accepts the order, in which case the cart and coupon are
// cleared.
func (s *Service) Place(ctx context.Context, sess *session.Session, draft domain.CheckoutDraft, payer payment.Payer) (order domain.Order, err error) {
	log := logger.FromContext(ctx).With(zap.String("session_id", sess.ID))
	method := string(draft.PaymentMethod)

	if err := ValidateDraft(draft); err != nil {
		metrics.Checkouts.WithLabelValues(method, "invalid").Inc()
		return domain.Order{}, err
	}
	if !sess.Auth.Authenticated() {
		metrics.Checkouts.WithLabelValues(method, "unauthenticated").Inc()
		return domain.Order{}, session.ErrNotAuthenticated
	}
	if sess.Cart.Engine().Count() == 0 {
		metrics.Checkouts.WithLabelValues(method, "empty_cart").Inc()
		return domain.Order{}, ErrEmptyCart
	}
	if !sess.Cart.BeginPlacing() {
		metrics.Checkouts.WithLabelValues(method, "duplicate").Inc()
		return domain.Order{}, ErrAlreadyPlacing
	}
	defer sess.Cart.EndPlacing()

	defer func() {
		metrics.Checkouts.WithLabelValues(method, outcome(err)).Inc()
	}()

	snap := sess.Cart.Engine().Snapshot()
	if len(snap.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	q, err := s.quote(ctx, sess, snap, draft.DeliveryType)
	if err != nil {
		return domain.Order{}, err
	}

	token := sess.Auth.Token()
	req := buildRequest(draft, q)

	if draft.PaymentMethod == domain.PaymentMethodOnline {
		if payer == nil {
			return domain.Order{}, ErrPaymentRequired
		}
		ref, err := payer.Pay(ctx, token, q.Totals.Total)
		if err != nil {
			log.Info("payment did not complete", zap.Error(err))
			return domain.Order{}, err
		}
		req.RazorpayPaymentID = ref.PaymentID
		req.RazorpayOrderID = ref.OrderID
	}

	key := s.newKey()
	order, err = s.orders.CreateOrder(ctx, token, req, key)
	if err != nil {
		log.Warn("order submission failed", zap.String("idempotency_key", key), zap.Error(err))
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	sess.Cart.Clear(ctx)
	log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", q.Totals.Total.String()))

	s.publish(ctx, sess, order, req, q, snap)
	return order, nil
}

// quote prices snap. A coupon that is pinned, or that went stale, is checked
// with the backend once more; a refusal aborts the checkout.
func (s *Service) quote(ctx context.Context, sess *session.Session, snap cart.Snapshot, dt domain.DeliveryType) (Quote, error) {
	calc := sess.Cart.Calculator()
	coupon := sess.Cart.Coupon()

	if coupon != nil && (calc.Policy() == pricing.PolicyPinned || !coupon.ValidFor(snap.Subtotal)) {
		fresh, err := sess.Cart.RecheckCoupon(ctx, coupon.Code, snap.Subtotal)
		if err != nil {
			return Quote{}, &CouponError{Code: coupon.Code, Err: err}
		}
		coupon = &fresh
	}

	totals := calc.Quote(pricing.Input{
		Subtotal:     snap.Subtotal,
		ItemCount:    snap.Count,
		DeliveryType: dt,
		Coupon:       coupon,
	})
	if coupon != nil && totals.CouponStale {
		// validated for a subtotal other than the one being submitted
		coupon = nil
	}
	return Quote{Items: snap.Items, Totals: totals, Coupon: coupon}, nil
}

func buildRequest(draft domain.CheckoutDraft, q Quote) backend.OrderRequest {
	items := make([]domain.OrderItem, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Weight:      it.Weight,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Image:       it.Image,
		})
	}

	req := backend.OrderRequest{
		Items:         items,
		Address:       draft.Address,
		DeliveryType:  draft.DeliveryType,
		PaymentMethod: draft.PaymentMethod,
	}
	if q.Coupon != nil {
		code := q.Coupon.Code
		req.CouponCode = &code
	}
	if notes := strings.TrimSpace(draft.Notes); notes != "" {
		req.Notes = &notes
	}
	return req
}

func (s *Service) publish(ctx context.Context, sess *session.Session, order domain.Order, req backend.OrderRequest, q Quote, snap cart.Snapshot) {
	ev := events.OrderPlaced{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		SessionID:      sess.ID,
		PaymentMethod:  req.PaymentMethod,
		DeliveryType:   req.DeliveryType,
		CouponCode:     req.CouponCode,
		ItemCount:      snap.Count,
		Subtotal:       q.Totals.Subtotal,
		DeliveryCharge: q.Totals.DeliveryFee,
		Discount:       q.Totals.Discount,
		Total:          q.Totals.Total,
		PlacedAt:       s.now().UTC(),
	}
	if u, ok := sess.Auth.User(); ok {
		ev.UserID = u.ID
	}
	if err := s.publisher.PublishOrderPlaced(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("failed to publish order event", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func outcome(err error) string {
	var couponErr *CouponError
	switch {
	case err == nil:
		return "placed"
	case errors.Is(err, payment.ErrCancelled):
		return "payment_cancelled"
	case errors.Is(err, payment.ErrUnavailable), errors.Is(err, payment.ErrNoIntent),
		errors.Is(err, payment.ErrAmountMismatch), errors.Is(err, payment.ErrOrderMismatch),
		errors.Is(err, ErrPaymentRequired):
		return "payment_failed"
	case errors.As(err, &couponErr):
		return "coupon_rejected"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	default:
		return "failed"
	}
}
