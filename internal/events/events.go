// Package events publishes storefront events to Kafka.
package events

import (
	"context"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	TopicOrdersPlaced = "orders.placed"

	TypeOrderPlaced = "order.placed"
)

// OrderPlaced is emitted once the backend has accepted an order.
type OrderPlaced struct {
	OrderID        string               `json:"order_id"`
	OrderNumber    string               `json:"order_number"`
	SessionID      string               `json:"session_id"`
	UserID         string               `json:"user_id,omitempty"`
	PaymentMethod  domain.PaymentMethod `json:"payment_method"`
	DeliveryType   domain.DeliveryType  `json:"delivery_type"`
	CouponCode     *string              `json:"coupon_code"`
	ItemCount      int                  `json:"item_count"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	DeliveryCharge decimal.Decimal      `json:"delivery_charge"`
	Discount       decimal.Decimal      `json:"discount"`
	Total          decimal.Decimal      `json:"total"`
	PlacedAt       time.Time            `json:"placed_at"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error
	Close() error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }

func (Nop) Close() error { return nil }
