package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is owned by the order service. The client only displays it.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusPacked         OrderStatus = "packed"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// StatusSteps is the progression shown on the order tracker.
var StatusSteps = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusAccepted,
	OrderStatusPreparing,
	OrderStatusPacked,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// StepIndex returns the tracker position of s, or -1 when s is not on it.
func StepIndex(s OrderStatus) int {
	for i, step := range StatusSteps {
		if step == s {
			return i
		}
	}
	return -1
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if st == OrderStatusCancelled || StepIndex(st) >= 0 {
		return st, nil
	}
	return "", ErrUnknownStatus
}

// Label is the English display label; the catalog key is the status itself.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPlaced:
		return "Order Placed"
	case OrderStatusAccepted:
		return "Accepted"
	case OrderStatusPreparing:
		return "Preparing"
	case OrderStatusPacked:
		return "Packed"
	case OrderStatusOutForDelivery:
		return "Out for Delivery"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

func (s OrderStatus) String() string {
	return string(s)
}

type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Weight      Weight          `json:"weight"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
}

type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

type Order struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"order_number"`
	Status            OrderStatus     `json:"status"`
	StatusHistory     []StatusChange  `json:"status_history,omitempty"`
	Items             []OrderItem     `json:"items"`
	Address           Address         `json:"address"`
	DeliveryType      DeliveryType    `json:"delivery_type"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	CouponCode        *string         `json:"coupon_code"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	DeliveryCharge    decimal.Decimal `json:"delivery_charge"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	DeliveryPartnerID *string         `json:"delivery_partner_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Dashboard is the admin overview. Revenue excludes cancelled orders.
type Dashboard struct {
	TotalOrders   int             `json:"total_orders"`
	TodayOrders   int             `json:"today_orders"`
	TodayRevenue  decimal.Decimal `json:"today_revenue"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalProducts int             `json:"total_products"`
	TotalUsers    int             `json:"total_users"`
	RecentOrders  []Order         `json:"recent_orders"`
	LowStock      []Product       `json:"low_stock"`
}
