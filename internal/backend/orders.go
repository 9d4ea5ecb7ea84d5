package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
)

// OrderRequest is the single submission that creates an order.
type OrderRequest struct {
	Items             []domain.OrderItem   `json:"items"`
	Address           domain.Address       `json:"address"`
	DeliveryType      domain.DeliveryType  `json:"delivery_type"`
	PaymentMethod     domain.PaymentMethod `json:"payment_method"`
	CouponCode        *string              `json:"coupon_code"`
	Notes             *string              `json:"notes"`
	RazorpayPaymentID string               `json:"razorpay_payment_id,omitempty"`
	RazorpayOrderID   string               `json:"razorpay_order_id,omitempty"`
}

// CreateOrder submits req once. idempotencyKey is forwarded so a backend that
// deduplicates can do so; the client itself never resends.
func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest, idempotencyKey string) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodPost, "/orders", req, &order, requestOptions{
		token:          token,
		idempotencyKey: idempotencyKey,
	})
	return order, err
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders, requestOptions{token: token}); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, token, id string) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &order, requestOptions{token: token})
	return order, err
}

type statusUpdateRequest struct {
	Status            domain.OrderStatus `json:"status"`
	DeliveryPartnerID *string            `json:"delivery_partner_id,omitempty"`
}

// UpdateOrderStatus is used by admin and delivery staff. Whether the
// transition is allowed is decided by the backend.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, id string, status domain.OrderStatus, partnerID *string) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status",
		statusUpdateRequest{Status: status, DeliveryPartnerID: partnerID}, &order, requestOptions{token: token})
	return order, err
}
