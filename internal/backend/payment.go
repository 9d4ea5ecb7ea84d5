package backend

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

type paymentKeyResponse struct {
	KeyID string `json:"key_id"`
}

// PaymentOrder is the gateway order the backend created for a payment.
type PaymentOrder struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Mock     bool            `json:"mock"`
}

type createPaymentOrderRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (c *Client) PaymentKey(ctx context.Context, token string) (string, error) {
	var res paymentKeyResponse
	if err := c.do(ctx, http.MethodGet, "/payment/key", nil, &res, requestOptions{token: token}); err != nil {
		return "", err
	}
	return res.KeyID, nil
}

func (c *Client) CreatePaymentOrder(ctx context.Context, token string, amount decimal.Decimal) (PaymentOrder, error) {
	var res PaymentOrder
	err := c.do(ctx, http.MethodPost, "/payment/create-order", createPaymentOrderRequest{Amount: amount}, &res, requestOptions{token: token})
	return res, err
}
