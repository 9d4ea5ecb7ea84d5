package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/shopspring/decimal"
)

type validateCouponRequest struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type validateCouponResponse struct {
	Valid       bool            `json:"valid"`
	Discount    decimal.Decimal `json:"discount"`
	Description string          `json:"description"`
}

// ValidateCoupon asks the backend whether code applies to subtotal. The
// returned discount is the backend's and is used as is.
func (c *Client) ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (domain.CouponApplication, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.CouponApplication{}, ErrEmptyCode
	}

	var resp validateCouponResponse
	err := c.do(ctx, http.MethodPost, "/coupons/validate",
		validateCouponRequest{Code: code, Subtotal: subtotal}, &resp, requestOptions{})
	if err != nil {
		return domain.CouponApplication{}, err
	}
	if !resp.Valid {
		return domain.CouponApplication{}, ErrCouponInvalid
	}

	return domain.CouponApplication{
		Code:              code,
		Discount:          resp.Discount,
		Description:       resp.Description,
		ValidatedSubtotal: subtotal,
	}, nil
}
