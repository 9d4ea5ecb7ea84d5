package checkout

import "errors"

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrAlreadyPlacing  = errors.New("an order is already being placed")
	ErrPaymentRequired = errors.New("online payment needs a payer")
)

// ValidationError reports the first draft field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// CouponError carries the backend's reason for refusing a coupon at checkout.
type CouponError struct {
	Code string
	Err  error
}

func (e *CouponError) Error() string {
	return "coupon " + e.Code + " rejected at checkout: " + e.Err.Error()
}

func (e *CouponError) Unwrap() error {
	return e.Err
}
