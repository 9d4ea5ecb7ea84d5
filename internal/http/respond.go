package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/checkout"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/payment"
	"github.com/UTarts/RASRAJ-themithaishop/internal/session"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/circuitbreaker"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// handleError maps an error from the session, checkout or backend layer to a
// response. Backend details are passed through as the shopper-facing message.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *checkout.ValidationError
		couponErr     *checkout.CouponError
		apiErr        *backend.APIError
	)

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   validationErr.Message,
			Code:    "validation_failed",
			Details: validationErr.Field,
		})
	case errors.Is(err, domain.ErrUnknownWeight):
		respondError(w, http.StatusBadRequest, "invalid_weight", "weight must be one of 250g, 500g, 1kg")
	case errors.Is(err, domain.ErrQuantityLimit):
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99 per line")
	case errors.Is(err, domain.ErrUnknownStatus):
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrAlreadyPlacing):
		respondError(w, http.StatusConflict, "already_placing", err.Error())
	case errors.Is(err, checkout.ErrPaymentRequired):
		respondError(w, http.StatusBadRequest, "payment_required", err.Error())
	case errors.Is(err, session.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "unauthorized", "please login to continue")
	case errors.Is(err, session.ErrUnsupportedLanguage):
		respondError(w, http.StatusBadRequest, "unsupported_language", err.Error())
	case errors.Is(err, payment.ErrCancelled):
		respondError(w, http.StatusPaymentRequired, "payment_cancelled", "Payment cancelled or failed")
	case errors.Is(err, payment.ErrNoIntent), errors.Is(err, payment.ErrAmountMismatch), errors.Is(err, payment.ErrOrderMismatch):
		respondError(w, http.StatusConflict, "payment_mismatch", err.Error())
	case errors.Is(err, payment.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "payment_unavailable", backend.Detail(err, "payment gateway unavailable"))
	case errors.As(err, &couponErr):
		respondError(w, http.StatusBadRequest, "coupon_rejected", backend.Detail(err, "Invalid coupon"))
	case errors.Is(err, backend.ErrCouponInvalid), errors.Is(err, backend.ErrEmptyCode):
		respondError(w, http.StatusBadRequest, "invalid_coupon", backend.Detail(err, "Invalid coupon"))
	case circuitbreaker.IsOpen(err):
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "shop is temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	case errors.As(err, &apiErr):
		handleAPIError(w, apiErr)
	default:
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func handleAPIError(w http.ResponseWriter, apiErr *backend.APIError) {
	message := apiErr.Detail
	if message == "" {
		message = http.StatusText(apiErr.Status)
	}

	switch apiErr.Status {
	case http.StatusBadRequest:
		respondError(w, http.StatusBadRequest, "bad_request", message)
	case http.StatusUnauthorized:
		respondError(w, http.StatusUnauthorized, "unauthenticated", message)
	case http.StatusForbidden:
		respondError(w, http.StatusForbidden, "permission_denied", message)
	case http.StatusNotFound:
		respondError(w, http.StatusNotFound, "not_found", message)
	case http.StatusConflict:
		respondError(w, http.StatusConflict, "conflict", message)
	case http.StatusUnprocessableEntity:
		respondError(w, http.StatusUnprocessableEntity, "invalid_argument", message)
	case http.StatusTooManyRequests:
		respondError(w, http.StatusTooManyRequests, "rate_limit_exceeded", message)
	default:
		respondError(w, http.StatusBadGateway, "backend_error", message)
	}
}
