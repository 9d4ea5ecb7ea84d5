package http

import (
	"context"
	"net/http"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/checkout"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/payment"
)

type CheckoutHandler struct {
	service *checkout.Service
	gateway *payment.Gateway
	timeout time.Duration
}

func NewCheckoutHandler(service *checkout.Service, gateway *payment.Gateway, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		gateway: gateway,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	Address       domain.Address       `json:"address"`
	DeliveryType  domain.DeliveryType  `json:"delivery_type"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Notes         string               `json:"notes,omitempty"`
	// Payment is what the gateway handed the browser; nil for cash orders
	// and for a dismissed payment sheet.
	Payment *domain.PaymentRef `json:"payment,omitempty"`
}

func (d CheckoutRequestDTO) draft() domain.CheckoutDraft {
	return domain.CheckoutDraft{
		Address:       d.Address,
		DeliveryType:  d.DeliveryType,
		PaymentMethod: d.PaymentMethod,
		Notes:         d.Notes,
	}
}

type PlaceOrderResponseDTO struct {
	Order domain.Order `json:"order"`
}

// POST /api/v1/checkout/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	var req CheckoutRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	q, err := h.service.Prepare(ctx, sess, req.draft())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// POST /api/v1/checkout/payment-intent
func (h *CheckoutHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	var req CheckoutRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	intent, err := h.service.StartPayment(ctx, sess, req.draft(), h.gateway)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, intent)
}

// POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	var req CheckoutRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var payer payment.Payer
	if req.PaymentMethod == domain.PaymentMethodOnline {
		payer = h.gateway.Completed(sess.Cart.PendingPayment(), req.Payment)
	}

	order, err := h.service.Place(ctx, sess, req.draft(), payer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, PlaceOrderResponseDTO{Order: order})
}
