package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/pricing"
	"github.com/UTarts/RASRAJ-themithaishop/internal/session"
	"github.com/go-chi/chi/v5"
)

// OrderGetter loads a past order for reorder.
type OrderGetter interface {
	GetOrder(ctx context.Context, token, id string) (domain.Order, error)
}

type CartHandler struct {
	orders  OrderGetter
	timeout time.Duration
}

func NewCartHandler(orders OrderGetter, timeout time.Duration) *CartHandler {
	return &CartHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Weight    string `json:"weight"`
	Quantity  int    `json:"quantity"`
}

type UpdateItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Weight    string `json:"weight"`
	Quantity  int    `json:"quantity"`
}

type ApplyCouponRequestDTO struct {
	Code string `json:"code"`
}

type CartResponseDTO struct {
	Items        []domain.LineItem         `json:"items"`
	Count        int                       `json:"count"`
	DeliveryType domain.DeliveryType       `json:"delivery_type"`
	Totals       pricing.Totals            `json:"totals"`
	Coupon       *domain.CouponApplication `json:"coupon,omitempty"`
	Skipped      []domain.OrderItem        `json:"skipped,omitempty"`
}

// GET /api/v1/cart?delivery_type=pickup
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	dt, ok := deliveryTypeParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_delivery_type", "delivery_type must be delivery or pickup")
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(sess, dt))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > domain.MaxLineQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}
	weight, err := domain.ParseWeight(req.Weight)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := sess.Cart.Add(ctx, req.ProductID, weight, req.Quantity); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartResponse(sess, domain.DeliveryTypeDelivery))
}

// PUT /api/v1/cart/items
// A quantity of zero or less removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	var req UpdateItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity > domain.MaxLineQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}
	weight, err := domain.ParseWeight(req.Weight)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := sess.Cart.Update(ctx, req.ProductID, weight, req.Quantity); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(sess, domain.DeliveryTypeDelivery))
}

// DELETE /api/v1/cart/items/{product_id}/{weight}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	weight, err := domain.ParseWeight(chi.URLParam(r, "weight"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	sess.Cart.Remove(ctx, productID, weight)
	respondJSON(w, http.StatusOK, cartResponse(sess, domain.DeliveryTypeDelivery))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	sess.Cart.Clear(r.Context())
	respondJSON(w, http.StatusOK, cartResponse(sess, domain.DeliveryTypeDelivery))
}

// POST /api/v1/cart/coupon
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	var req ApplyCouponRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if _, err := sess.Cart.ApplyCoupon(ctx, req.Code); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			respondError(w, http.StatusBadRequest, "invalid_coupon", backend.Detail(err, "Invalid coupon"))
			return
		}
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(sess, domain.DeliveryTypeDelivery))
}

// DELETE /api/v1/cart/coupon
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	sess.Cart.RemoveCoupon()
	respondJSON(w, http.StatusOK, cartResponse(sess, domain.DeliveryTypeDelivery))
}

// POST /api/v1/cart/reorder/{order_id}
func (h *CartHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	order, err := h.orders.GetOrder(ctx, sess.Auth.Token(), orderID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	skipped := sess.Cart.Reorder(ctx, order)
	resp := cartResponse(sess, domain.DeliveryTypeDelivery)
	resp.Skipped = skipped
	respondJSON(w, http.StatusOK, resp)
}

func cartResponse(sess *session.Session, dt domain.DeliveryType) CartResponseDTO {
	snap := sess.Cart.Engine().Snapshot()
	items := snap.Items
	if items == nil {
		items = make([]domain.LineItem, 0)
	}
	return CartResponseDTO{
		Items:        items,
		Count:        snap.Count,
		DeliveryType: dt,
		Totals:       sess.Cart.Totals(dt),
		Coupon:       sess.Cart.Coupon(),
	}
}

func deliveryTypeParam(r *http.Request) (domain.DeliveryType, bool) {
	v := r.URL.Query().Get("delivery_type")
	if v == "" {
		return domain.DeliveryTypeDelivery, true
	}
	dt := domain.DeliveryType(v)
	return dt, dt.Valid()
}
