package http

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/export"
	"github.com/go-chi/chi/v5"
)

type OrdersAPI interface {
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	GetOrder(ctx context.Context, token, id string) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, token, id string, status domain.OrderStatus, partnerID *string) (domain.Order, error)
}

type OrdersHandler struct {
	orders  OrdersAPI
	timeout time.Duration
	now     func() time.Time
}

func NewOrdersHandler(orders OrdersAPI, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
		now:     time.Now,
	}
}

type UpdateStatusRequestDTO struct {
	Status            string  `json:"status"`
	DeliveryPartnerID *string `json:"delivery_partner_id,omitempty"`
}

// OrderResponseDTO adds the tracker position to the backend's order.
type OrderResponseDTO struct {
	domain.Order
	StatusLabel string `json:"status_label"`
	Step        int    `json:"step"`
}

func toOrderDTO(o domain.Order, t func(string) string) OrderResponseDTO {
	return OrderResponseDTO{
		Order:       o,
		StatusLabel: t(string(o.Status)),
		Step:        domain.StepIndex(o.Status),
	}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	orders, err := h.orders.ListOrders(ctx, sess.Auth.Token())
	if err != nil {
		handleError(w, r, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderDTO(o, sess.Language.T))
	}
	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, toOrderDTO(order, sess.Language.T))
}

// GET /api/v1/orders/export
func (h *OrdersHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	orders, err := h.orders.ListOrders(ctx, sess.Auth.Token())
	if err != nil {
		handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteOrderHistory(&buf, orders, sess.Language.T); err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(h.now()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// PUT /api/v1/orders/{order_id}/status
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	var req UpdateStatusRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		handleError(w, r, err)
		return
	}

	order, err := h.orders.UpdateOrderStatus(ctx, sess.Auth.Token(), orderID, status, req.DeliveryPartnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order, sess.Language.T))
}
