package http

import (
	"context"
	"net/http"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
)

// StaffAPI is the part of the backend only admins and delivery partners use.
type StaffAPI interface {
	DeliveryOrders(ctx context.Context, token string) ([]domain.Order, error)
	DeliveryPartners(ctx context.Context, token string) ([]domain.User, error)
	Dashboard(ctx context.Context, token string) (domain.Dashboard, error)
}

type StaffHandler struct {
	staff   StaffAPI
	timeout time.Duration
}

func NewStaffHandler(staff StaffAPI, timeout time.Duration) *StaffHandler {
	return &StaffHandler{
		staff:   staff,
		timeout: timeout,
	}
}

// GET /api/v1/delivery/orders
func (h *StaffHandler) DeliveryOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	orders, err := h.staff.DeliveryOrders(ctx, sess.Auth.Token())
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

// GET /api/v1/admin/delivery-partners
func (h *StaffHandler) DeliveryPartners(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	partners, err := h.staff.DeliveryPartners(ctx, sess.Auth.Token())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if partners == nil {
		partners = make([]domain.User, 0)
	}
	respondJSON(w, http.StatusOK, partners)
}

// GET /api/v1/admin/dashboard
func (h *StaffHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	sess := sessionFromContext(r.Context())

	d, err := h.staff.Dashboard(ctx, sess.Auth.Token())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}
