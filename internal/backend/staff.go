package backend

import (
	"context"
	"net/http"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
)

// DeliveryOrders lists the orders a delivery partner is assigned to. For an
// admin the backend returns every order still in progress.
func (c *Client) DeliveryOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/delivery/orders", nil, &orders, requestOptions{token: token}); err != nil {
		return nil, err
	}
	return orders, nil
}

// DeliveryPartners lists the accounts an admin can assign orders to.
func (c *Client) DeliveryPartners(ctx context.Context, token string) ([]domain.User, error) {
	var partners []domain.User
	if err := c.do(ctx, http.MethodGet, "/admin/delivery-partners", nil, &partners, requestOptions{token: token}); err != nil {
		return nil, err
	}
	return partners, nil
}

func (c *Client) Dashboard(ctx context.Context, token string) (domain.Dashboard, error) {
	var d domain.Dashboard
	err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, &d, requestOptions{token: token})
	return d, err
}
