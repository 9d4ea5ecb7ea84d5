package http

import (
	"context"
	"sync"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// ShopMock stands in for the backend client in every role the router needs.
type ShopMock struct {
	mu sync.Mutex

	products  map[string]domain.Product
	orders    map[string]domain.Order
	listErr   error
	role      string
	created   []backend.OrderRequest
	statusSet map[string]domain.OrderStatus
	mockPay   bool
}

func newShopMock() *ShopMock {
	code := "FIRST50"
	return &ShopMock{
		products: map[string]domain.Product{
			"kaju": {ID: "kaju", Name: "Kaju Katli", NameHi: "काजू कतली", Images: []string{"kaju.jpg"},
				Prices: domain.Prices{G250: domain.Rupees(250), G500: domain.Rupees(480), G1000: domain.Rupees(900)}},
			"ladoo": {ID: "ladoo", Name: "Besan Ladoo", Prices: domain.Prices{G250: domain.Rupees(100)}},
		},
		orders: map[string]domain.Order{
			"o1": {
				ID: "o1", OrderNumber: "RR-1001", Status: domain.OrderStatusPreparing,
				DeliveryType: domain.DeliveryTypeDelivery, PaymentMethod: domain.PaymentMethodCOD,
				CouponCode: &code, Subtotal: domain.Rupees(600), Total: domain.Rupees(550), Discount: domain.Rupees(50),
				Items: []domain.OrderItem{
					{ProductID: "kaju", ProductName: "Kaju Katli", Weight: domain.Weight250g, Quantity: 2, Price: domain.Rupees(250)},
					{ProductID: "old", ProductName: "Discontinued", Weight: domain.Weight("2kg"), Quantity: 1, Price: domain.Rupees(10)},
				},
			},
		},
		role:      domain.RoleCustomer,
		statusSet: map[string]domain.OrderStatus{},
	}
}

func (m *ShopMock) token() string {
	t, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "role": m.role}).SignedString([]byte("test"))
	return t
}

func (m *ShopMock) GetProduct(_ context.Context, id string) (domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, &backend.APIError{Status: 404, Detail: "Product not found"}
	}
	return p, nil
}

func (m *ShopMock) ListProducts(_ context.Context, q backend.ProductQuery) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range []string{"kaju", "ladoo"} {
		p := m.products[id]
		if q.Search == "" || p.Name == q.Search {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *ShopMock) ValidateCoupon(_ context.Context, code string, subtotal decimal.Decimal) (domain.CouponApplication, error) {
	switch code {
	case "FIRST50":
		return domain.CouponApplication{Code: code, Discount: domain.Rupees(50), Description: "₹50 off", ValidatedSubtotal: subtotal}, nil
	case "BIG500":
		return domain.CouponApplication{}, &backend.APIError{Status: 400, Detail: "Minimum order ₹500 required"}
	case "DOWN":
		return domain.CouponApplication{}, &backend.APIError{Status: 503}
	}
	return domain.CouponApplication{}, backend.ErrCouponInvalid
}

func (m *ShopMock) Login(_ context.Context, email, password string) (backend.AuthResult, error) {
	if password != "secret" {
		return backend.AuthResult{}, &backend.APIError{Status: 401, Detail: "Invalid credentials"}
	}
	return backend.AuthResult{Token: m.token(), ID: "u1", Name: "Asha", Email: email, Role: m.role}, nil
}

func (m *ShopMock) Register(_ context.Context, req backend.RegisterRequest) (backend.AuthResult, error) {
	return backend.AuthResult{Token: m.token(), ID: "u2", Name: req.Name, Email: req.Email, Role: domain.RoleCustomer}, nil
}

func (m *ShopMock) Me(context.Context, string) (domain.User, error) {
	return domain.User{ID: "u1", Name: "Asha", Role: m.role}, nil
}

func (m *ShopMock) ListOrders(context.Context, string) ([]domain.Order, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return []domain.Order{m.orders["o1"]}, nil
}

func (m *ShopMock) GetOrder(_ context.Context, _ string, id string) (domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, &backend.APIError{Status: 404, Detail: "Order not found"}
	}
	return o, nil
}

func (m *ShopMock) UpdateOrderStatus(_ context.Context, _ string, id string, status domain.OrderStatus, _ *string) (domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, &backend.APIError{Status: 404, Detail: "Order not found"}
	}
	m.mu.Lock()
	m.statusSet[id] = status
	m.mu.Unlock()
	o.Status = status
	return o, nil
}

func (m *ShopMock) CreateOrder(_ context.Context, _ string, req backend.OrderRequest, _ string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, req)
	return domain.Order{ID: "o2", OrderNumber: "RR-1002", Status: domain.OrderStatusPlaced, Items: req.Items}, nil
}

func (m *ShopMock) PaymentKey(context.Context, string) (string, error) {
	return "rzp_test_key", nil
}

func (m *ShopMock) CreatePaymentOrder(_ context.Context, _ string, amount decimal.Decimal) (backend.PaymentOrder, error) {
	return backend.PaymentOrder{ID: "order_rzp_1", Amount: amount.Mul(decimal.NewFromInt(100)), Currency: "INR", Mock: m.mockPay}, nil
}

func (m *ShopMock) ListCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{
		{ID: "c1", Name: "Barfi", NameHi: "बर्फी", Slug: "barfi", Order: 1},
		{ID: "c2", Name: "Ladoo", Slug: "ladoo", Order: 2},
	}, nil
}

func (m *ShopMock) DeliveryOrders(context.Context, string) ([]domain.Order, error) {
	return []domain.Order{m.orders["o1"]}, nil
}

func (m *ShopMock) DeliveryPartners(context.Context, string) ([]domain.User, error) {
	return []domain.User{{ID: "d1", Name: "Mohan", Role: domain.RoleDeliveryPartner}}, nil
}

func (m *ShopMock) Dashboard(context.Context, string) (domain.Dashboard, error) {
	return domain.Dashboard{TotalOrders: 12, TodayOrders: 2, TodayRevenue: domain.Rupees(1100), TotalRevenue: domain.Rupees(9800)}, nil
}
