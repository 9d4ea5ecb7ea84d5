package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/events"
	"github.com/shopspring/decimal"
)

type MockShop struct {
	mu sync.Mutex

	CouponErr       error
	CouponCalls     int
	CouponSubtotals []decimal.Decimal
	// OnCoupon runs inside ValidateCoupon, before it answers.
	OnCoupon func()

	CreateErr      error
	CreateCalls    int
	CreatedRequest *backend.OrderRequest
	CreatedToken   string
	IdemKeys       []string

	PaymentOrder backend.PaymentOrder
}

func (m *MockShop) GetProduct(_ context.Context, id string) (domain.Product, error) {
	switch id {
	case "kaju":
		return domain.Product{ID: "kaju", Name: "Kaju Katli", Images: []string{"kaju.jpg"},
			Prices: domain.Prices{G250: domain.Rupees(250), G500: domain.Rupees(480), G1000: domain.Rupees(900)}}, nil
	case "ladoo":
		return domain.Product{ID: "ladoo", Name: "Besan Ladoo", Prices: domain.Prices{G250: domain.Rupees(100)}}, nil
	}
	return domain.Product{}, &backend.APIError{Status: 404, Detail: "Product not found"}
}

func (m *MockShop) ValidateCoupon(_ context.Context, code string, subtotal decimal.Decimal) (domain.CouponApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CouponCalls++
	m.CouponSubtotals = append(m.CouponSubtotals, subtotal)
	if m.OnCoupon != nil {
		m.OnCoupon()
	}
	if m.CouponErr != nil {
		return domain.CouponApplication{}, m.CouponErr
	}
	return domain.CouponApplication{Code: code, Discount: domain.Rupees(50), ValidatedSubtotal: subtotal}, nil
}

func (m *MockShop) Login(context.Context, string, string) (backend.AuthResult, error) {
	return backend.AuthResult{Token: "tok-1", ID: "u1", Name: "Asha", Role: domain.RoleCustomer}, nil
}

func (m *MockShop) Register(context.Context, backend.RegisterRequest) (backend.AuthResult, error) {
	return backend.AuthResult{}, errors.New("not used")
}

func (m *MockShop) Me(context.Context, string) (domain.User, error) {
	return domain.User{}, &backend.APIError{Status: 401}
}

func (m *MockShop) CreateOrder(_ context.Context, token string, req backend.OrderRequest, key string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	m.CreatedRequest = &req
	m.CreatedToken = token
	m.IdemKeys = append(m.IdemKeys, key)
	if m.CreateErr != nil {
		return domain.Order{}, m.CreateErr
	}
	return domain.Order{ID: "ord-1", OrderNumber: "RR-1001", Status: domain.OrderStatusPlaced, Items: req.Items}, nil
}

func (m *MockShop) PaymentKey(context.Context, string) (string, error) {
	return "rzp_test_key", nil
}

func (m *MockShop) CreatePaymentOrder(_ context.Context, _ string, amount decimal.Decimal) (backend.PaymentOrder, error) {
	o := m.PaymentOrder
	o.Amount = amount.Mul(decimal.NewFromInt(100))
	return o, nil
}

type MockPayer struct {
	Ref     domain.PaymentRef
	Err     error
	Amounts []decimal.Decimal
}

func (p *MockPayer) Pay(_ context.Context, _ string, amount decimal.Decimal) (domain.PaymentRef, error) {
	p.Amounts = append(p.Amounts, amount)
	return p.Ref, p.Err
}

type MockPublisher struct {
	Events []events.OrderPlaced
	Err    error
}

func (p *MockPublisher) PublishOrderPlaced(_ context.Context, ev events.OrderPlaced) error {
	p.Events = append(p.Events, ev)
	return p.Err
}

func (p *MockPublisher) Close() error { return nil }
