package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/kv"
	"github.com/shopspring/decimal"
)

// fakeBackend is guarded by a mutex because sessions call it concurrently.
type fakeBackend struct {
	mu sync.Mutex

	products map[string]domain.Product
	// couponFn decides validation outcomes; nil accepts everything with a
	// flat 50 discount.
	couponFn    func(code string, subtotal decimal.Decimal) (domain.CouponApplication, error)
	couponCalls int

	users   map[string]domain.User
	meErr   error
	meCalls int
	login   backend.AuthResult
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		products: map[string]domain.Product{
			"p1": {ID: "p1", Name: "Kaju Katli", Prices: domain.Prices{G250: domain.Rupees(250), G500: domain.Rupees(480)}},
			"p2": {ID: "p2", Name: "Besan Ladoo", Prices: domain.Prices{G250: domain.Rupees(100)}},
		},
		users: map[string]domain.User{},
	}
}

func (f *fakeBackend) GetProduct(_ context.Context, id string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, &backend.APIError{Status: 404, Detail: "Product not found"}
	}
	return p, nil
}

func (f *fakeBackend) ValidateCoupon(_ context.Context, code string, subtotal decimal.Decimal) (domain.CouponApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.couponCalls++
	if f.couponFn != nil {
		return f.couponFn(code, subtotal)
	}
	return domain.CouponApplication{Code: code, Discount: domain.Rupees(50), Description: "flat", ValidatedSubtotal: subtotal}, nil
}

func (f *fakeBackend) Login(context.Context, string, string) (backend.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.login, nil
}

func (f *fakeBackend) Register(_ context.Context, req backend.RegisterRequest) (backend.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return backend.AuthResult{Token: "reg-token", Name: req.Name, Email: req.Email, Role: domain.RoleCustomer, ID: "u9"}, nil
}

func (f *fakeBackend) Me(_ context.Context, token string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meCalls++
	if f.meErr != nil {
		return domain.User{}, f.meErr
	}
	u, ok := f.users[token]
	if !ok {
		return domain.User{}, &backend.APIError{Status: 401, Detail: "Invalid token"}
	}
	return u, nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.couponCalls
}

// failingReads is a store whose reads fail for keys ending in one of the
// given slot names.
type failingReads struct {
	*kv.MemoryStore
	slots []string
}

func (f *failingReads) Get(ctx context.Context, key string) ([]byte, error) {
	for _, slot := range f.slots {
		if strings.HasSuffix(key, slot) {
			return nil, errors.New("connection reset by peer")
		}
	}
	return f.MemoryStore.Get(ctx, key)
}
