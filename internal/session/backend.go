package session

import (
	"context"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/shopspring/decimal"
)

// Backend is the part of the shop API a session needs.
type Backend interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (domain.CouponApplication, error)
	Login(ctx context.Context, email, password string) (backend.AuthResult, error)
	Register(ctx context.Context, req backend.RegisterRequest) (backend.AuthResult, error)
	Me(ctx context.Context, token string) (domain.User, error)
}
