package backend

import (
	"context"
	"net/http"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
)

type AuthResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    string `json:"id"`
}

func (a AuthResult) User() domain.User {
	return domain.User{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &res, requestOptions{})
	return res, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/register", req, &res, requestOptions{})
	return res, err
}

// Me resolves token to its user; an invalid token yields a 401 APIError.
func (c *Client) Me(ctx context.Context, token string) (domain.User, error) {
	var u domain.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u, requestOptions{token: token})
	return u, err
}
