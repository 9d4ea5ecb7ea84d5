package session

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/store"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AuthContext holds the session's bearer token and the user it belongs to.
type AuthContext struct {
	api    Backend
	tokens *store.TokenStore

	mu    sync.RWMutex
	token string
	user  *domain.User
}

func newAuthContext(api Backend, tokens *store.TokenStore) *AuthContext {
	return &AuthContext{api: api, tokens: tokens}
}

// Init restores the stored token and resolves its user. A token the backend
// rejects is discarded; one that cannot be checked right now is kept. An
// unreadable slot leaves the session signed out.
func (a *AuthContext) Init(ctx context.Context) error {
	token, ok, err := a.tokens.Get(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("could not read stored token", zap.Error(err))
		return nil
	}
	if !ok || token == "" {
		return nil
	}

	user, err := a.api.Me(ctx, token)
	if err != nil {
		if backend.IsStatus(err, http.StatusUnauthorized) || backend.IsStatus(err, http.StatusForbidden) {
			logger.FromContext(ctx).Info("discarding rejected token")
			if err := a.tokens.Clear(ctx); err != nil {
				logger.FromContext(ctx).Warn("could not clear rejected token", zap.Error(err))
			}
			return nil
		}
		logger.FromContext(ctx).Warn("could not verify stored token", zap.Error(err))
		a.mu.Lock()
		a.token = token
		a.mu.Unlock()
		return nil
	}

	a.mu.Lock()
	a.token = token
	a.user = &user
	a.mu.Unlock()
	return nil
}

func (a *AuthContext) Login(ctx context.Context, email, password string) (domain.User, error) {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}
	return a.signIn(ctx, res)
}

func (a *AuthContext) Register(ctx context.Context, req backend.RegisterRequest) (domain.User, error) {
	res, err := a.api.Register(ctx, req)
	if err != nil {
		return domain.User{}, err
	}
	return a.signIn(ctx, res)
}

func (a *AuthContext) signIn(ctx context.Context, res backend.AuthResult) (domain.User, error) {
	if res.Token == "" {
		return domain.User{}, errors.New("backend returned no token")
	}
	if err := a.tokens.Set(ctx, res.Token); err != nil {
		return domain.User{}, err
	}
	user := res.User()

	a.mu.Lock()
	a.token = res.Token
	a.user = &user
	a.mu.Unlock()
	return user, nil
}

// Logout forgets the token. The cart is left alone.
func (a *AuthContext) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.token = ""
	a.user = nil
	a.mu.Unlock()
	return a.tokens.Clear(ctx)
}

func (a *AuthContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *AuthContext) User() (domain.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return domain.User{}, false
	}
	return *a.user, true
}

func (a *AuthContext) Authenticated() bool {
	return a.Token() != ""
}

// Role is the user's role, or the role claim of the token when the user
// could not be loaded. It gates navigation only; the backend enforces
// access.
func (a *AuthContext) Role() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.user != nil && a.user.Role != "" {
		return a.user.Role
	}
	if a.token == "" {
		return ""
	}
	return roleClaim(a.token)
}

func (a *AuthContext) HasRole(roles ...string) bool {
	role := a.Role()
	if role == "" {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	return slices.Contains(roles, role)
}

func roleClaim(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
