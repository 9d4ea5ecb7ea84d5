// Package session ties together the per-shopper contexts (cart, auth and
// language) and their persisted slots.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/cart"
	"github.com/UTarts/RASRAJ-themithaishop/internal/i18n"
	"github.com/UTarts/RASRAJ-themithaishop/internal/kv"
	"github.com/UTarts/RASRAJ-themithaishop/internal/metrics"
	"github.com/UTarts/RASRAJ-themithaishop/internal/pricing"
	"github.com/UTarts/RASRAJ-themithaishop/internal/store"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Session struct {
	ID       string
	Cart     *CartContext
	Auth     *AuthContext
	Language *LanguageContext

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Init restores every context from its slot.
func (s *Session) Init(ctx context.Context) error {
	s.Cart.Engine().Restore(ctx)
	if err := s.Auth.Init(ctx); err != nil {
		return err
	}
	return s.Language.Init(ctx)
}

type Deps struct {
	Store   kv.Store
	Backend Backend
	Pricing *pricing.Calculator
	Catalog *i18n.Catalog
	// IdleTimeout evicts sessions from memory; their slots stay persisted.
	IdleTimeout time.Duration
}

// Manager hands out sessions by id, initializing each at most once while it
// is held in memory.
type Manager struct {
	deps Deps
	now  func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	sfg      singleflight.Group
}

func NewManager(deps Deps) *Manager {
	if deps.Pricing == nil {
		deps.Pricing = pricing.NewCalculator(pricing.DefaultConfig())
	}
	if deps.Catalog == nil {
		deps.Catalog = i18n.MustLoad()
	}
	if deps.IdleTimeout <= 0 {
		deps.IdleTimeout = 30 * time.Minute
	}
	return &Manager{
		deps:     deps,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the session for id, restoring it from the store on first use.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if !ValidID(id) {
		return nil, ErrInvalidSessionID
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(m.now())
		return s, nil
	}

	v, err, _ := m.sfg.Do(id, func() (interface{}, error) {
		m.mu.RLock()
		existing, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		s := m.build(id)
		if err := s.Init(ctx); err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.sessions[id] = s
		n := len(m.sessions)
		m.mu.Unlock()
		metrics.ActiveSessions.Set(float64(n))
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	s = v.(*Session)
	s.touch(m.now())
	return s, nil
}

func (m *Manager) build(id string) *Session {
	engine := cart.NewEngine(store.NewCartStore(m.deps.Store, id))
	return &Session{
		ID:       id,
		Cart:     newCartContext(engine, m.deps.Pricing, m.deps.Backend),
		Auth:     newAuthContext(m.deps.Backend, store.NewTokenStore(m.deps.Store, id)),
		Language: newLanguageContext(m.deps.Catalog, store.NewLanguageStore(m.deps.Store, id)),
	}
}

// Teardown drops the in-memory session. Persisted slots are kept, so the
// next Get restores it.
func (m *Manager) Teardown(_ context.Context, id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))
}

// Sweep tears down sessions idle for longer than the configured timeout and
// returns how many were dropped. Sessions with a checkout in flight stay.
func (m *Manager) Sweep(ctx context.Context) int {
	now := m.now()

	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		if s.idleSince(now) > m.deps.IdleTimeout && !s.Cart.Placing() {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range idle {
		m.Teardown(ctx, id)
	}
	if len(idle) > 0 {
		logger.FromContext(ctx).Debug("swept idle sessions", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// Run sweeps idle sessions until ctx is done.
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
