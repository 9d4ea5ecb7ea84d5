// Package cart is the authoritative in-memory line-item collection of a
// session. Every mutation is mirrored to a Persister before it returns.
package cart

import (
	"context"
	"sync"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Persister is the durable mirror of the cart.
type Persister interface {
	Load(ctx context.Context) []domain.LineItem
	Save(ctx context.Context, items []domain.LineItem) error
}

type Engine struct {
	mu    sync.Mutex
	items []domain.LineItem
	store Persister
}

func NewEngine(store Persister) *Engine {
	return &Engine{store: store, items: []domain.LineItem{}}
}

// Restore replaces the in-memory items with the persisted ones.
func (e *Engine) Restore(ctx context.Context) {
	items := e.store.Load(ctx)

	e.mu.Lock()
	e.items = items
	e.mu.Unlock()
}

// Add puts qty units of product at weight into the cart. The product's name,
// image and price for weight are copied into a new line; an existing line
// only has its quantity increased. qty <= 0 changes nothing. A line never
// holds more than domain.MaxLineQuantity; an add that would exceed it is
// refused with domain.ErrQuantityLimit and leaves the cart as it was.
func (e *Engine) Add(ctx context.Context, product domain.Product, weight domain.Weight, qty int) error {
	price, err := product.PriceFor(weight)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(product.ID, weight)
	if e.quantityAt(idx)+qty > domain.MaxLineQuantity {
		return domain.ErrQuantityLimit
	}
	if idx >= 0 {
		e.items[idx].Quantity += qty
	} else {
		e.items = append(e.items, domain.LineItem{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ProductNameHi: product.NameHi,
			Weight:        weight,
			Quantity:      qty,
			Price:         price,
			Image:         product.PrimaryImage(),
		})
	}
	e.persist(ctx)
	return nil
}

// AddLine merges an already snapshotted line, used when reordering.
func (e *Engine) AddLine(ctx context.Context, line domain.LineItem) error {
	if !line.Weight.Valid() {
		return domain.ErrUnknownWeight
	}
	if line.Quantity <= 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(line.ProductID, line.Weight)
	if e.quantityAt(idx)+line.Quantity > domain.MaxLineQuantity {
		return domain.ErrQuantityLimit
	}
	if idx >= 0 {
		e.items[idx].Quantity += line.Quantity
	} else {
		e.items = append(e.items, line)
	}
	e.persist(ctx)
	return nil
}

// Update sets the quantity of a line exactly. qty <= 0 removes the line.
// Absent lines are left alone.
func (e *Engine) Update(ctx context.Context, productID string, weight domain.Weight, qty int) error {
	if !weight.Valid() {
		return domain.ErrUnknownWeight
	}
	if qty > domain.MaxLineQuantity {
		return domain.ErrQuantityLimit
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(productID, weight)
	if idx < 0 {
		return nil
	}
	if qty <= 0 {
		e.removeAt(idx)
	} else {
		e.items[idx].Quantity = qty
	}
	e.persist(ctx)
	return nil
}

func (e *Engine) Remove(ctx context.Context, productID string, weight domain.Weight) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if idx := e.indexOf(productID, weight); idx >= 0 {
		e.removeAt(idx)
		e.persist(ctx)
	}
}

func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = []domain.LineItem{}
	e.persist(ctx)
}

// Items returns a copy of the current lines in insertion order.
func (e *Engine) Items() []domain.LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.LineItem, len(e.items))
	copy(out, e.items)
	return out
}

func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, it := range e.items {
		n += it.Quantity
	}
	return n
}

func (e *Engine) Subtotal() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	return subtotal(e.items)
}

// Snapshot returns the lines, count and subtotal read under one lock.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]domain.LineItem, len(e.items))
	copy(items, e.items)
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return Snapshot{Items: items, Count: n, Subtotal: subtotal(items)}
}

type Snapshot struct {
	Items    []domain.LineItem
	Count    int
	Subtotal decimal.Decimal
}

func subtotal(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

func (e *Engine) indexOf(productID string, weight domain.Weight) int {
	for i, it := range e.items {
		if it.Matches(productID, weight) {
			return i
		}
	}
	return -1
}

// quantityAt is the quantity of the line at idx, or 0 for -1.
func (e *Engine) quantityAt(idx int) int {
	if idx < 0 {
		return 0
	}
	return e.items[idx].Quantity
}

func (e *Engine) removeAt(idx int) {
	e.items = append(e.items[:idx:idx], e.items[idx+1:]...)
}

// persist must be called with e.mu held. Write failures are logged only; the
// in-memory cart stays authoritative.
func (e *Engine) persist(ctx context.Context) {
	items := make([]domain.LineItem, len(e.items))
	copy(items, e.items)
	if err := e.store.Save(ctx, items); err != nil {
		logger.FromContext(ctx).Warn("cart persist failed", zap.Error(err))
	}
}
