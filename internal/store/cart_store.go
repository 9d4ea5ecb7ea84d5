package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/kv"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"go.uber.org/zap"
)

// CartStore mirrors a session's line items into the rr_cart slot.
type CartStore struct {
	kv  kv.Store
	key string
}

func NewCartStore(s kv.Store, sessionID string) *CartStore {
	return &CartStore{kv: s, key: SlotKey(sessionID, SlotCart)}
}

// Load returns the persisted items. A missing, unreadable or corrupt slot
// yields an empty cart; corrupt content is discarded.
func (c *CartStore) Load(ctx context.Context) []domain.LineItem {
	log := logger.FromContext(ctx)

	data, err := c.kv.Get(ctx, c.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []domain.LineItem{}
	}
	if err != nil {
		log.Warn("cart load failed", zap.String("key", c.key), zap.Error(err))
		return []domain.LineItem{}
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil || !wellFormed(items) {
		log.Warn("discarding corrupt cart", zap.String("key", c.key), zap.Error(err))
		if delErr := c.kv.Delete(ctx, c.key); delErr != nil {
			log.Warn("cart discard failed", zap.String("key", c.key), zap.Error(delErr))
		}
		return []domain.LineItem{}
	}
	if items == nil {
		items = []domain.LineItem{}
	}
	return items
}

// Save overwrites the slot with the full item list.
func (c *CartStore) Save(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := c.kv.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("save cart failed: %w", err)
	}
	return nil
}

// wellFormed rejects stored lists that would break the cart invariants.
func wellFormed(items []domain.LineItem) bool {
	type pair struct {
		id string
		w  domain.Weight
	}
	seen := make(map[pair]struct{}, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 || !it.Weight.Valid() || it.Price.IsNegative() {
			return false
		}
		p := pair{it.ProductID, it.Weight}
		if _, dup := seen[p]; dup {
			return false
		}
		seen[p] = struct{}{}
	}
	return true
}
