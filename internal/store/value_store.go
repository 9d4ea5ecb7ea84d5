package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/UTarts/RASRAJ-themithaishop/internal/kv"
)

// valueSlot is a plain string slot such as the auth token or language code.
type valueSlot struct {
	kv  kv.Store
	key string
}

func (v valueSlot) get(ctx context.Context) (string, bool, error) {
	data, err := v.kv.Get(ctx, v.key)
	if errors.Is(err, kv.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s failed: %w", v.key, err)
	}
	return string(data), true, nil
}

func (v valueSlot) set(ctx context.Context, value string) error {
	if err := v.kv.Set(ctx, v.key, []byte(value)); err != nil {
		return fmt.Errorf("write %s failed: %w", v.key, err)
	}
	return nil
}

func (v valueSlot) clear(ctx context.Context) error {
	if err := v.kv.Delete(ctx, v.key); err != nil {
		return fmt.Errorf("delete %s failed: %w", v.key, err)
	}
	return nil
}

type TokenStore struct {
	slot valueSlot
}

func NewTokenStore(s kv.Store, sessionID string) *TokenStore {
	return &TokenStore{slot: valueSlot{kv: s, key: SlotKey(sessionID, SlotToken)}}
}

// Get returns the stored bearer token and whether one exists.
func (t *TokenStore) Get(ctx context.Context) (string, bool, error) {
	return t.slot.get(ctx)
}

func (t *TokenStore) Set(ctx context.Context, token string) error {
	return t.slot.set(ctx, token)
}

func (t *TokenStore) Clear(ctx context.Context) error {
	return t.slot.clear(ctx)
}

type LanguageStore struct {
	slot valueSlot
}

func NewLanguageStore(s kv.Store, sessionID string) *LanguageStore {
	return &LanguageStore{slot: valueSlot{kv: s, key: SlotKey(sessionID, SlotLanguage)}}
}

func (l *LanguageStore) Get(ctx context.Context) (string, bool, error) {
	return l.slot.get(ctx)
}

func (l *LanguageStore) Set(ctx context.Context, lang string) error {
	return l.slot.set(ctx, lang)
}

func (l *LanguageStore) Clear(ctx context.Context) error {
	return l.slot.clear(ctx)
}
