package session

import (
	"context"
	"sync"

	"github.com/UTarts/RASRAJ-themithaishop/internal/i18n"
	"github.com/UTarts/RASRAJ-themithaishop/internal/store"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"go.uber.org/zap"
)

type LanguageContext struct {
	catalog *i18n.Catalog
	langs   *store.LanguageStore

	mu   sync.RWMutex
	lang string
}

func newLanguageContext(catalog *i18n.Catalog, langs *store.LanguageStore) *LanguageContext {
	return &LanguageContext{catalog: catalog, langs: langs, lang: i18n.DefaultLanguage}
}

// Init restores the stored language; unknown or missing values mean English.
func (l *LanguageContext) Init(ctx context.Context) error {
	lang, ok, err := l.langs.Get(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("could not read stored language", zap.Error(err))
		return nil
	}
	if ok && l.catalog.Supports(lang) {
		l.mu.Lock()
		l.lang = lang
		l.mu.Unlock()
	}
	return nil
}

func (l *LanguageContext) Lang() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

func (l *LanguageContext) Set(ctx context.Context, lang string) error {
	if !l.catalog.Supports(lang) {
		return ErrUnsupportedLanguage
	}
	l.mu.Lock()
	l.lang = lang
	l.mu.Unlock()
	return l.langs.Set(ctx, lang)
}

// Toggle switches between English and Hindi and returns the new language.
func (l *LanguageContext) Toggle(ctx context.Context) (string, error) {
	next := i18n.Hindi
	if l.Lang() == i18n.Hindi {
		next = i18n.English
	}
	if err := l.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func (l *LanguageContext) T(key string) string {
	return l.catalog.T(l.Lang(), key)
}
