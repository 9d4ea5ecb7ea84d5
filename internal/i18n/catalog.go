// Package i18n holds the storefront's display strings for each supported
// language.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	English = "en"
	Hindi   = "hi"

	DefaultLanguage = English
)

//go:embed locales/*.yaml
var localesFS embed.FS

type Catalog struct {
	messages map[string]map[string]string
}

// Load parses every embedded locale file.
func Load() (*Catalog, error) {
	entries, err := localesFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	c := &Catalog{messages: make(map[string]map[string]string, len(entries))}
	for _, e := range entries {
		data, err := localesFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var msgs map[string]string
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		c.messages[strings.TrimSuffix(e.Name(), ".yaml")] = msgs
	}
	if _, ok := c.messages[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("missing %s locale", DefaultLanguage)
	}
	return c, nil
}

// MustLoad is Load for program start-up.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// T translates key into lang, falling back to English and then to the key.
func (c *Catalog) T(lang, key string) string {
	if msg, ok := c.messages[lang][key]; ok {
		return msg
	}
	if msg, ok := c.messages[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

func (c *Catalog) Supports(lang string) bool {
	_, ok := c.messages[lang]
	return ok
}

func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.messages))
	for l := range c.messages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
