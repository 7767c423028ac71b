// Package i18n keeps per-locale message trees and resolves dotted keys such
// as `styleManager.options.float.left`, falling back to a second locale.
package i18n

import (
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/goliatone/go-styleprops/layering"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Messages is a nested message tree, eg. {"styleManager": {"options": ...}}.
type Messages map[string]any

// Config configures a Catalog.
type Config struct {
	Locale         string
	LocaleFallback string
	// Messages maps locale codes to message trees.
	Messages map[string]Messages
	Logger   *slog.Logger
}

// Catalog resolves messages for the active locale. It is safe for
// concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	locale   string
	fallback string
	messages map[string]Messages
	logger   *slog.Logger
}

// New builds a catalog from cfg. Locale and fallback default to DefaultLocale.
func New(cfg Config) *Catalog {
	c := &Catalog{
		locale:   normalizeLocale(cfg.Locale),
		fallback: normalizeLocale(cfg.LocaleFallback),
		messages: map[string]Messages{},
		logger:   cfg.Logger,
	}
	if c.locale == "" {
		c.locale = DefaultLocale
	}
	if c.fallback == "" {
		c.fallback = DefaultLocale
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	for locale, messages := range cfg.Messages {
		c.AddMessages(locale, messages)
	}
	return c
}

// Locale returns the active locale.
func (c *Catalog) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// Fallback returns the fallback locale.
func (c *Catalog) Fallback() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fallback
}

// SetLocale switches the active locale. Tags such as `it-IT` resolve to the
// closest loaded locale; unknown tags are kept as given.
func (c *Catalog) SetLocale(locale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locale = c.matchLocked(normalizeLocale(locale))
}

// Locales lists the loaded locales sorted alphabetically.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.messages))
}

// AddMessages merges messages into locale. New keys win over existing ones
// and nested trees merge key by key.
func (c *Catalog) AddMessages(locale string, messages Messages) {
	locale = normalizeLocale(locale)
	if locale == "" || len(messages) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[locale] = layering.MergeLayers(messages, c.messages[locale])
	c.logger.Debug("i18n messages added", "locale", locale, "keys", len(messages))
}

// TOption tunes a single lookup.
type TOption func(*tConfig)

type tConfig struct {
	locale string
	params map[string]any
}

// WithParams replaces `{name}` placeholders in the message.
func WithParams(params map[string]any) TOption {
	return func(cfg *tConfig) {
		cfg.params = params
	}
}

// InLocale looks the key up in locale instead of the active one.
func InLocale(locale string) TOption {
	return func(cfg *tConfig) {
		cfg.locale = normalizeLocale(locale)
	}
}

// T returns the message stored under key in the active locale, then the
// fallback locale. The second result is false when neither has it.
func (c *Catalog) T(key string, opts ...TOption) (string, bool) {
	cfg := tConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	c.mu.RLock()
	locale := c.locale
	if cfg.locale != "" {
		locale = c.matchLocked(cfg.locale)
	}
	message, ok := lookup(c.messages[locale], key)
	if !ok && c.fallback != locale {
		message, ok = lookup(c.messages[c.fallback], key)
	}
	c.mu.RUnlock()

	if !ok {
		c.logger.Debug("i18n message missing", "locale", locale, "key", key)
		return "", false
	}
	return interpolate(message, cfg.params), true
}

// Translate implements styleprops.Translator for the active locale.
func (c *Catalog) Translate(key string) (string, bool) {
	return c.T(key)
}

// Translator returns a translator pinned to locale.
func (c *Catalog) Translator(locale string) Translator {
	return Translator{catalog: c, locale: normalizeLocale(locale)}
}

// Translator resolves keys in a fixed locale.
type Translator struct {
	catalog *Catalog
	locale  string
}

// Translate implements styleprops.Translator.
func (t Translator) Translate(key string) (string, bool) {
	if t.catalog == nil {
		return "", false
	}
	if t.locale == "" {
		return t.catalog.T(key)
	}
	return t.catalog.T(key, InLocale(t.locale))
}

// matchLocked maps a requested locale onto a loaded one. Callers hold mu.
func (c *Catalog) matchLocked(locale string) string {
	if locale == "" {
		return DefaultLocale
	}
	if _, ok := c.messages[locale]; ok || len(c.messages) == 0 {
		return locale
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	loaded := slices.Sorted(maps.Keys(c.messages))
	tags := make([]language.Tag, 0, len(loaded))
	for _, code := range loaded {
		tags = append(tags, language.Make(code))
	}
	_, index, confidence := language.NewMatcher(tags).Match(requested)
	if confidence < language.High {
		return locale
	}
	return loaded[index]
}

// lookup walks a dotted key through the tree. At each level the remaining
// key is tried verbatim first so flat keys containing dots also resolve.
func lookup(tree map[string]any, key string) (string, bool) {
	if tree == nil || key == "" {
		return "", false
	}
	if value, ok := tree[key]; ok {
		return messageString(value)
	}
	head, rest, found := strings.Cut(key, ".")
	if !found {
		return "", false
	}
	child, ok := asTree(tree[head])
	if !ok {
		return "", false
	}
	return lookup(child, rest)
}

func asTree(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case Messages:
		return typed, true
	case map[string]any:
		return typed, true
	default:
		return nil, false
	}
}

func messageString(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case nil:
		return "", false
	case map[string]any, Messages, []any:
		return "", false
	default:
		return fmt.Sprint(typed), true
	}
}

var placeholder = regexp.MustCompile(`\{\s*([A-Za-z0-9_.-]+)\s*\}`)

func interpolate(message string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(message, "{") {
		return message
	}
	return placeholder.ReplaceAllStringFunc(message, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if value, ok := params[name]; ok {
			return fmt.Sprint(value)
		}
		return match
	})
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}
