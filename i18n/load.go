package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed locale/*.yaml
var builtinLocales embed.FS

// Builtin returns a catalog preloaded with the bundled locales, overlaid
// with any messages in cfg.
func Builtin(cfg Config) (*Catalog, error) {
	c := New(Config{Locale: cfg.Locale, LocaleFallback: cfg.LocaleFallback, Logger: cfg.Logger})
	entries, err := fs.ReadDir(builtinLocales, "locale")
	if err != nil {
		return nil, fmt.Errorf("i18n: read builtin locales: %w", err)
	}
	for _, entry := range entries {
		name := path.Join("locale", entry.Name())
		data, err := fs.ReadFile(builtinLocales, name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		var messages Messages
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", name, err)
		}
		c.AddMessages(strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())), messages)
	}
	for locale, messages := range cfg.Messages {
		c.AddMessages(locale, messages)
	}
	// Re-resolve now that locales are loaded so regional tags match.
	c.SetLocale(c.Locale())
	return c, nil
}

// LoadFile merges a YAML or JSON file whose top-level keys are locale codes:
//
//	it:
//	  styleManager:
//	    options:
//	      float:
//	        left: Sinistra
func (c *Catalog) LoadFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("i18n: read %s: %w", file, err)
	}
	var byLocale map[string]Messages
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &byLocale)
	case ".json":
		err = json.Unmarshal(data, &byLocale)
	default:
		return fmt.Errorf("i18n: unsupported messages file %q", file)
	}
	if err != nil {
		return fmt.Errorf("i18n: parse %s: %w", file, err)
	}
	for locale, messages := range byLocale {
		c.AddMessages(locale, messages)
	}
	c.SetLocale(c.Locale())
	return nil
}
