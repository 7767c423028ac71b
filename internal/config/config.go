// Package config reads CLI defaults from the environment and optional .env
// files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvCatalog        = "STYLEPROPS_CATALOG"
	EnvLocale         = "STYLEPROPS_LOCALE"
	EnvLocaleFallback = "STYLEPROPS_LOCALE_FALLBACK"
	EnvMessages       = "STYLEPROPS_MESSAGES"
	EnvLogLevel       = "LOG_LEVEL"
)

// Config holds the CLI settings.
type Config struct {
	// Catalog is an extra catalog file merged over the builtin one.
	Catalog        string
	Locale         string
	LocaleFallback string
	// Messages is an extra messages file merged over the builtin locales.
	Messages string
	LogLevel string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Locale:         "en",
		LocaleFallback: "en",
		LogLevel:       "info",
	}
}

// Load applies .env files (default `.env`, missing files are ignored) to the
// process environment without overriding variables already set, then reads
// the configuration from it.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return FromLookup(os.LookupEnv), nil
}

// FromLookup builds a Config from lookup, falling back to Default values.
func FromLookup(lookup func(string) (string, bool)) Config {
	cfg := Default()
	get := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}
	cfg.Catalog = get(EnvCatalog, cfg.Catalog)
	cfg.Locale = get(EnvLocale, cfg.Locale)
	cfg.LocaleFallback = get(EnvLocaleFallback, cfg.LocaleFallback)
	cfg.Messages = get(EnvMessages, cfg.Messages)
	cfg.LogLevel = get(EnvLogLevel, cfg.LogLevel)
	return cfg
}

// FromMap is FromLookup over a map, eg. the result of godotenv.Read.
func FromMap(values map[string]string) Config {
	return FromLookup(func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	})
}
