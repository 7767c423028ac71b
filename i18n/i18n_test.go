package i18n

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	styleprops "github.com/goliatone/go-styleprops"
)

func TestTResolvesNestedAndFlatKeys(t *testing.T) {
	c := New(Config{Messages: map[string]Messages{
		"en": {
			"styleManager": map[string]any{
				"options": map[string]any{
					"float": map[string]any{"left": "Left"},
				},
			},
			"flat.key": "Flat",
		},
	}})

	if got, ok := c.T("styleManager.options.float.left"); !ok || got != "Left" {
		t.Fatalf("expected nested lookup, got %q ok=%v", got, ok)
	}
	if got, ok := c.T("flat.key"); !ok || got != "Flat" {
		t.Fatalf("expected flat lookup, got %q ok=%v", got, ok)
	}
	if _, ok := c.T("styleManager.options"); ok {
		t.Fatalf("expected subtree not to resolve as a message")
	}
	if _, ok := c.T("styleManager.options.float.missing"); ok {
		t.Fatalf("expected missing key")
	}
}

func TestTFallsBackToFallbackLocale(t *testing.T) {
	c := New(Config{
		Locale:         "it",
		LocaleFallback: "en",
		Messages: map[string]Messages{
			"en": {"greeting": "Hello", "farewell": "Bye"},
			"it": {"greeting": "Ciao"},
		},
	})

	if got, _ := c.T("greeting"); got != "Ciao" {
		t.Fatalf("expected active locale, got %q", got)
	}
	if got, _ := c.T("farewell"); got != "Bye" {
		t.Fatalf("expected fallback locale, got %q", got)
	}
	if got, _ := c.T("greeting", InLocale("en")); got != "Hello" {
		t.Fatalf("expected explicit locale, got %q", got)
	}
}

func TestTInterpolatesParams(t *testing.T) {
	c := New(Config{Messages: map[string]Messages{
		"en": {"count": "{count} properties in { group }, {missing} left"},
	}})

	got, _ := c.T("count", WithParams(map[string]any{"count": 3, "group": "layout"}))
	if got != "3 properties in layout, {missing} left" {
		t.Fatalf("unexpected interpolation %q", got)
	}
}

func TestAddMessagesMergesTrees(t *testing.T) {
	c := New(Config{})
	c.AddMessages("en", Messages{"a": map[string]any{"x": "1", "y": "2"}})
	c.AddMessages("en", Messages{"a": map[string]any{"y": "two", "z": "3"}})
	c.AddMessages("", Messages{"ignored": "yes"})

	for key, want := range map[string]string{"a.x": "1", "a.y": "two", "a.z": "3"} {
		if got, _ := c.T(key); got != want {
			t.Fatalf("%s: expected %q, got %q", key, want, got)
		}
	}
	if locales := c.Locales(); !reflect.DeepEqual(locales, []string{"en"}) {
		t.Fatalf("unexpected locales %v", locales)
	}
}

func TestSetLocaleNegotiatesRegionalTags(t *testing.T) {
	c, err := Builtin(Config{Locale: "it_IT"})
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	if c.Locale() != "it" {
		t.Fatalf("expected it-IT to resolve to it, got %q", c.Locale())
	}

	c.SetLocale("en-GB")
	if c.Locale() != "en" {
		t.Fatalf("expected en-GB to resolve to en, got %q", c.Locale())
	}

	c.SetLocale("ja")
	if c.Locale() != "ja" {
		t.Fatalf("expected unknown locale kept, got %q", c.Locale())
	}
	if got, _ := c.T("styleManager.options.float.left"); got != "Left" {
		t.Fatalf("expected fallback for an unloaded locale, got %q", got)
	}
}

func TestBuiltinTranslatesSelectLabels(t *testing.T) {
	c, err := Builtin(Config{Locale: "it"})
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}

	sp := styleprops.NewSelectProperty(map[string]any{
		"property": "font-weight",
		"options": []styleprops.SelectOption{
			{"id": "700", "label": "Bold"},
			{"id": "800", "label": "Extra-Bold"},
			{"id": "950", "label": "Heavy"},
		},
	}, styleprops.WithTranslator(c))

	if got := sp.OptionLabel("700"); got != "Grassetto" {
		t.Fatalf("expected italian label, got %q", got)
	}
	if got := sp.OptionLabel("800"); got != "Extra-Bold" {
		t.Fatalf("expected english fallback, got %q", got)
	}
	if got := sp.OptionLabel("950"); got != "Heavy" {
		t.Fatalf("expected local label for an untranslated id, got %q", got)
	}
	if got := sp.OptionLabel("700", styleprops.WithLabelTranslator(c.Translator("en"))); got != "Bold" {
		t.Fatalf("expected pinned english translator, got %q", got)
	}
	if got, _ := c.T("styleManager.properties.count", WithParams(map[string]any{"count": 2})); got != "2 proprietà" {
		t.Fatalf("unexpected count message %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	c, err := Builtin(Config{Locale: "de"})
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	if err := c.LoadFile(filepath.Join("testdata", "messages.yaml")); err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if err := c.LoadFile(filepath.Join("testdata", "messages.json")); err != nil {
		t.Fatalf("load json: %v", err)
	}

	if got, _ := c.T("styleManager.options.float.left"); got != "Links" {
		t.Fatalf("expected german message, got %q", got)
	}
	if got, _ := c.T("styleManager.options.float.right", InLocale("it")); got != "A destra" {
		t.Fatalf("expected override of builtin message, got %q", got)
	}
	if got, _ := c.T("styleManager.options.float.left", InLocale("it")); got != "Sinistra" {
		t.Fatalf("expected builtin sibling kept after merge, got %q", got)
	}
	if got, _ := c.T("styleManager.options.float.left", InLocale("fr-CA")); got != "Gauche" {
		t.Fatalf("expected json messages with regional match, got %q", got)
	}

	if err := c.LoadFile("messages.ini"); err == nil || !strings.Contains(err.Error(), "i18n: read") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestMissingMessagesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := New(Config{Logger: logger})

	if _, ok := c.Translate("nope"); ok {
		t.Fatalf("expected miss")
	}
	if !strings.Contains(buf.String(), "key=nope") {
		t.Fatalf("expected debug log for the miss, got %q", buf.String())
	}
}

func TestZeroTranslator(t *testing.T) {
	var tr Translator
	if _, ok := tr.Translate("anything"); ok {
		t.Fatalf("expected zero translator to miss")
	}
}
