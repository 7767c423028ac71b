package styleprops

import "strings"

// Translator resolves localized strings. A missing entry reports false.
type Translator interface {
	Translate(key string) (string, bool)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key string) (string, bool)

// Translate implements Translator.
func (f TranslatorFunc) Translate(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	return f(key)
}

// OptionTranslationKey returns the message key of an option label, eg.
// `styleManager.options.font-weight.700`.
func OptionTranslationKey(propertyID string, optionID any) string {
	return strings.Join([]string{"styleManager", "options", propertyID, stringify(optionID)}, ".")
}
