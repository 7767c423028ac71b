package styleprops

import "github.com/goccy/go-json"

// LabelSource names the step of the label chain that produced a label.
type LabelSource string

const (
	LabelFromTranslation LabelSource = "translation"
	LabelFromLabel       LabelSource = "label"
	LabelFromName        LabelSource = "name"
	LabelFromID          LabelSource = "id"
)

// LabelResolution explains how an option label was resolved.
type LabelResolution struct {
	OptionID any         `json:"option_id"`
	Label    string      `json:"label"`
	Source   LabelSource `json:"source"`
	Key      string      `json:"key,omitempty"`
	Found    bool        `json:"found"`
}

// ToJSON serialises the resolution for logging or CLI output.
func (r LabelResolution) ToJSON() ([]byte, error) {
	type alias LabelResolution
	return json.Marshal(alias(r))
}

// LabelOption tunes a single label lookup.
type LabelOption func(*labelConfig)

type labelConfig struct {
	locale     bool
	translator Translator
}

// WithLocale toggles the translation step. It is on by default.
func WithLocale(enabled bool) LabelOption {
	return func(cfg *labelConfig) {
		cfg.locale = enabled
	}
}

// WithLabelTranslator overrides the property translator for one lookup.
func WithLabelTranslator(translator Translator) LabelOption {
	return func(cfg *labelConfig) {
		cfg.translator = translator
	}
}
