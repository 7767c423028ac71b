package styleprops

import (
	"slices"

	"github.com/goliatone/go-styleprops/pkg/activity"
)

// Attributes specific to select properties.
const (
	AttrOptions = "options"
	// AttrList is the legacy name of AttrOptions. It mirrors options after
	// every change and is only read when options is empty.
	AttrList = "list"
	AttrFull = "full"
)

// TypeSelect is the property type of SelectProperty.
const TypeSelect = "select"

// SelectProperty is a property whose value is picked from a list of
// labelled options, eg. a font-weight dropdown.
type SelectProperty struct {
	*Property
}

// SelectDefaults returns the default attributes of a select property.
func SelectDefaults() map[string]any {
	defaults := DefaultAttributes()
	defaults[AttrType] = TypeSelect
	defaults[AttrOptions] = []SelectOption{}
	defaults[AttrFull] = 0
	return defaults
}

// NewSelectProperty builds a select property from attrs. Any later change to
// `options`, whichever way it was made, is copied into `list`.
func NewSelectProperty(attrs map[string]any, opts ...PropertyOption) *SelectProperty {
	base := newProperty(SelectDefaults(), attrs, applyPropertyOptions(opts))
	sp := &SelectProperty{Property: base}
	base.OnChange(AttrOptions, sp.syncLegacyList)
	return sp
}

func (sp *SelectProperty) syncLegacyList(change Change) {
	sp.Set(AttrList, change.Current)
	sp.emit(activity.BuildOptionsUpdatedEvent(activity.PropertyEventInput{
		ObjectID: sp.ID(),
		Metadata: map[string]any{
			"count":          len(ToSelectOptions(change.Current)),
			"previous_count": len(ToSelectOptions(change.Previous)),
		},
	}))
}

// Options returns `options` when non-empty, then `list`, then an empty slice.
// The returned slice may be modified freely; the options it holds are shared.
func (sp *SelectProperty) Options() []SelectOption {
	if options := ToSelectOptions(sp.Get(AttrOptions)); len(options) > 0 {
		return slices.Clone(options)
	}
	if list := ToSelectOptions(sp.Get(AttrList)); len(list) > 0 {
		return slices.Clone(list)
	}
	return []SelectOption{}
}

// Option returns the first option whose identity equals id. A nil id looks up
// the current value.
func (sp *SelectProperty) Option(id any) (SelectOption, bool) {
	if id == nil {
		id = sp.Value()
	}
	if id == nil {
		return nil, false
	}
	for _, option := range sp.Options() {
		if option.Matches(id) {
			return option, true
		}
	}
	return nil, false
}

// CurrentOption returns the option matching the current value.
func (sp *SelectProperty) CurrentOption() (SelectOption, bool) {
	return sp.Option(nil)
}

// SetOptions replaces the option list wholesale. Options are stored as given;
// entries without an identity are kept but never match a lookup.
func (sp *SelectProperty) SetOptions(options ...SelectOption) *SelectProperty {
	next := slices.Clone(options)
	if next == nil {
		next = []SelectOption{}
	}
	sp.Set(AttrOptions, next, ForceChange)
	return sp
}

// AddOption appends option to the current options. A nil option is ignored.
// When only the legacy list is populated it becomes the base of the new
// options.
func (sp *SelectProperty) AddOption(option SelectOption) *SelectProperty {
	if option == nil {
		return sp
	}
	return sp.SetOptions(append(sp.Options(), option)...)
}

// OptionID returns `id` when defined, otherwise `value`, otherwise nil.
func (sp *SelectProperty) OptionID(option SelectOption) any {
	id, _ := option.Identity()
	return id
}

// OptionLabel returns the display label of the option identified by id.
func (sp *SelectProperty) OptionLabel(id any, opts ...LabelOption) string {
	return sp.ResolveLabel(id, opts...).Label
}

// ResolveLabel walks the label chain for id: translation, `label`, `name`,
// then the id itself. The translation key only depends on the property id and
// id, so it is tried even when no option matches.
func (sp *SelectProperty) ResolveLabel(id any, opts ...LabelOption) LabelResolution {
	cfg := labelConfig{locale: true, translator: sp.cfg.translator}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	resolution := LabelResolution{OptionID: id}
	var option SelectOption
	if id != nil {
		option, resolution.Found = sp.Option(id)
	}

	if cfg.locale && cfg.translator != nil {
		key := OptionTranslationKey(sp.ID(), id)
		if translated, ok := cfg.translator.Translate(key); ok && translated != "" {
			resolution.Label = translated
			resolution.Source = LabelFromTranslation
			resolution.Key = key
			return resolution
		}
	}

	if label, source, ok := option.displayLabel(); ok {
		resolution.Label = label
		resolution.Source = LabelSource(source)
		return resolution
	}
	resolution.Label = stringify(id)
	resolution.Source = LabelFromID
	return resolution
}

// Full reports whether the property is rendered at full width.
func (sp *SelectProperty) Full() bool {
	switch v := sp.Get(AttrFull).(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v == "1" || v == "true"
	default:
		n, ok := asNumber(v)
		return ok && !n.isZero()
	}
}

// SetFull stores the full width flag as 1 or 0.
func (sp *SelectProperty) SetFull(full bool) *SelectProperty {
	value := 0
	if full {
		value = 1
	}
	sp.Set(AttrFull, value)
	return sp
}
