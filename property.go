package styleprops

import (
	"context"
	"log/slog"
	"maps"
	"reflect"

	"github.com/goliatone/go-styleprops/layering"
	"github.com/goliatone/go-styleprops/pkg/activity"
)

// Attribute names shared by every property type.
const (
	AttrID             = "id"
	AttrName           = "name"
	AttrProperty       = "property"
	AttrType           = "type"
	AttrDefault        = "default"
	AttrValue          = "value"
	AttrRequires       = "requires"
	AttrRequiresParent = "requiresParent"
	AttrCondition      = "condition"
)

// Change describes a single attribute transition delivered to listeners.
type Change struct {
	Property  *Property
	Attribute string
	Previous  any
	Current   any
}

// ChangeFunc observes attribute changes. Listeners run synchronously inside
// the Set call that produced the change.
type ChangeFunc func(Change)

// SetFlag alters how Set reports a mutation.
type SetFlag uint8

const (
	// ForceChange notifies listeners even when the new value equals the old one.
	ForceChange SetFlag = 1 << iota
	// Silent stores the value without notifying anyone.
	Silent
)

// Property is the generic, attribute backed style property every concrete
// property type builds on.
type Property struct {
	attrs     map[string]any
	listeners map[string][]ChangeFunc
	cfg       propertyConfig
	emitter   *activity.Emitter
}

// DefaultAttributes returns the attribute snapshot shared by all properties.
func DefaultAttributes() map[string]any {
	return map[string]any{
		AttrID:             "",
		AttrName:           "",
		AttrProperty:       "",
		AttrType:           "",
		AttrDefault:        "",
		AttrValue:          nil,
		AttrRequires:       nil,
		AttrRequiresParent: nil,
		AttrCondition:      "",
	}
}

// NewProperty builds a property from the default attributes overlaid with attrs.
func NewProperty(attrs map[string]any, opts ...PropertyOption) *Property {
	return newProperty(DefaultAttributes(), attrs, applyPropertyOptions(opts))
}

func newProperty(defaults, attrs map[string]any, cfg propertyConfig) *Property {
	merged := layering.MergeLayers(attrs, defaults)
	if merged == nil {
		merged = map[string]any{}
	}
	p := &Property{
		attrs:     merged,
		listeners: map[string][]ChangeFunc{},
		cfg:       cfg,
	}
	if p.stringAttr(AttrID) == "" {
		if name := p.stringAttr(AttrProperty); name != "" {
			p.attrs[AttrID] = name
		}
	}
	if len(cfg.activityHooks) > 0 {
		p.emitter = activity.NewEmitter(cfg.activityHooks, cfg.activityConfig)
	}
	return p
}

// ID returns the property identifier, also used as its localization namespace.
func (p *Property) ID() string {
	return p.stringAttr(AttrID)
}

// Name returns the display name, falling back to the id.
func (p *Property) Name() string {
	if name := p.stringAttr(AttrName); name != "" {
		return name
	}
	return p.ID()
}

// StyleName returns the CSS property this model edits (eg. `font-weight`).
func (p *Property) StyleName() string {
	return p.stringAttr(AttrProperty)
}

// Type returns the property type (eg. `select`).
func (p *Property) Type() string {
	return p.stringAttr(AttrType)
}

// Default returns the default value.
func (p *Property) Default() any {
	return p.attrs[AttrDefault]
}

// Value returns the current value or nil when unset.
func (p *Property) Value() any {
	return p.attrs[AttrValue]
}

// SetValue updates the current value.
func (p *Property) SetValue(value any) *Property {
	return p.Set(AttrValue, value)
}

// Get returns the raw attribute stored under key.
func (p *Property) Get(key string) any {
	return p.attrs[key]
}

// Has reports whether key holds a non-nil value.
func (p *Property) Has(key string) bool {
	value, ok := p.attrs[key]
	return ok && value != nil
}

// Attributes returns a shallow copy of every attribute.
func (p *Property) Attributes() map[string]any {
	return maps.Clone(p.attrs)
}

// Set stores value under key and notifies listeners registered for key when
// the value changed.
func (p *Property) Set(key string, value any, flags ...SetFlag) *Property {
	var flag SetFlag
	for _, f := range flags {
		flag |= f
	}
	previous, existed := p.attrs[key]
	p.attrs[key] = value
	if flag&Silent != 0 {
		return p
	}
	if flag&ForceChange == 0 && existed && reflect.DeepEqual(previous, value) {
		return p
	}
	if flag&ForceChange == 0 && !existed && value == nil {
		return p
	}
	p.notify(Change{Property: p, Attribute: key, Previous: previous, Current: value})
	return p
}

// OnChange registers fn for changes of attr. Listeners live as long as the
// property.
func (p *Property) OnChange(attr string, fn ChangeFunc) *Property {
	if fn == nil {
		return p
	}
	p.listeners[attr] = append(p.listeners[attr], fn)
	return p
}

func (p *Property) notify(change Change) {
	p.logger().Debug("property attribute changed",
		"property", p.ID(),
		"attribute", change.Attribute,
	)
	p.emit(activity.BuildPropertyChangedEvent(activity.PropertyEventInput{
		ObjectID:  p.ID(),
		Attribute: change.Attribute,
		OldValue:  change.Previous,
		NewValue:  change.Current,
	}))
	for _, fn := range p.listeners[change.Attribute] {
		fn(change)
	}
}

func (p *Property) emit(event activity.Event) {
	if !p.emitter.Enabled() {
		return
	}
	if err := p.emitter.Emit(context.Background(), event); err != nil {
		p.logger().Warn("property activity hook failed",
			"property", p.ID(),
			"verb", event.Verb,
			"error", err,
		)
	}
}

func (p *Property) stringAttr(key string) string {
	value, ok := p.attrs[key]
	if !ok || value == nil {
		return ""
	}
	return stringify(value)
}

func (p *Property) logger() *slog.Logger {
	if p.cfg.logger != nil {
		return p.cfg.logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.DiscardHandler)
