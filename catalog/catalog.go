// Package catalog loads style property definitions from YAML, JSON or TOML
// and builds properties from them.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	styleprops "github.com/goliatone/go-styleprops"
)

var (
	// ErrUnknownProperty is returned when a property id is not in the catalog.
	ErrUnknownProperty = errors.New("catalog: unknown property")
	// ErrNotSelect is returned by Select for definitions of another type.
	ErrNotSelect = errors.New("catalog: property is not a select")
	// ErrDuplicateProperty is returned when two definitions share an id.
	ErrDuplicateProperty = errors.New("catalog: duplicate property")
)

// Catalog is an ordered set of property definitions keyed by id.
type Catalog struct {
	definitions map[string]Definition
	order       []string
	logger      *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger routes catalog diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a catalog from definitions, keeping their order.
func New(definitions []Definition, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		definitions: make(map[string]Definition, len(definitions)),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	for i, def := range definitions {
		if def.ID == "" {
			return nil, fmt.Errorf("catalog: definition %d has no id", i)
		}
		if _, exists := c.definitions[def.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProperty, def.ID)
		}
		c.definitions[def.ID] = def.clone()
		c.order = append(c.order, def.ID)
	}
	return c, nil
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// IDs returns the property ids in catalog order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.order)
}

// Lookup returns a copy of the definition stored under id.
func (c *Catalog) Lookup(id string) (Definition, bool) {
	if c == nil {
		return Definition{}, false
	}
	def, ok := c.definitions[id]
	if !ok {
		return Definition{}, false
	}
	return def.clone(), true
}

// Definitions returns copies of all definitions in catalog order.
func (c *Catalog) Definitions() []Definition {
	if c == nil {
		return nil
	}
	out := make([]Definition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.definitions[id].clone())
	}
	return out
}

// Merge returns a new catalog where definitions of other replace those with
// the same id and new ids are appended.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := &Catalog{
		definitions: map[string]Definition{},
		logger:      slog.New(slog.DiscardHandler),
	}
	if c != nil {
		merged.logger = c.logger
	}
	for _, source := range []*Catalog{c, other} {
		for _, def := range source.Definitions() {
			if _, exists := merged.definitions[def.ID]; !exists {
				merged.order = append(merged.order, def.ID)
			} else {
				merged.logger.Debug("catalog definition overridden", "property", def.ID)
			}
			merged.definitions[def.ID] = def
		}
	}
	return merged
}

// Property builds a generic property from the definition stored under id.
func (c *Catalog) Property(id string, opts ...styleprops.PropertyOption) (*styleprops.Property, error) {
	def, ok := c.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, id)
	}
	return styleprops.NewProperty(def.Attributes(), opts...), nil
}

// Select builds a select property from the definition stored under id.
func (c *Catalog) Select(id string, opts ...styleprops.PropertyOption) (*styleprops.SelectProperty, error) {
	def, ok := c.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, id)
	}
	if !def.IsSelect() {
		return nil, fmt.Errorf("%w: %q has type %q", ErrNotSelect, id, def.Type)
	}
	return styleprops.NewSelectProperty(def.Attributes(), opts...), nil
}
