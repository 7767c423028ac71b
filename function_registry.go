package styleprops

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Function is a helper callable from condition expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores helpers keyed by case-insensitive name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
	// names keeps the registered spelling, exposed as direct calls.
	names map[string]string
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]Function), names: make(map[string]string)}
}

// Register stores fn under name. Names must be unique.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("styleprops: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("styleprops: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	if r.names == nil {
		r.names = make(map[string]string)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("styleprops: function %q already registered", name)
	}
	r.functions[key] = fn
	r.names[key] = name
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &FunctionRegistry{functions: maps.Clone(r.functions), names: maps.Clone(r.names)}
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("styleprops: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("styleprops: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered function names, as spelled at registration,
// sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Values(r.names))
}

// WithFunctionRegistry exposes registry to the property's default evaluator.
func WithFunctionRegistry(registry *FunctionRegistry) PropertyOption {
	return func(cfg *propertyConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers a single helper for the property.
func WithCustomFunction(name string, fn Function) PropertyOption {
	return func(cfg *propertyConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
