package styleprops

import (
	"regexp"
	"time"
)

// RuleContext carries the inputs of a property `condition` expression.
type RuleContext struct {
	Styles   map[string]any
	Parent   map[string]any
	Property string
	Value    any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

// Evaluator executes condition expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule is a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

func (ctx RuleContext) withDefaults() RuleContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Styles == nil {
		ctx.Styles = map[string]any{}
	}
	if ctx.Parent == nil {
		ctx.Parent = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	return *ctx.withDefaults().Now
}

func (ctx RuleContext) label() string {
	if ctx.Property != "" {
		return ctx.Property
	}
	return "unknown"
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// bindings returns the variables every engine exposes. Style keys that are
// valid identifiers are also lifted to the top level, so `display == "flex"`
// works next to `styles["font-weight"]`.
func (ctx RuleContext) bindings() map[string]any {
	ctx = ctx.withDefaults()
	env := make(map[string]any, len(ctx.Styles)+7)
	for key, value := range ctx.Styles {
		if identifierPattern.MatchString(key) {
			env[key] = value
		}
	}
	env["styles"] = ctx.Styles
	env["parent"] = ctx.Parent
	env["property"] = ctx.Property
	env["value"] = ctx.Value
	env["now"] = *ctx.Now
	env["args"] = ctx.Args
	env["metadata"] = ctx.Metadata
	return env
}
