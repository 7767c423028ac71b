package styleprops

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var evaluatorFactories = []struct {
	name string
	new  func(cache ProgramCache, registry *FunctionRegistry) Evaluator
}{
	{
		name: "expr",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []ExprEvaluatorOption{}
			if cache != nil {
				opts = append(opts, ExprWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, ExprWithFunctionRegistry(registry))
			}
			return NewExprEvaluator(opts...)
		},
	},
	{
		name: "cel",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []CELEvaluatorOption{}
			if cache != nil {
				opts = append(opts, CELWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, CELWithFunctionRegistry(registry))
			}
			return NewCELEvaluator(opts...)
		},
	},
	{
		name: "js",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []JSEvaluatorOption{}
			if cache != nil {
				opts = append(opts, JSWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, JSWithFunctionRegistry(registry))
			}
			return NewJSEvaluator(opts...)
		},
	},
}

func TestVisibleWithoutRules(t *testing.T) {
	p := NewProperty(map[string]any{"property": "float"})
	visible, err := p.Visible(Visibility{})
	if err != nil || !visible {
		t.Fatalf("expected visible without rules, got %v err=%v", visible, err)
	}
}

func TestVisibleRequires(t *testing.T) {
	p := NewProperty(map[string]any{
		"property": "flex-direction",
		"requires": map[string]any{"display": []any{"flex", "inline-flex"}},
	})

	cases := []struct {
		name   string
		styles map[string]any
		want   bool
	}{
		{name: "allowed", styles: map[string]any{"display": "flex"}, want: true},
		{name: "second allowed", styles: map[string]any{"display": "inline-flex"}, want: true},
		{name: "other value", styles: map[string]any{"display": "block"}, want: false},
		{name: "missing style", styles: map[string]any{}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			visible, err := p.Visible(Visibility{Styles: tc.styles})
			if err != nil {
				t.Fatalf("visible: %v", err)
			}
			if visible != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, visible)
			}
		})
	}
}

func TestVisibleRequiresShapes(t *testing.T) {
	styles := map[string]any{"position": "absolute", "z-index": 2}
	shapes := []any{
		map[string][]string{"position": {"absolute", "fixed"}},
		map[string][]any{"position": {"absolute"}},
		map[string]any{"position": "absolute"},
		map[string]any{"position": []string{"relative", "absolute"}},
		map[string]any{"z-index": []any{float64(2)}},
	}
	for i, requires := range shapes {
		p := NewProperty(map[string]any{"property": "top", "requires": requires})
		visible, err := p.Visible(Visibility{Styles: styles})
		if err != nil || !visible {
			t.Fatalf("shape %d (%T): expected visible, got %v err=%v", i, requires, visible, err)
		}
	}
}

func TestVisibleRequiresParent(t *testing.T) {
	p := NewProperty(map[string]any{
		"property":       "order",
		"requiresParent": map[string]any{"display": []any{"flex"}},
	})

	visible, err := p.Visible(Visibility{Parent: map[string]any{"display": "flex"}})
	if err != nil || !visible {
		t.Fatalf("expected visible under a flex parent, got %v err=%v", visible, err)
	}
	visible, err = p.Visible(Visibility{Styles: map[string]any{"display": "flex"}})
	if err != nil || visible {
		t.Fatalf("expected own styles not to satisfy requiresParent, got %v err=%v", visible, err)
	}
}

func TestVisibleConditionAcrossEngines(t *testing.T) {
	for _, factory := range evaluatorFactories {
		t.Run(factory.name, func(t *testing.T) {
			evaluator := factory.new(nil, nil)
			if evaluator == nil {
				t.Skip("engine not compiled in")
			}
			p := NewProperty(map[string]any{
				"property":  "flex-wrap",
				"condition": `styles["display"] == "flex" && display != "none"`,
			}, WithEvaluator(evaluator))

			visible, err := p.Visible(Visibility{Styles: map[string]any{"display": "flex"}})
			if err != nil || !visible {
				t.Fatalf("expected visible, got %v err=%v", visible, err)
			}
			visible, err = p.Visible(Visibility{Styles: map[string]any{"display": "block"}})
			if err != nil || visible {
				t.Fatalf("expected hidden, got %v err=%v", visible, err)
			}
		})
	}
}

func TestVisibleConditionCallsRegistryFunctions(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("isFlex", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("isFlex expects one argument")
		}
		value, _ := args[0].(string)
		return strings.HasSuffix(value, "flex"), nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, factory := range evaluatorFactories {
		t.Run(factory.name, func(t *testing.T) {
			evaluator := factory.new(NewMemoryProgramCache(), registry)
			if evaluator == nil {
				t.Skip("engine not compiled in")
			}
			p := NewProperty(map[string]any{
				"property":  "gap",
				"condition": `call("isFlex", styles["display"])`,
			}, WithEvaluator(evaluator))

			visible, err := p.Visible(Visibility{Styles: map[string]any{"display": "inline-flex"}})
			if err != nil || !visible {
				t.Fatalf("expected visible, got %v err=%v", visible, err)
			}
		})
	}
}

func TestVisibleDefaultEvaluatorUsesPropertyOptions(t *testing.T) {
	cache := NewMemoryProgramCache()
	var events []EvaluatorLogEvent
	p := NewProperty(map[string]any{
		"property":  "gap",
		"condition": `isGrid(display) && value == nil`,
	},
		WithProgramCache(cache),
		WithCustomFunction("isGrid", func(args ...any) (any, error) {
			return args[0] == "grid", nil
		}),
		WithEvaluatorLogger(EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
			events = append(events, event)
		})),
	)

	for range 2 {
		visible, err := p.Visible(Visibility{Styles: map[string]any{"display": "grid"}})
		if err != nil || !visible {
			t.Fatalf("expected visible, got %v err=%v", visible, err)
		}
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one cached program, got %d", cache.Len())
	}
	if len(events) != 2 || events[0].Engine != "expr" || events[0].Property != "gap" {
		t.Fatalf("unexpected evaluator log events %+v", events)
	}
}

func TestVisibleConditionUsesNow(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	p := NewProperty(map[string]any{
		"property":  "animation",
		"condition": `hour(now) >= 12`,
	}, WithCustomFunction("hour", func(args ...any) (any, error) {
		at, ok := args[0].(time.Time)
		if !ok {
			return nil, errors.New("hour expects a time")
		}
		return at.Hour(), nil
	}))

	visible, err := p.Visible(Visibility{Now: &now})
	if err != nil || !visible {
		t.Fatalf("expected visible in the afternoon, got %v err=%v", visible, err)
	}
}

func TestVisibleConditionErrors(t *testing.T) {
	p := NewProperty(map[string]any{
		"property":  "width",
		"condition": `display ==`,
	})
	_, err := p.Visible(Visibility{})
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %v", err)
	}
	if evalErr.Engine != "expr" || evalErr.Property != "width" || evalErr.Expr != "display ==" {
		t.Fatalf("unexpected error metadata %+v", evalErr)
	}

	nonBool := NewProperty(map[string]any{"property": "width", "condition": `"yes"`})
	if _, err := nonBool.Visible(Visibility{}); err == nil || !strings.Contains(err.Error(), "want bool") {
		t.Fatalf("expected non boolean result error, got %v", err)
	}
}

func TestVisibleRequiresShortCircuitsCondition(t *testing.T) {
	called := false
	evaluator := stubEvaluator(func() { called = true })
	p := NewProperty(map[string]any{
		"property":  "order",
		"requires":  map[string]any{"display": "flex"},
		"condition": "true",
	}, WithEvaluator(evaluator))

	visible, err := p.Visible(Visibility{Styles: map[string]any{"display": "block"}})
	if err != nil || visible {
		t.Fatalf("expected hidden, got %v err=%v", visible, err)
	}
	if called {
		t.Fatalf("expected condition to be skipped when requires fails")
	}
	if got := evaluatorEngineName(evaluator); got != "custom" {
		t.Fatalf("expected custom engine name, got %q", got)
	}
}

type stubEvaluator func()

func (s stubEvaluator) Evaluate(RuleContext, string) (any, error) {
	s()
	return true, nil
}

func (s stubEvaluator) Compile(string) (CompiledRule, error) {
	return nil, errors.New("not supported")
}

func TestMemoryProgramCache(t *testing.T) {
	cache := NewMemoryProgramCache()
	if _, ok := cache.Get("missing"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	cache.Set("expr:a", 1)
	cache.Set("expr:a", 2)
	value, ok := cache.Get("expr:a")
	if !ok || value != 2 || cache.Len() != 1 {
		t.Fatalf("expected overwritten entry, got %v ok=%v len=%d", value, ok, cache.Len())
	}

	var zero MemoryProgramCache
	zero.Set("k", "v")
	if _, ok := zero.Get("k"); !ok {
		t.Fatalf("expected zero value cache to be usable")
	}
}
