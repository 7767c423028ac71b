package styleprops

import (
	"fmt"
	"time"
)

// Visibility carries the styles a property is shown against.
type Visibility struct {
	// Styles of the selected target.
	Styles map[string]any
	// Parent holds the styles of the target's parent, checked by `requiresParent`.
	Parent   map[string]any
	Args     map[string]any
	Metadata map[string]any
	Now      *time.Time
}

// Visible reports whether the property applies to the given styles. Every
// `requires` entry must list the current style value, every `requiresParent`
// entry the parent's, and `condition`, when set, must evaluate to true.
func (p *Property) Visible(v Visibility) (bool, error) {
	if !requirementsMet(p.Get(AttrRequires), v.Styles) {
		return false, nil
	}
	if !requirementsMet(p.Get(AttrRequiresParent), v.Parent) {
		return false, nil
	}
	condition := p.stringAttr(AttrCondition)
	if condition == "" {
		return true, nil
	}
	result, err := p.evaluateCondition(RuleContext{
		Styles:   v.Styles,
		Parent:   v.Parent,
		Property: p.ID(),
		Value:    p.Value(),
		Now:      v.Now,
		Args:     v.Args,
		Metadata: v.Metadata,
	}, condition)
	if err != nil {
		return false, err
	}
	visible, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("styleprops: condition %q of property %q returned %T, want bool", condition, p.ID(), result)
	}
	return visible, nil
}

func (p *Property) evaluateCondition(ctx RuleContext, expr string) (any, error) {
	evaluator, err := p.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	evalErr = wrapEvaluationError(evaluatorEngineName(evaluator), expr, ctx.label(), evalErr)
	p.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   evaluatorEngineName(evaluator),
		Expr:     expr,
		Property: ctx.label(),
		Duration: time.Since(start),
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

// resolveEvaluator returns the configured evaluator or lazily builds the
// default expr engine with the property's cache and helpers.
func (p *Property) resolveEvaluator() (Evaluator, error) {
	if p.cfg.evaluator != nil {
		return p.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if p.cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(p.cfg.programCache))
	}
	if p.cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(p.cfg.functions))
	}
	evaluator := NewExprEvaluator(exprOpts...)
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	p.cfg.evaluator = evaluator
	return evaluator, nil
}

type namedEvaluator interface {
	engine() string
}

func evaluatorEngineName(e Evaluator) string {
	if named, ok := e.(namedEvaluator); ok {
		return named.engine()
	}
	return "custom"
}

func requirementsMet(requirements any, styles map[string]any) bool {
	for key, allowed := range requirementSet(requirements) {
		current, ok := styles[key]
		if !ok || !containsIdentity(allowed, current) {
			return false
		}
	}
	return true
}

// requirementSet normalises the accepted shapes of `requires`:
// map[string][]any, map[string][]string, map[string]any with list or scalar
// values.
func requirementSet(value any) map[string][]any {
	switch typed := value.(type) {
	case nil:
		return nil
	case map[string][]any:
		return typed
	case map[string][]string:
		out := make(map[string][]any, len(typed))
		for key, values := range typed {
			list := make([]any, len(values))
			for i, v := range values {
				list[i] = v
			}
			out[key] = list
		}
		return out
	case map[string]any:
		out := make(map[string][]any, len(typed))
		for key, values := range typed {
			out[key] = toAnySlice(values)
		}
		return out
	default:
		return nil
	}
}

func toAnySlice(value any) []any {
	switch typed := value.(type) {
	case nil:
		return nil
	case []any:
		return typed
	case []string:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = v
		}
		return out
	default:
		return []any{typed}
	}
}

func containsIdentity(values []any, target any) bool {
	for _, value := range values {
		if identityEqual(value, target) {
			return true
		}
	}
	return false
}
