package styleprops

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry exposes registry helpers through
// `call(name, args...)` with up to three arguments.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

const celMaxCallArgs = 3

var celReserved = map[string]struct{}{
	"as": {}, "break": {}, "const": {}, "continue": {}, "else": {}, "false": {},
	"for": {}, "function": {}, "if": {}, "import": {}, "in": {}, "let": {},
	"loop": {}, "namespace": {}, "null": {}, "package": {}, "return": {},
	"true": {}, "var": {}, "void": {}, "while": {},
}

var celFixedVariables = map[string]*celgo.Type{
	"styles":   celgo.DynType,
	"parent":   celgo.DynType,
	"property": celgo.StringType,
	"value":    celgo.DynType,
	"now":      celgo.TimestampType,
	"args":     celgo.DynType,
	"metadata": celgo.DynType,
}

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go. Expressions are
// type checked against the style keys present in the evaluated context.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) engine() string { return "cel" }

func (e *celEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	activation := e.activation(ctx)
	program, err := e.loadOrCompile(expression, styleVariables(activation))
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.label(), err)
	}
	out, _, err := program.Eval(activation)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.label(), err)
	}
	return out.Value(), nil
}

// Compile defers program construction to evaluation time because the
// declared variables depend on the evaluated styles.
func (e *celEvaluator) Compile(expression string) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	if _, err := e.loadOrCompile(expression, nil); err != nil && !strings.Contains(err.Error(), "undeclared reference") {
		return nil, wrapEvaluationError("cel", expression, "", err)
	}
	return &celCompiledRule{evaluator: e, expression: expression}, nil
}

func (e *celEvaluator) loadOrCompile(expression string, variables []string) (celgo.Program, error) {
	key := cacheKey("cel", expression+"|"+strings.Join(variables, ","))
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}

	env, err := e.buildEnv(variables)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return program, nil
}

func (e *celEvaluator) buildEnv(variables []string) (*celgo.Env, error) {
	opts := make([]celgo.EnvOption, 0, len(celFixedVariables)+len(variables)+1)
	for _, name := range slices.Sorted(maps.Keys(celFixedVariables)) {
		opts = append(opts, celgo.Variable(name, celFixedVariables[name]))
	}
	for _, name := range variables {
		opts = append(opts, celgo.Variable(name, celgo.DynType))
	}
	if e.registry != nil {
		opts = append(opts, celgo.Function("call", e.callOverloads()...))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) callOverloads() []celgo.FunctionOpt {
	overloads := make([]celgo.FunctionOpt, 0, celMaxCallArgs+1)
	for arity := 0; arity <= celMaxCallArgs; arity++ {
		argTypes := []*celgo.Type{celgo.StringType}
		for i := 0; i < arity; i++ {
			argTypes = append(argTypes, celgo.DynType)
		}
		overloads = append(overloads, celgo.Overload(
			fmt.Sprintf("call_string_dyn_%d", arity),
			argTypes,
			celgo.DynType,
			celgo.FunctionBinding(e.callBinding),
		))
	}
	return overloads
}

func (e *celEvaluator) callBinding(values ...ref.Val) ref.Val {
	if len(values) == 0 {
		return types.NewErr("styleprops: call requires function name")
	}
	name, ok := values[0].Value().(string)
	if !ok {
		return types.NewErr("styleprops: call name must be string")
	}
	args := make([]any, 0, len(values)-1)
	for _, val := range values[1:] {
		args = append(args, val.Value())
	}
	result, err := e.registry.Call(name, args...)
	if err != nil {
		return types.NewErr("%s", err.Error())
	}
	if result == nil {
		return types.NullValue
	}
	return types.DefaultTypeAdapter.NativeToValue(result)
}

func (e *celEvaluator) activation(ctx RuleContext) map[string]any {
	activation := ctx.bindings()
	if activation["value"] == nil {
		activation["value"] = types.NullValue
	}
	return activation
}

// styleVariables lists the lifted style keys CEL has to declare.
func styleVariables(activation map[string]any) []string {
	names := make([]string, 0, len(activation))
	for name := range activation {
		if _, fixed := celFixedVariables[name]; fixed {
			continue
		}
		if _, reserved := celReserved[name]; reserved {
			delete(activation, name)
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type celCompiledRule struct {
	evaluator  *celEvaluator
	expression string
}

func (r *celCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	if r.evaluator == nil {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("compiled rule missing evaluator"))
	}
	return r.evaluator.Evaluate(ctx, r.expression)
}
