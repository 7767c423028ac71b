package styleprops

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoEvaluator reports that no evaluator could be resolved.
var ErrNoEvaluator = errors.New("styleprops: evaluator not configured")

// EvaluationError carries evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine   string
	Expr     string
	Property string
	Err      error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	expr := "expr=<empty>"
	if e.Expr != "" {
		expr = fmt.Sprintf("expr=%q", e.Expr)
	}
	return fmt.Sprintf("styleprops: %s evaluator %s property=%s: %v", e.Engine, expr, e.Property, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) || strings.HasPrefix(err.Error(), "styleprops:") {
		return err
	}
	return fmt.Errorf("styleprops: %s evaluator: %w", engine, err)
}

// wrapEvaluationError attaches metadata, filling blanks on an existing
// EvaluationError instead of nesting a second one.
func wrapEvaluationError(engine, expr, property string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Property == "" {
			evalErr.Property = property
		}
		return err
	}
	return &EvaluationError{Engine: engine, Expr: expr, Property: property, Err: err}
}
