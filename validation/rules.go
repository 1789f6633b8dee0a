package validation

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Rule is a declarative constraint written as a CEL expression over the
// schema's field names, e.g. "p >= 0.0 && p <= 1.0". The expression must
// evaluate to a bool.
type Rule struct {
	Field   string
	Expr    string
	Message string
}

type compiledRule struct {
	Rule
	prg cel.Program
}

func compileRules(fields []string, rules []Rule) ([]compiledRule, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	opts := []cel.EnvOption{cel.CrossTypeNumericComparisons(true)}
	for _, f := range fields {
		opts = append(opts, cel.Variable(f, cel.DynType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("validation: rule env: %w", err)
	}
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		ast, iss := env.Compile(r.Expr)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("validation: rule %q: %w", r.Expr, iss.Err())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("validation: rule %q: %w", r.Expr, err)
		}
		out = append(out, compiledRule{Rule: r, prg: prg})
	}
	return out, nil
}

func (r compiledRule) check(vals map[string]any) error {
	out, _, err := r.prg.Eval(vals)
	if err != nil {
		return fmt.Errorf("rule %q: %w", r.Expr, err)
	}
	ok, isBool := out.Value().(bool)
	if !isBool {
		return fmt.Errorf("rule %q: want bool result, got %T", r.Expr, out.Value())
	}
	if ok {
		return nil
	}
	if r.Message != "" {
		return errors.New(r.Message)
	}
	return fmt.Errorf("rule %q not satisfied", r.Expr)
}
