package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// Registry manages the CEL environment and provides helper methods for evaluation.
type Registry struct {
	env   *cel.Env
	rules *HouseRules
}

// NewRegistry initializes the CEL environment with table-specific variables and functions.
// rollFunc resolves dice notation to a total so house rules can roll.
func NewRegistry(rollFunc func(string) int) (*Registry, error) {
	env, err := cel.NewEnv(
		// Variable declarations
		cel.Variable("actor", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("target", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("persona", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("node", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("action", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("globals", cel.MapType(cel.StringType, cel.AnyType)),

		// Custom table functions
		cel.Function("roll",
			cel.Overload("roll_string",
				[]*cel.Type{cel.StringType},
				cel.IntType,
				cel.UnaryBinding(func(arg ref.Val) ref.Val {
					s := arg.Value().(string)
					return types.Int(rollFunc(s))
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env}, nil
}

// SetHouseRules installs the table's house rules for Check.
func (r *Registry) SetHouseRules(hr *HouseRules) {
	r.rules = hr
}

// Eval executes a CEL expression against the provided context.
func (r *Registry) Eval(expression string, context map[string]any) (any, error) {
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	out, _, err := prog.Eval(context)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

// Check evaluates the house-rule prerequisite registered for the given
// action, if any. A formula that evaluates to false fails with the
// rule's configured message; a missing rule passes.
func (r *Registry) Check(action string, context map[string]any) error {
	if r.rules == nil {
		return nil
	}
	prereq, ok := r.rules.Prereqs[action]
	if !ok || prereq.Formula == "" {
		return nil
	}

	out, err := r.Eval(prereq.Formula, context)
	if err != nil {
		return fmt.Errorf("house rule for %s failed to evaluate: %w", action, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return fmt.Errorf("house rule for %s must yield a boolean, got %T", action, out)
	}
	if !ok {
		msg := prereq.Error
		if msg == "" {
			msg = fmt.Sprintf("action %s is not allowed at this table", action)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}
