package eval

import (
	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/serr"
)

// registerBooleanOps wires not (a regular primitive: its single
// argument is always evaluated) and and/or (forms: registered into
// ev.forms rather than ev.regular so they receive their operands
// unevaluated and can short-circuit, evaluating left-to-right and
// stopping at the first false/true operand).
func registerBooleanOps(ev *Evaluator) {
	ev.regular["not"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) != 1 {
			return ast.Nil, serr.Arity("not")
		}
		return ev.Arena.NewBool(!ev.Arena.IsTruthy(args[0])), nil
	}

	ev.forms["and"] = func(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
		var result ast.ValueRef = ev.Arena.NewBool(true)
		for _, o := range operands {
			v, err := ev.Eval(o, envRef)
			if err != nil {
				return ast.Nil, err
			}
			if !ev.Arena.IsTruthy(v) {
				return v, nil
			}
			result = v
		}
		return result, nil
	}

	ev.forms["or"] = func(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
		for _, o := range operands {
			v, err := ev.Eval(o, envRef)
			if err != nil {
				return ast.Nil, err
			}
			if ev.Arena.IsTruthy(v) {
				return v, nil
			}
		}
		return ev.Arena.NewBool(false), nil
	}
}
