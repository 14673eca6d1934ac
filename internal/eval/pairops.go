package eval

import (
	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/serr"
)

// registerPairOps wires cons, car, cdr, list, list-ref, list-tail. Note
// that set-car!/set-cdr! live in special_forms.go as forms: they
// evaluate their own operands and mutate the pair the first operand
// evaluates to.
func registerPairOps(ev *Evaluator) {
	ev.regular["cons"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) != 2 {
			return ast.Nil, serr.Arity("cons")
		}
		return ev.Arena.NewPair(args[0], args[1]), nil
	}

	ev.regular["car"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		p, err := requirePair(ev, "car", args)
		if err != nil {
			return ast.Nil, err
		}
		return p.Car, nil
	}

	ev.regular["cdr"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		p, err := requirePair(ev, "cdr", args)
		if err != nil {
			return ast.Nil, err
		}
		return p.Cdr, nil
	}

	ev.regular["list"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		return ev.Arena.NewList(args...), nil
	}

	ev.regular["list-ref"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) != 2 {
			return ast.Nil, serr.Arity("list-ref")
		}
		idxNums, err := requireNumbers(ev, "list-ref", args[1:])
		if err != nil {
			return ast.Nil, err
		}
		cur := args[0]
		for i := int64(0); i < idxNums[0]; i++ {
			if cur == ast.Nil || ev.Arena.Get(cur).Kind != ast.Pair {
				return ast.Nil, serr.Runtimef("list-ref: index out of range")
			}
			cur = ev.Arena.Get(cur).Cdr
		}
		if cur == ast.Nil || ev.Arena.Get(cur).Kind != ast.Pair {
			return ast.Nil, serr.Runtimef("list-ref: index out of range")
		}
		return ev.Arena.Get(cur).Car, nil
	}

	ev.regular["list-tail"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) != 2 {
			return ast.Nil, serr.Arity("list-tail")
		}
		idxNums, err := requireNumbers(ev, "list-tail", args[1:])
		if err != nil {
			return ast.Nil, err
		}
		cur := args[0]
		for i := int64(0); i < idxNums[0]; i++ {
			if cur == ast.Nil || ev.Arena.Get(cur).Kind != ast.Pair {
				return ast.Nil, serr.Runtimef("list-tail: index out of range")
			}
			cur = ev.Arena.Get(cur).Cdr
		}
		return cur, nil
	}
}

// requirePair resolves the single argument of a unary pair accessor,
// failing with a RuntimeError if it is not a Pair.
func requirePair(ev *Evaluator, name string, args []ast.ValueRef) (*ast.Value, *serr.SchemeError) {
	if len(args) != 1 {
		return nil, serr.Arity(name)
	}
	if args[0] == ast.Nil || ev.Arena.Get(args[0]).Kind != ast.Pair {
		return nil, serr.Runtimef("%s: argument is not a pair", name)
	}
	return ev.Arena.Get(args[0]), nil
}
