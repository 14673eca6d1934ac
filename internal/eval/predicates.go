package eval

import (
	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/serr"
)

// registerPredicates wires the type predicates: number?, boolean?,
// symbol?, pair?, null?, list?. Each evaluates its single argument and
// returns a Bool.
func registerPredicates(ev *Evaluator) {
	ev.regular["number?"] = kindPredicate(ast.Number)
	ev.regular["boolean?"] = kindPredicate(ast.Bool)
	ev.regular["symbol?"] = kindPredicate(ast.Symbol)
	ev.regular["pair?"] = kindPredicate(ast.Pair)
	ev.regular["null?"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) != 1 {
			return ast.Nil, serr.Arity("null?")
		}
		return ev.Arena.NewBool(args[0] == ast.Nil), nil
	}
	ev.regular["list?"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) != 1 {
			return ast.Nil, serr.Arity("list?")
		}
		return ev.Arena.NewBool(ev.Arena.IsProperList(args[0])), nil
	}
}

// kindPredicate builds a unary type predicate for the given Kind. null?
// and list? need their own logic (Nil has no Kind to compare against,
// and list? must walk the whole chain) so they are defined separately
// above.
func kindPredicate(k ast.Kind) regularFunc {
	name := k.String() + "?"
	return func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) != 1 {
			return ast.Nil, serr.Arity(name)
		}
		if args[0] == ast.Nil {
			return ev.Arena.NewBool(false), nil
		}
		return ev.Arena.NewBool(ev.Arena.Get(args[0]).Kind == k), nil
	}
}
