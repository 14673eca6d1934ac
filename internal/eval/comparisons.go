package eval

import (
	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/serr"
)

// registerComparisons wires =, <, >, <=, >=. Fewer than two arguments
// trivially satisfies any of these (nothing to compare), so each
// returns #t rather than raising an arity error.
func registerComparisons(ev *Evaluator) {
	ev.regular["="] = comparison("=", func(a, b int64) bool { return a == b })
	ev.regular["<"] = comparison("<", func(a, b int64) bool { return a < b })
	ev.regular[">"] = comparison(">", func(a, b int64) bool { return a > b })
	ev.regular["<="] = comparison("<=", func(a, b int64) bool { return a <= b })
	ev.regular[">="] = comparison(">=", func(a, b int64) bool { return a >= b })
}

// comparison builds a chained numeric comparison: true iff every
// adjacent pair of arguments satisfies ok, left to right.
func comparison(name string, ok func(a, b int64) bool) regularFunc {
	return func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		nums, err := requireNumbers(ev, name, args)
		if err != nil {
			return ast.Nil, err
		}
		for i := 1; i < len(nums); i++ {
			if !ok(nums[i-1], nums[i]) {
				return ev.Arena.NewBool(false), nil
			}
		}
		return ev.Arena.NewBool(true), nil
	}
}
