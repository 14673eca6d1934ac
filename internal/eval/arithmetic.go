package eval

import (
	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/serr"
)

// requireNumbers resolves each arg to its int64 payload, failing with a
// RuntimeError naming the offending primitive if any arg is not a
// Number.
func requireNumbers(ev *Evaluator, name string, args []ast.ValueRef) ([]int64, *serr.SchemeError) {
	nums := make([]int64, len(args))
	for i, a := range args {
		if a == ast.Nil || ev.Arena.Get(a).Kind != ast.Number {
			return nil, serr.Runtimef("%s: argument %d is not a number", name, i+1)
		}
		nums[i] = ev.Arena.Get(a).Num
	}
	return nums, nil
}

// registerArithmetic wires +, -, *, /, max, min, abs.
func registerArithmetic(ev *Evaluator) {
	ev.regular["+"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		nums, err := requireNumbers(ev, "+", args)
		if err != nil {
			return ast.Nil, err
		}
		var sum int64
		for _, n := range nums {
			sum += n
		}
		return ev.Arena.NewNumber(sum), nil
	}

	ev.regular["*"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		nums, err := requireNumbers(ev, "*", args)
		if err != nil {
			return ast.Nil, err
		}
		product := int64(1)
		for _, n := range nums {
			product *= n
		}
		return ev.Arena.NewNumber(product), nil
	}

	ev.regular["-"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) < 1 {
			return ast.Nil, serr.Arity("-")
		}
		nums, err := requireNumbers(ev, "-", args)
		if err != nil {
			return ast.Nil, err
		}
		result := nums[0]
		for _, n := range nums[1:] {
			result -= n
		}
		return ev.Arena.NewNumber(result), nil
	}

	ev.regular["/"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) < 1 {
			return ast.Nil, serr.Arity("/")
		}
		nums, err := requireNumbers(ev, "/", args)
		if err != nil {
			return ast.Nil, err
		}
		result := nums[0]
		for _, n := range nums[1:] {
			if n == 0 {
				return ast.Nil, serr.Runtimef("division by zero")
			}
			result /= n // Go's integer division truncates toward zero
		}
		return ev.Arena.NewNumber(result), nil
	}

	ev.regular["max"] = foldRequireOne("max", func(a, b int64) int64 {
		if a > b {
			return a
		}
		return b
	})
	ev.regular["min"] = foldRequireOne("min", func(a, b int64) int64 {
		if a < b {
			return a
		}
		return b
	})

	ev.regular["abs"] = func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) != 1 {
			return ast.Nil, serr.Arity("abs")
		}
		nums, err := requireNumbers(ev, "abs", args)
		if err != nil {
			return ast.Nil, err
		}
		n := nums[0]
		if n < 0 {
			n = -n
		}
		return ev.Arena.NewNumber(n), nil
	}

	registerNumericSupplements(ev)
}

// foldRequireOne builds a variadic numeric fold (max/min) that requires
// at least one argument.
func foldRequireOne(name string, op func(a, b int64) int64) regularFunc {
	return func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
		if len(args) < 1 {
			return ast.Nil, serr.Arity(name)
		}
		nums, err := requireNumbers(ev, name, args)
		if err != nil {
			return ast.Nil, err
		}
		result := nums[0]
		for _, n := range nums[1:] {
			result = op(result, n)
		}
		return ev.Arena.NewNumber(result), nil
	}
}

// registerNumericSupplements wires the one-argument numeric predicates
// that naturally round out number? and the comparison operators.
func registerNumericSupplements(ev *Evaluator) {
	unary := func(name string, test func(int64) bool) regularFunc {
		return func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
			if len(args) != 1 {
				return ast.Nil, serr.Arity(name)
			}
			nums, err := requireNumbers(ev, name, args)
			if err != nil {
				return ast.Nil, err
			}
			return ev.Arena.NewBool(test(nums[0])), nil
		}
	}
	ev.regular["zero?"] = unary("zero?", func(n int64) bool { return n == 0 })
	ev.regular["positive?"] = unary("positive?", func(n int64) bool { return n > 0 })
	ev.regular["negative?"] = unary("negative?", func(n int64) bool { return n < 0 })
	ev.regular["even?"] = unary("even?", func(n int64) bool { return n%2 == 0 })
	ev.regular["odd?"] = unary("odd?", func(n int64) bool { return n%2 != 0 })
}
