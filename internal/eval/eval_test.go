package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/env"
	"github.com/Yorky1/scheme/internal/reader"
)

// newTestEvaluator builds a fresh Evaluator plus its global environment
// handle, mirroring what the root Interpreter wires up.
func newTestEvaluator(t *testing.T) (*Evaluator, ast.EnvRef) {
	t.Helper()
	arena := ast.NewArena(64)
	envs := env.NewArena()
	return New(arena, envs), env.Root
}

// run reads and evaluates a single request against a fresh interpreter,
// returning its printed form.
func run(t *testing.T, request string) string {
	t.Helper()
	ev, global := newTestEvaluator(t)
	ref, err := reader.Read(request, ev.Arena)
	require.Nil(t, err, "read error for %q: %v", request, err)
	result, err := ev.Eval(ref, global)
	require.Nil(t, err, "eval error for %q: %v", request, err)
	return ev.Arena.Print(result)
}

func verifyEval(t *testing.T, mapping map[string]string) {
	t.Helper()
	for input, want := range mapping {
		got := run(t, input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestEvalSelfEvaluating(t *testing.T) {
	verifyEval(t, map[string]string{
		"42":  "42",
		"#t":  "#t",
		"#f":  "#f",
		"-17": "-17",
	})
}

func TestEvalArithmetic(t *testing.T) {
	verifyEval(t, map[string]string{
		"(+)":        "0",
		"(+ 5)":      "5",
		"(+ 1 2 3)":  "6",
		"(*)":        "1",
		"(* 2 3 4)":  "24",
		"(- 10 3 2)": "5",
		"(/ 7 2)":    "3",
		"(/ -7 2)":   "-3",
		"(max 1 9 3)": "9",
		"(min 1 9 3)": "1",
		"(abs -5)":   "5",
		"(abs 5)":    "5",
	})
}

func TestEvalArityErrors(t *testing.T) {
	for _, input := range []string{"(-)", "(/)"} {
		ev, global := newTestEvaluator(t)
		ref, err := reader.Read(input, ev.Arena)
		require.Nil(t, err)
		_, evalErr := ev.Eval(ref, global)
		require.NotNil(t, evalErr, "input %q should fail", input)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	ev, global := newTestEvaluator(t)
	ref, err := reader.Read("(/ 5 0)", ev.Arena)
	require.Nil(t, err)
	_, evalErr := ev.Eval(ref, global)
	require.NotNil(t, evalErr)
	assert.Contains(t, evalErr.Error(), "division by zero")
}

func TestEvalComparisons(t *testing.T) {
	verifyEval(t, map[string]string{
		"(= 1 1 1)":  "#t",
		"(= 1 2)":    "#f",
		"(< 1 2 3)":  "#t",
		"(< 1 3 2)":  "#f",
		"(> 3 2 1)":  "#t",
		"(<= 1 1 2)": "#t",
		"(>= 2 2 1)": "#t",
		"(=)":        "#t",
		"(< 1)":      "#t",
	})
}

func TestEvalPredicates(t *testing.T) {
	verifyEval(t, map[string]string{
		"(number? 1)":       "#t",
		"(number? 'a)":      "#f",
		"(symbol? 'a)":      "#t",
		"(boolean? #t)":     "#t",
		"(pair? (cons 1 2))": "#t",
		"(pair? '())":       "#f",
		"(null? '())":       "#t",
		"(null? 1)":         "#f",
		"(list? '(1 2 3))":  "#t",
		"(list? '(1 . 2))":  "#f",
		"(list? '())":       "#t",
	})
}

func TestEvalNumericSupplements(t *testing.T) {
	verifyEval(t, map[string]string{
		"(zero? 0)":     "#t",
		"(zero? 1)":     "#f",
		"(positive? 1)": "#t",
		"(negative? -1)": "#t",
		"(even? 4)":     "#t",
		"(odd? 4)":      "#f",
	})
}

func TestEvalPairOps(t *testing.T) {
	verifyEval(t, map[string]string{
		"(car (cons 1 2))":       "1",
		"(cdr (cons 1 2))":       "2",
		"(list 1 2 3)":           "(1 2 3)",
		"(list-ref '(1 2 3) 0)":  "1",
		"(list-ref '(1 2 3) 2)":  "3",
		"(list-tail '(1 2 3) 3)": "()",
		"(list-tail '(1 2 3) 0)": "(1 2 3)",
	})
}

func TestEvalBooleanOps(t *testing.T) {
	verifyEval(t, map[string]string{
		"(not #f)":      "#t",
		"(not #t)":      "#f",
		"(not 0)":       "#f",
		"(and)":         "#t",
		"(and 1 2 3)":   "3",
		"(and 1 #f 3)":  "#f",
		"(or)":          "#f",
		"(or #f #f 3)":  "3",
		"(or #f #f #f)": "#f",
	})
}

func TestEvalAndOrShortCircuit(t *testing.T) {
	// (or 1 (car '())) must not evaluate the second operand, since the
	// first is already truthy; (car '()) would otherwise fail.
	verifyEval(t, map[string]string{
		"(or 1 (car '()))":   "1",
		"(and #f (car '()))": "#f",
	})
}

func TestEvalIf(t *testing.T) {
	verifyEval(t, map[string]string{
		"(if #t 1 2)": "1",
		"(if #f 1 2)": "2",
		"(if #f 1)":   "()",
		"(if 0 1 2)":  "1",
	})
}

func TestEvalQuote(t *testing.T) {
	verifyEval(t, map[string]string{
		"(quote (1 2 3))": "(1 2 3)",
		"'(1 2 3)":        "(1 2 3)",
		"'a":              "a",
	})
}

func TestEvalLambdaAndDefine(t *testing.T) {
	ev, global := newTestEvaluator(t)
	mustRun := func(input string) string {
		ref, err := reader.Read(input, ev.Arena)
		require.Nil(t, err, "read error for %q", input)
		result, evalErr := ev.Eval(ref, global)
		require.Nil(t, evalErr, "eval error for %q: %v", input, evalErr)
		return ev.Arena.Print(result)
	}

	mustRun("(define x 10)")
	assert.Equal(t, "10", mustRun("x"))

	mustRun("(define (square n) (* n n))")
	assert.Equal(t, "81", mustRun("(square 9)"))

	assert.Equal(t, "3", mustRun("((lambda (a b) (+ a b)) 1 2)"))
}

// TestClosureCapturesEnvironmentNotValue checks that a lambda reads a
// free variable at call time through its captured environment, rather
// than snapshotting the value at definition time.
func TestClosureCapturesEnvironmentNotValue(t *testing.T) {
	ev, global := newTestEvaluator(t)
	mustRun := func(input string) string {
		ref, err := reader.Read(input, ev.Arena)
		require.Nil(t, err)
		result, evalErr := ev.Eval(ref, global)
		require.Nil(t, evalErr, "eval error for %q: %v", input, evalErr)
		return ev.Arena.Print(result)
	}

	mustRun("(define counter 1)")
	mustRun("(define (get-counter) counter)")
	assert.Equal(t, "1", mustRun("(get-counter)"))
	mustRun("(set! counter 99)")
	assert.Equal(t, "99", mustRun("(get-counter)"))
}

func TestFactorialViaDefine(t *testing.T) {
	ev, global := newTestEvaluator(t)
	mustRun := func(input string) string {
		ref, err := reader.Read(input, ev.Arena)
		require.Nil(t, err)
		result, evalErr := ev.Eval(ref, global)
		require.Nil(t, evalErr, "eval error for %q: %v", input, evalErr)
		return ev.Arena.Print(result)
	}

	mustRun(`(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))`)
	assert.Equal(t, "120", mustRun("(fact 5)"))
}

func TestSetCarSetCdrMutateInPlace(t *testing.T) {
	ev, global := newTestEvaluator(t)
	mustRun := func(input string) string {
		ref, err := reader.Read(input, ev.Arena)
		require.Nil(t, err)
		result, evalErr := ev.Eval(ref, global)
		require.Nil(t, evalErr, "eval error for %q: %v", input, evalErr)
		return ev.Arena.Print(result)
	}

	mustRun("(define p (cons 1 2))")
	mustRun("(define q p)")
	mustRun("(set-car! p 99)")
	// q is an alias of the same pair, so it must observe the mutation:
	// set-car! must not rebind p to a freshly constructed pair.
	assert.Equal(t, "(99 . 2)", mustRun("q"))

	mustRun("(set-cdr! p 100)")
	assert.Equal(t, "(99 . 100)", mustRun("q"))
}

func TestBeginCondLet(t *testing.T) {
	verifyEval(t, map[string]string{
		"(begin)":                     "()",
		"(begin 1 2 3)":               "3",
		"(cond (#f 1) (#t 2) (else 3))": "2",
		"(cond (#f 1) (else 3))":        "3",
		"(cond (#f 1))":                 "()",
		"(let ((a 1) (b 2)) (+ a b))":   "3",
	})
}

func TestUnboundVariable(t *testing.T) {
	ev, global := newTestEvaluator(t)
	ref, err := reader.Read("nosuchvar", ev.Arena)
	require.Nil(t, err)
	_, evalErr := ev.Eval(ref, global)
	require.NotNil(t, evalErr)
	assert.Contains(t, evalErr.Error(), "unbound variable")
}

func TestApplyingNonProcedure(t *testing.T) {
	ev, global := newTestEvaluator(t)
	ref, err := reader.Read("(1 2 3)", ev.Arena)
	require.Nil(t, err)
	_, evalErr := ev.Eval(ref, global)
	require.NotNil(t, evalErr)
}
