// Package eval implements the evaluator: AST dispatch, the primitive
// registry, special-form semantics, and lambda capture/application. The
// primitive and special-form tables are built once at construction and
// never mutated afterward.
package eval

import (
	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/env"
	"github.com/Yorky1/scheme/internal/serr"
)

// regularFunc implements a primitive whose operands are always
// evaluated, left-to-right, in the caller's environment before the
// function runs.
type regularFunc func(ev *Evaluator, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError)

// formFunc implements a special form or a short-circuiting primitive
// (and/or): it receives its operands unevaluated and the calling
// environment, and decides for itself what to evaluate and when.
type formFunc func(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError)

// Evaluator walks the AST against one interpreter's Arena and
// Environment arena. The registries below are built once by New and
// never mutated afterward.
type Evaluator struct {
	Arena *ast.Arena
	Envs  *env.Arena

	regular map[string]regularFunc
	forms   map[string]formFunc
}

// New builds an Evaluator with every primitive and special form
// registered, ready to evaluate requests against arena/envs.
func New(arena *ast.Arena, envs *env.Arena) *Evaluator {
	ev := &Evaluator{
		Arena:   arena,
		Envs:    envs,
		regular: make(map[string]regularFunc),
		forms:   make(map[string]formFunc),
	}
	registerPredicates(ev)
	registerArithmetic(ev)
	registerComparisons(ev)
	registerPairOps(ev)
	registerBooleanOps(ev)
	registerSpecialForms(ev)
	return ev
}

// IsPrimitiveName reports whether s names a registered primitive or
// special form, used by Eval's Symbol-dispatch case: bare symbol
// evaluation resolves against this table before it ever consults the
// environment, so a primitive name can never be shadowed by a variable
// of the same name.
func (ev *Evaluator) IsPrimitiveName(s string) bool {
	if _, ok := ev.regular[s]; ok {
		return true
	}
	_, ok := ev.forms[s]
	return ok
}

// Eval dispatches on the value's kind: self-evaluating values return
// themselves, symbols resolve through evalSymbol, and pairs are treated
// as applications. The result is Nil when the value is the empty list
// and for forms that produce no value (define, one-armed if with a
// false test, set!, set-car!, set-cdr!).
func (ev *Evaluator) Eval(ref ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	if ref == ast.Nil {
		return ast.Nil, serr.Runtimef("cannot evaluate the empty application ()")
	}
	v := ev.Arena.Get(ref)
	switch v.Kind {
	case ast.Number, ast.Bool, ast.Lambda, ast.Primitive:
		return ref, nil
	case ast.Symbol:
		return ev.evalSymbol(v.Sym, envRef)
	case ast.Pair:
		return ev.evalApplication(ref, envRef)
	default:
		return ast.Nil, serr.Runtimef("cannot evaluate value of kind %s", v.Kind)
	}
}

// evalSymbol resolves a bare symbol: the two boolean literals, then
// primitive names, then environment lookup.
func (ev *Evaluator) evalSymbol(s string, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	switch s {
	case "#t":
		return ev.Arena.NewBool(true), nil
	case "#f":
		return ev.Arena.NewBool(false), nil
	}
	if ev.IsPrimitiveName(s) {
		return ev.Arena.NewPrimitive(s), nil
	}
	return ev.Envs.Lookup(envRef, s)
}

// evalApplication evaluates a Pair as an application: the operator is
// evaluated first, and the operator then decides (per its kind) how the
// rest of the pair is interpreted.
func (ev *Evaluator) evalApplication(ref ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	pair := ev.Arena.Get(ref)
	opRef, err := ev.Eval(pair.Car, envRef)
	if err != nil {
		return ast.Nil, err
	}
	operands, ok := ev.Arena.ListToSlice(pair.Cdr)
	if !ok {
		return ast.Nil, serr.Runtimef("malformed application: improper operand list")
	}

	opVal := ev.Arena.Get(opRef)
	switch opVal.Kind {
	case ast.Primitive:
		name := opVal.Sym
		if form, ok := ev.forms[name]; ok {
			return form(ev, operands, envRef)
		}
		fn, ok := ev.regular[name]
		if !ok {
			return ast.Nil, serr.Runtimef("%s is not applicable", name)
		}
		args, err := ev.evalAll(operands, envRef)
		if err != nil {
			return ast.Nil, err
		}
		return fn(ev, args)
	case ast.Lambda:
		args, err := ev.evalAll(operands, envRef)
		if err != nil {
			return ast.Nil, err
		}
		return ev.applyLambda(opVal.Lam, args)
	default:
		return ast.Nil, serr.Runtimef("%s is not applicable", ev.Arena.Print(opRef))
	}
}

// evalAll evaluates each operand left-to-right in env, the discipline
// regular primitives and lambda application both use.
func (ev *Evaluator) evalAll(operands []ast.ValueRef, envRef ast.EnvRef) ([]ast.ValueRef, *serr.SchemeError) {
	args := make([]ast.ValueRef, len(operands))
	for i, o := range operands {
		v, err := ev.Eval(o, envRef)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// applyLambda creates a child frame of the lambda's captured
// environment, binds arguments positionally (arity must match exactly),
// evaluates the body forms in order, and returns the last one's value.
func (ev *Evaluator) applyLambda(lam *ast.Lambda, args []ast.ValueRef) (ast.ValueRef, *serr.SchemeError) {
	if len(args) != len(lam.Params) {
		return ast.Nil, serr.Runtimef("lambda expects %d argument(s), got %d", len(lam.Params), len(args))
	}
	frame := ev.Envs.ChildOf(lam.CapturedEnv)
	for i, name := range lam.Params {
		ev.Envs.Define(frame, name, args[i])
	}
	var result ast.ValueRef = ast.Nil
	for _, form := range lam.Body {
		v, err := ev.Eval(form, frame)
		if err != nil {
			return ast.Nil, err
		}
		result = v
	}
	return result, nil
}
