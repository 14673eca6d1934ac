package eval

import (
	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/serr"
)

// registerSpecialForms wires quote, if, lambda, define, set!, set-car!,
// set-cdr!, plus the begin/cond/let supplements. All are registered into
// ev.forms: each receives its operand list unevaluated and decides for
// itself, per form, what (if anything) to evaluate.
func registerSpecialForms(ev *Evaluator) {
	ev.forms["quote"] = formQuote
	ev.forms["if"] = formIf
	ev.forms["lambda"] = formLambda
	ev.forms["define"] = formDefine
	ev.forms["set!"] = formSetBang
	ev.forms["set-car!"] = formSetCar
	ev.forms["set-cdr!"] = formSetCdr
	ev.forms["begin"] = formBegin
	ev.forms["cond"] = formCond
	ev.forms["let"] = formLet
}

// evalBody evaluates a sequence of body forms in order, returning the
// last value (Nil for an empty sequence). Shared by begin, cond clause
// bodies, and let; applyLambda runs lambda bodies with its own loop.
func evalBody(ev *Evaluator, forms []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	var result ast.ValueRef = ast.Nil
	for _, f := range forms {
		v, err := ev.Eval(f, envRef)
		if err != nil {
			return ast.Nil, err
		}
		result = v
	}
	return result, nil
}

// formQuote returns its single operand exactly as read, unevaluated:
// homoiconicity means the AST node already is the value.
func formQuote(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	if len(operands) != 1 {
		return ast.Nil, serr.SyntaxArity("quote")
	}
	return operands[0], nil
}

// formIf evaluates the test and then exactly one branch. A missing
// alternative with a false test yields Nil, the "no value" result.
func formIf(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	if len(operands) != 2 && len(operands) != 3 {
		return ast.Nil, serr.SyntaxArity("if")
	}
	test, err := ev.Eval(operands[0], envRef)
	if err != nil {
		return ast.Nil, err
	}
	if ev.Arena.IsTruthy(test) {
		return ev.Eval(operands[1], envRef)
	}
	if len(operands) == 3 {
		return ev.Eval(operands[2], envRef)
	}
	return ast.Nil, nil
}

// formLambda builds a closure over the defining environment envRef, the
// standard lexical-scoping rule: free variables resolve against the
// environment in effect where the lambda was written, not where it is
// later called.
func formLambda(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	if len(operands) < 2 {
		return ast.Nil, serr.SyntaxArity("lambda")
	}
	params, ok := ev.Arena.ListToSlice(operands[0])
	if !ok {
		return ast.Nil, serr.Syntaxf("lambda: parameter list must be a proper list")
	}
	names := make([]string, len(params))
	for i, p := range params {
		if p == ast.Nil || ev.Arena.Get(p).Kind != ast.Symbol {
			return ast.Nil, serr.Syntaxf("lambda: parameters must be symbols")
		}
		names[i] = ev.Arena.Get(p).Sym
	}
	body := append([]ast.ValueRef(nil), operands[1:]...)
	return ev.Arena.NewLambda(names, body, envRef), nil
}

// formDefine handles both (define name value) and the function-shorthand
// (define (name args...) body...), which desugars to binding name to a
// lambda closing over the environment the define itself runs in. That
// captured environment is never replaced afterward, so a closure formed
// this way keeps seeing later updates to its free variables through the
// normal environment chain.
func formDefine(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	if len(operands) < 1 {
		return ast.Nil, serr.SyntaxArity("define")
	}
	head := operands[0]
	if head != ast.Nil && ev.Arena.Get(head).Kind == ast.Pair {
		sig := ev.Arena.Get(head)
		if sig.Car == ast.Nil || ev.Arena.Get(sig.Car).Kind != ast.Symbol {
			return ast.Nil, serr.Syntaxf("define: function name must be a symbol")
		}
		name := ev.Arena.Get(sig.Car).Sym
		params, ok := ev.Arena.ListToSlice(sig.Cdr)
		if !ok {
			return ast.Nil, serr.Syntaxf("define: parameter list must be a proper list")
		}
		names := make([]string, len(params))
		for i, p := range params {
			if p == ast.Nil || ev.Arena.Get(p).Kind != ast.Symbol {
				return ast.Nil, serr.Syntaxf("define: parameters must be symbols")
			}
			names[i] = ev.Arena.Get(p).Sym
		}
		if len(operands) < 2 {
			return ast.Nil, serr.SyntaxArity("define")
		}
		body := append([]ast.ValueRef(nil), operands[1:]...)
		lam := ev.Arena.NewLambda(names, body, envRef)
		ev.Envs.Define(envRef, name, lam)
		return ast.Nil, nil
	}

	if head == ast.Nil || ev.Arena.Get(head).Kind != ast.Symbol {
		return ast.Nil, serr.Syntaxf("define: name must be a symbol")
	}
	if len(operands) != 2 {
		return ast.Nil, serr.SyntaxArity("define")
	}
	name := ev.Arena.Get(head).Sym
	val, err := ev.Eval(operands[1], envRef)
	if err != nil {
		return ast.Nil, err
	}
	ev.Envs.Define(envRef, name, val)
	return ast.Nil, nil
}

// formSetBang rebinds an already-bound name in place, failing with a
// NameError if no frame in the chain binds it.
func formSetBang(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	if len(operands) != 2 {
		return ast.Nil, serr.SyntaxArity("set!")
	}
	if operands[0] == ast.Nil || ev.Arena.Get(operands[0]).Kind != ast.Symbol {
		return ast.Nil, serr.Syntaxf("set!: target must be a symbol")
	}
	name := ev.Arena.Get(operands[0]).Sym
	val, err := ev.Eval(operands[1], envRef)
	if err != nil {
		return ast.Nil, err
	}
	if serrErr := ev.Envs.Assign(envRef, name, val); serrErr != nil {
		return ast.Nil, serrErr
	}
	return ast.Nil, nil
}

// formSetCar and formSetCdr mutate the targeted pair in place, through
// the arena handle the first operand evaluates to. Because ValueRef is
// a stable arena index rather than a freshly-copied value, this is true
// in-place mutation: every other reference aliasing the same pair
// observes the change, rather than only the rebound name.
func formSetCar(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	return mutatePair(ev, "set-car!", operands, envRef, func(p *ast.Value, v ast.ValueRef) { p.Car = v })
}

func formSetCdr(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	return mutatePair(ev, "set-cdr!", operands, envRef, func(p *ast.Value, v ast.ValueRef) { p.Cdr = v })
}

func mutatePair(ev *Evaluator, name string, operands []ast.ValueRef, envRef ast.EnvRef, apply func(*ast.Value, ast.ValueRef)) (ast.ValueRef, *serr.SchemeError) {
	if len(operands) != 2 {
		return ast.Nil, serr.SyntaxArity(name)
	}
	pairRef, err := ev.Eval(operands[0], envRef)
	if err != nil {
		return ast.Nil, err
	}
	if pairRef == ast.Nil || ev.Arena.Get(pairRef).Kind != ast.Pair {
		return ast.Nil, serr.Runtimef("%s: argument is not a pair", name)
	}
	val, err := ev.Eval(operands[1], envRef)
	if err != nil {
		return ast.Nil, err
	}
	apply(ev.Arena.Get(pairRef), val)
	return ast.Nil, nil
}

// formBegin sequences evaluation, returning the last value; (begin)
// returns Nil.
func formBegin(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	return evalBody(ev, operands, envRef)
}

// formCond tries each clause's test in order, with the same truthiness
// rule as if, evaluating the clauses directly rather than building if
// forms. An else clause's test symbol
// matches unconditionally. A clause with no body forms yields its test
// value, mirroring standard cond semantics.
func formCond(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	for _, clauseRef := range operands {
		clause, ok := ev.Arena.ListToSlice(clauseRef)
		if !ok || len(clause) == 0 {
			return ast.Nil, serr.Syntaxf("cond: malformed clause")
		}
		testRef := clause[0]
		isElse := testRef != ast.Nil && ev.Arena.Get(testRef).Kind == ast.Symbol && ev.Arena.Get(testRef).Sym == "else"
		if isElse {
			return evalBody(ev, clause[1:], envRef)
		}
		testVal, err := ev.Eval(testRef, envRef)
		if err != nil {
			return ast.Nil, err
		}
		if ev.Arena.IsTruthy(testVal) {
			if len(clause) == 1 {
				return testVal, nil
			}
			return evalBody(ev, clause[1:], envRef)
		}
	}
	return ast.Nil, nil
}

// formLet is sugar for immediate lambda application: binding values are
// evaluated in the enclosing environment, then bound in a single fresh
// frame before the body runs, so bindings cannot see each other (the
// same left-to-right, evaluate-before-bind discipline lambda argument
// evaluation uses).
func formLet(ev *Evaluator, operands []ast.ValueRef, envRef ast.EnvRef) (ast.ValueRef, *serr.SchemeError) {
	if len(operands) < 1 {
		return ast.Nil, serr.SyntaxArity("let")
	}
	bindings, ok := ev.Arena.ListToSlice(operands[0])
	if !ok {
		return ast.Nil, serr.Syntaxf("let: bindings must be a proper list")
	}
	names := make([]string, len(bindings))
	vals := make([]ast.ValueRef, len(bindings))
	for i, b := range bindings {
		pair, ok := ev.Arena.ListToSlice(b)
		if !ok || len(pair) != 2 {
			return ast.Nil, serr.Syntaxf("let: each binding must be (name value)")
		}
		if pair[0] == ast.Nil || ev.Arena.Get(pair[0]).Kind != ast.Symbol {
			return ast.Nil, serr.Syntaxf("let: binding name must be a symbol")
		}
		names[i] = ev.Arena.Get(pair[0]).Sym
		v, err := ev.Eval(pair[1], envRef)
		if err != nil {
			return ast.Nil, err
		}
		vals[i] = v
	}
	frame := ev.Envs.ChildOf(envRef)
	for i, name := range names {
		ev.Envs.Define(frame, name, vals[i])
	}
	return evalBody(ev, operands[1:], frame)
}
