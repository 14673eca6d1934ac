// Package ast defines the runtime value representation shared by the
// reader and the evaluator: a tagged Value union stored in an
// append-only Arena and addressed by a stable, integer ValueRef handle
// rather than a reference-counted pointer, so that set-car!/set-cdr!
// can build cyclic structures without relying on garbage-collector
// guarantees.
package ast

import "fmt"

// Kind tags the variant a Value holds.
type Kind int

const (
	_ Kind = iota
	Number
	Symbol
	Pair
	Bool
	Lambda
	Primitive
)

// String names a Kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Symbol:
		return "symbol"
	case Pair:
		return "pair"
	case Bool:
		return "boolean"
	case Lambda:
		return "procedure"
	case Primitive:
		return "primitive"
	default:
		return "undefined"
	}
}

// ValueRef is a non-owning handle into an Arena. Nil is the empty list:
// the reader never synthesizes a sentinel Pair for it.
type ValueRef int

// Nil is the empty-list / absent-value reference.
const Nil ValueRef = -1

// EnvRef is a non-owning handle into an environment frame arena. It is
// defined here, rather than in package env, so that a Value of Kind
// Lambda can store its captured frame without an import cycle between
// ast and env (env needs ValueRef to store bindings).
type EnvRef int

// Lambda holds the three pieces of state a closure needs: its
// parameter names, its body forms (a proper list is unrolled into a
// slice at creation time so eval doesn't re-walk pairs on every call),
// and the frame it closed over.
type Lambda struct {
	Params      []string
	Body        []ValueRef
	CapturedEnv EnvRef
}

// Value is the universal runtime datum: numbers, symbols, cons cells,
// booleans, closures, and primitive references all fit in one struct
// rather than a Go interface hierarchy, because the arena needs a
// uniform element type to index into.
type Value struct {
	Kind Kind

	Num int64  // Kind == Number
	Sym string // Kind == Symbol or Primitive (primitive op name)
	B   bool   // Kind == Bool

	Car, Cdr ValueRef // Kind == Pair; either may be Nil

	Lam *Lambda // Kind == Lambda
}

// Arena is the append-only, process-owned store of every Value node
// created while reading or evaluating a request. Nothing is ever freed
// from it until the owning Interpreter is discarded: storage
// accumulates for the interpreter's lifetime rather than being
// collected piecemeal.
type Arena struct {
	values []Value
}

// NewArena constructs an empty Arena, optionally pre-sized to avoid
// early reallocation for interpreters that expect heavy use.
func NewArena(capacityHint int) *Arena {
	return &Arena{values: make([]Value, 0, capacityHint)}
}

// alloc appends v and returns its stable ValueRef.
func (a *Arena) alloc(v Value) ValueRef {
	a.values = append(a.values, v)
	return ValueRef(len(a.values) - 1)
}

// Get dereferences ref. Dereferencing Nil is a programmer error in the
// evaluator (every call site must check for Nil first, since it
// represents "no pair" rather than a pair of zero fields) and panics
// rather than silently returning a zero Value.
func (a *Arena) Get(ref ValueRef) *Value {
	if ref == Nil {
		panic("ast: dereferenced the nil ValueRef")
	}
	return &a.values[ref]
}

// NewNumber allocates a Number value.
func (a *Arena) NewNumber(n int64) ValueRef {
	return a.alloc(Value{Kind: Number, Num: n})
}

// NewSymbol allocates a Symbol value.
func (a *Arena) NewSymbol(s string) ValueRef {
	return a.alloc(Value{Kind: Symbol, Sym: s})
}

// NewBool allocates a Bool value.
func (a *Arena) NewBool(b bool) ValueRef {
	return a.alloc(Value{Kind: Bool, B: b})
}

// NewPair allocates a Pair with the given car/cdr, either of which may
// be Nil.
func (a *Arena) NewPair(car, cdr ValueRef) ValueRef {
	return a.alloc(Value{Kind: Pair, Car: car, Cdr: cdr})
}

// NewLambda allocates a Lambda value closing over env.
func (a *Arena) NewLambda(params []string, body []ValueRef, env EnvRef) ValueRef {
	return a.alloc(Value{Kind: Lambda, Lam: &Lambda{Params: params, Body: body, CapturedEnv: env}})
}

// NewPrimitive allocates a reference to the built-in operation named
// name. The registry that resolves the name lives in package eval; this
// is just the tagged handle evaluating a Symbol that names one returns.
func (a *Arena) NewPrimitive(name string) ValueRef {
	return a.alloc(Value{Kind: Primitive, Sym: name})
}

// IsTruthy reports whether ref counts as true in a boolean context:
// every value is true except Bool(false) and the symbol "#f".
func (a *Arena) IsTruthy(ref ValueRef) bool {
	if ref == Nil {
		return true
	}
	v := a.Get(ref)
	switch v.Kind {
	case Bool:
		return v.B
	case Symbol:
		return v.Sym != "#f"
	default:
		return true
	}
}

// NewList builds a proper list from the given elements, consing from
// the tail so each element is allocated exactly once.
func (a *Arena) NewList(elems ...ValueRef) ValueRef {
	result := Nil
	for i := len(elems) - 1; i >= 0; i-- {
		result = a.NewPair(elems[i], result)
	}
	return result
}

// ListToSlice unrolls a proper list into a slice of its elements. It
// returns (nil, false), rather than silently truncating, if ref is not
// a proper list.
func (a *Arena) ListToSlice(ref ValueRef) ([]ValueRef, bool) {
	var out []ValueRef
	for ref != Nil {
		v := a.Get(ref)
		if v.Kind != Pair {
			return nil, false
		}
		out = append(out, v.Car)
		ref = v.Cdr
	}
	return out, true
}

// IsProperList reports whether ref is the empty list or a chain of
// pairs terminated by the empty list.
func (a *Arena) IsProperList(ref ValueRef) bool {
	for ref != Nil {
		v := a.Get(ref)
		if v.Kind != Pair {
			return false
		}
		ref = v.Cdr
	}
	return true
}

// Print renders ref in Scheme's printed form: decimal numbers, #t/#f,
// bare symbol text, "(e1 e2 ... en)" for proper lists, and
// "(e1 ... en . tail)" for improper ones.
func (a *Arena) Print(ref ValueRef) string {
	buf := make([]byte, 0, 32)
	buf = a.appendPrint(buf, ref)
	return string(buf)
}

func (a *Arena) appendPrint(buf []byte, ref ValueRef) []byte {
	if ref == Nil {
		return append(buf, "()"...)
	}
	v := a.Get(ref)
	switch v.Kind {
	case Number:
		return append(buf, fmt.Sprintf("%d", v.Num)...)
	case Symbol:
		return append(buf, v.Sym...)
	case Bool:
		if v.B {
			return append(buf, "#t"...)
		}
		return append(buf, "#f"...)
	case Lambda:
		return append(buf, "#<procedure>"...)
	case Primitive:
		return append(buf, fmt.Sprintf("#<primitive:%s>", v.Sym)...)
	case Pair:
		buf = append(buf, '(')
		buf = a.appendPrint(buf, v.Car)
		cdr := v.Cdr
		for cdr != Nil {
			cv := a.Get(cdr)
			if cv.Kind != Pair {
				buf = append(buf, " . "...)
				buf = a.appendPrint(buf, cdr)
				break
			}
			buf = append(buf, ' ')
			buf = a.appendPrint(buf, cv.Car)
			cdr = cv.Cdr
		}
		buf = append(buf, ')')
		return buf
	default:
		return append(buf, "#<undefined>"...)
	}
}
