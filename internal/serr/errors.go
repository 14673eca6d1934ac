// Package serr defines the three error kinds the interpreter can signal:
// syntax errors from the tokenizer and reader, runtime errors from
// evaluation, and name errors from unbound symbol references.
package serr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a SchemeError so callers can distinguish a malformed
// request from a runtime type mismatch from an unbound name without
// parsing the message text.
type Kind int

const (
	_ Kind = iota
	// Syntax marks illegal lexemes, malformed structure, special-form
	// arity mistakes, and leftover tokens after the outermost datum.
	Syntax
	// Runtime marks type mismatches, regular-primitive arity mistakes,
	// empty application, out-of-range list indices, and division by zero.
	Runtime
	// Name marks a reference to a symbol that no frame in the
	// environment chain binds.
	Name
)

// String returns the kind's name, used in error messages and logging.
func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case Runtime:
		return "RuntimeError"
	case Name:
		return "NameError"
	default:
		return "UnknownError"
	}
}

// SchemeError is the single error type surfaced across the tokenizer,
// reader, and evaluator. It carries a Kind so callers can branch on the
// error category, plus an optional Cause for wrapped lower-level errors.
type SchemeError struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *SchemeError) Unwrap() error {
	return e.Cause
}

// New constructs a SchemeError of the given kind with a plain message.
func New(kind Kind, message string) *SchemeError {
	return &SchemeError{Kind: kind, Message: message, Cause: errors.New(message)}
}

// Newf constructs a SchemeError of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *SchemeError {
	msg := fmt.Sprintf(format, args...)
	return &SchemeError{Kind: kind, Message: msg, Cause: errors.New(msg)}
}

// Wrap attaches kind and message context to an existing error, preserving
// it as the Cause so errors.Unwrap/errors.Is still reach it.
func Wrap(kind Kind, cause error, message string) *SchemeError {
	return &SchemeError{Kind: kind, Message: message, Cause: errors.Wrap(cause, message)}
}

// Syntaxf is a convenience constructor for the common case of a syntax
// error raised directly by the tokenizer or reader.
func Syntaxf(format string, args ...interface{}) *SchemeError {
	return Newf(Syntax, format, args...)
}

// Runtimef is a convenience constructor for runtime errors raised by
// the evaluator or a primitive.
func Runtimef(format string, args ...interface{}) *SchemeError {
	return Newf(Runtime, format, args...)
}

// Namef is a convenience constructor for unbound-symbol errors.
func Namef(format string, args ...interface{}) *SchemeError {
	return Newf(Name, format, args...)
}

// Arity builds a runtime arity error for a regular primitive.
func Arity(name string) *SchemeError {
	return Runtimef("wrong number of arguments for %q", name)
}

// SyntaxArity builds a syntax arity error for a special form.
func SyntaxArity(name string) *SchemeError {
	return Syntaxf("wrong number of arguments for special form %q", name)
}
