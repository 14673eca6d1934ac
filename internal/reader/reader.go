// Package reader turns a token stream into the AST: a graph of
// arena-allocated Value nodes built with exactly the same constructors
// the evaluator uses for runtime data, giving the interpreter its
// homoiconicity (code is data) for free. The grammar covers atoms and
// proper/improper lists, plus ' as sugar for (quote ...); there are no
// strings, floats, characters, vectors, or full quasiquote.
package reader

import (
	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/serr"
	"github.com/Yorky1/scheme/internal/token"
)

// quoteSymbol is the symbol text readDatum wraps a quoted datum in:
// 'D becomes (quote D).
const quoteSymbol = "quote"

// Read consumes input, expecting exactly one datum, and requires the
// token stream be exhausted afterward. It is not a multi-expression
// program reader: a request is always a single expression.
func Read(input string, arena *ast.Arena) (ast.ValueRef, *serr.SchemeError) {
	tok, err := token.New(input)
	if err != nil {
		return ast.Nil, err
	}
	val, err := readDatum(tok, arena)
	if err != nil {
		return ast.Nil, err
	}
	if !tok.IsEnd() {
		return ast.Nil, serr.Syntaxf("unexpected tokens after expression: %q", tok.Peek().Text)
	}
	return val, nil
}

// readDatum implements the grammar's "datum" production.
func readDatum(tok *token.Tokenizer, arena *ast.Arena) (ast.ValueRef, *serr.SchemeError) {
	t := tok.Peek()
	switch t.Kind {
	case token.EOF:
		return ast.Nil, serr.Syntaxf("unexpected end of input")
	case token.Integer:
		tok.Advance()
		return arena.NewNumber(t.Int), nil
	case token.Symbol:
		tok.Advance()
		return arena.NewSymbol(t.Text), nil
	case token.Quote:
		tok.Advance()
		// Allocate the quote symbol first, in the same order as reading
		// (quote D) spelled out by hand.
		quote := arena.NewSymbol(quoteSymbol)
		inner, err := readDatum(tok, arena)
		if err != nil {
			return ast.Nil, err
		}
		return arena.NewList(quote, inner), nil
	case token.OpenParen:
		tok.Advance()
		return readListBody(tok, arena)
	case token.CloseParen:
		return ast.Nil, serr.Syntaxf("unexpected )")
	case token.Dot:
		return ast.Nil, serr.Syntaxf("unexpected . outside of a list")
	default:
		return ast.Nil, serr.Syntaxf("unrecognized token %q", t.Text)
	}
}

// readListBody implements the grammar's "list_body" production, having
// already consumed the opening paren. It returns ast.Nil for "()" and
// otherwise a chain of Pairs, handling the single improper-tail case
// "a b . c" exactly once, immediately before the closing paren.
func readListBody(tok *token.Tokenizer, arena *ast.Arena) (ast.ValueRef, *serr.SchemeError) {
	if tok.Peek().Kind == token.CloseParen {
		tok.Advance()
		return ast.Nil, nil
	}
	if tok.IsEnd() {
		return ast.Nil, serr.Syntaxf("unexpected end of input inside list")
	}

	first, err := readDatum(tok, arena)
	if err != nil {
		return ast.Nil, err
	}

	if tok.Peek().Kind == token.Dot {
		tok.Advance()
		tail, err := readDatum(tok, arena)
		if err != nil {
			return ast.Nil, err
		}
		if tok.Peek().Kind != token.CloseParen {
			return ast.Nil, serr.Syntaxf("expected ) after dotted tail, found %q", tok.Peek().Text)
		}
		tok.Advance()
		return arena.NewPair(first, tail), nil
	}

	rest, err := readListBody(tok, arena)
	if err != nil {
		return ast.Nil, err
	}
	return arena.NewPair(first, rest), nil
}
