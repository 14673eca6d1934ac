package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains a Tokenizer into a slice of whole Tokens (through the
// final EOF) for easy comparison.
func collect(t *testing.T, input string) []Token {
	t.Helper()
	tok, err := New(input)
	require.Nil(t, err, "unexpected error tokenizing %q: %v", input, err)
	var out []Token
	for {
		out = append(out, tok.Peek())
		if tok.IsEnd() {
			break
		}
		tok.Advance()
	}
	return out
}

func TestLexKinds(t *testing.T) {
	cases := map[string][]Kind{
		"":           {EOF},
		"(":          {OpenParen, EOF},
		")":          {CloseParen, EOF},
		"'":          {Quote, EOF},
		".":          {Dot, EOF},
		"42":         {Integer, EOF},
		"-7":         {Integer, EOF},
		"+3":         {Integer, EOF},
		"foo":        {Symbol, EOF},
		"foo?":       {Symbol, EOF},
		"list->bar":  {Symbol, EOF},
		"(+ 1 2)":    {OpenParen, Symbol, Integer, Integer, CloseParen, EOF},
		"'(a . b)":   {Quote, OpenParen, Symbol, Dot, Symbol, CloseParen, EOF},
		"  42   foo": {Integer, Symbol, EOF},
	}
	for input, want := range cases {
		got := collect(t, input)
		require.Len(t, got, len(want), "input %q", input)
		for i, k := range want {
			assert.Equal(t, k, got[i].Kind, "input %q token %d", input, i)
		}
	}
}

func TestLexIntegerValue(t *testing.T) {
	toks := collect(t, "-17")
	require.Equal(t, Integer, toks[0].Kind)
	assert.Equal(t, int64(-17), toks[0].Int)
}

func TestLexSymbolText(t *testing.T) {
	toks := collect(t, "even?")
	require.Equal(t, Symbol, toks[0].Kind)
	assert.Equal(t, "even?", toks[0].Text)
}

func TestLexIllegalCharacter(t *testing.T) {
	_, err := New(`"hello"`)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "illegal character")
}

func TestLexUnsupportedQuasiquote(t *testing.T) {
	for _, input := range []string{"`a", ",a", ",@a"} {
		_, err := New(input)
		require.NotNil(t, err, "input %q should be rejected", input)
	}
}

func TestAdvancePastEOFIsNoop(t *testing.T) {
	tok, err := New("foo")
	require.Nil(t, err)
	tok.Advance()
	require.True(t, tok.IsEnd())
	tok.Advance()
	tok.Advance()
	assert.True(t, tok.IsEnd())
	assert.Equal(t, EOF, tok.Peek().Kind)
}
