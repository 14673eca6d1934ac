package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yorky1/scheme/internal/ast"
)

func verifyRead(t *testing.T, mapping map[string]string) {
	t.Helper()
	for input, want := range mapping {
		arena := ast.NewArena(16)
		ref, err := Read(input, arena)
		require.Nil(t, err, "unexpected error reading %q: %v", input, err)
		got := arena.Print(ref)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestReadAtoms(t *testing.T) {
	verifyRead(t, map[string]string{
		"42":    "42",
		"-7":    "-7",
		"foo":   "foo",
		"#t":    "#t",
		"#f":    "#f",
		"even?": "even?",
	})
}

func TestReadLists(t *testing.T) {
	verifyRead(t, map[string]string{
		"()":          "()",
		"(1 2 3)":     "(1 2 3)",
		"(1 . 2)":     "(1 . 2)",
		"(1 2 . 3)":   "(1 2 . 3)",
		"(a (b c) d)": "(a (b c) d)",
	})
}

func TestReadQuote(t *testing.T) {
	verifyRead(t, map[string]string{
		"'a":        "(quote a)",
		"'(1 2)":    "(quote (1 2))",
		"''a":       "(quote (quote a))",
		"(quote x)": "(quote x)",
	})
}

func TestReadEmptyList(t *testing.T) {
	arena := ast.NewArena(4)
	ref, err := Read("()", arena)
	require.Nil(t, err)
	assert.Equal(t, ast.Nil, ref)
}

func TestReadErrors(t *testing.T) {
	cases := []string{
		"",
		"(",
		")",
		"(1 2",
		"(. 1)",
		"(1 . 2 3)",
		"1 2",
		"(1 2) 3",
	}
	for _, input := range cases {
		arena := ast.NewArena(4)
		_, err := Read(input, arena)
		assert.NotNil(t, err, "input %q should fail to read", input)
	}
}
