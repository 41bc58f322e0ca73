package tabscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatternSticky(t *testing.T) {
	cases := []struct {
		name string
		pat  *Pattern
		src  string
		pos  int
		want string
	}{
		{"identifier at start", patIdentifier, "foo bar", 0, "foo"},
		{"identifier matched from the given pos, not the word start", patIdentifier, "foo bar", 1, "oo"},
		{"no match past a space", patIdentifier, " foo", 0, ""},
		{"number hex", patNumber, "0xFF;", 0, "0xFF"},
		{"number float", patNumber, "3.14 ", 0, "3.14"},
		{"string double quoted", patString, `"a\"b" rest`, 0, `"a\"b"`},
		{"string single quoted", patString, `'hi' rest`, 0, `'hi'`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.pat.match(c.src, c.pos)
			require.Equal(t, c.want, got)
		})
	}
}

func TestKeywordRequiresWordBoundary(t *testing.T) {
	require.Equal(t, "in", keyword("in").match("in x", 0))
	require.Equal(t, "", keyword("in").match("inward", 0))
}

func TestLiteralMatch(t *testing.T) {
	require.Equal(t, "(", literal("(").match("(x)", 0))
	require.Equal(t, "", literal("(").match("x(", 0))
	require.Equal(t, "=>", literal("=>").match("=> x", 0))
}

func TestOperatorAlternationPrefersLongestShift(t *testing.T) {
	// RE2 alternation is first-match; operatorAlternation lists longer forms
	// first so ">>>=" isn't shadowed by ">>" or ">>=".
	require.Equal(t, ">>>=", patOperator.match(">>>= x", 0))
	require.Equal(t, ">>>", patOperator.match(">>> x", 0))
	require.Equal(t, ">>=", patOperator.match(">>= x", 0))
	require.Equal(t, ">>", patOperator.match(">> x", 0))
}
