package tabscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadNoLeakOnFailure(t *testing.T) {
	s := newState("t", "123", false)
	_, ok := s.read(patIdentifier)
	require.False(t, ok)
	require.Equal(t, 0, s.inPos)
	require.Contains(t, s.expected.sorted(), "identifier")

	// A successful read on the very same state resets the expected-set and
	// advances the cursor.
	text, ok := s.read(patNumber)
	require.True(t, ok)
	require.Equal(t, "123", text)
	require.Equal(t, 3, s.inPos)
	require.Empty(t, s.expected.sorted())
}

func TestReadSkipsTrailingWhitespace(t *testing.T) {
	s := newState("t", "foo   bar", false)
	text, ok := s.read(patIdentifier)
	require.True(t, ok)
	require.Equal(t, "foo", text)
	require.Equal(t, 6, s.inPos) // past "foo" and the three spaces

	text, ok = s.read(patIdentifier)
	require.True(t, ok)
	require.Equal(t, "bar", text)
}

func TestPeekDoesNotAdvance(t *testing.T) {
	s := newState("t", "foo", false)
	text, ok := s.peek(patIdentifier)
	require.True(t, ok)
	require.Equal(t, "foo", text)
	require.Equal(t, 0, s.inPos)
}

func TestReadNewlineIdempotent(t *testing.T) {
	s := newState("t", "a\n\tb\n", false)
	require.True(t, s.readKeyword("a"))
	require.True(t, s.readNewline())
	pos := s.inPos
	require.True(t, s.readNewline())
	require.Equal(t, pos, s.inPos)
}

func TestReadNewlineSynthesizesIndentDedent(t *testing.T) {
	s := newState("t", "a\n\tb\nc\n", false)
	require.True(t, s.readKeyword("a"))
	require.True(t, s.readNewline())
	require.True(t, s.readIndent())
	require.True(t, s.readKeyword("b"))
	require.True(t, s.readNewline())
	require.True(t, s.readDedent())
	require.True(t, s.readKeyword("c"))
}

func TestReadNewlineSkipsBlankAndCommentLines(t *testing.T) {
	s := newState("t", "a\n\n# a comment\nb\n", false)
	require.True(t, s.readKeyword("a"))
	require.True(t, s.readNewline())
	require.True(t, s.readKeyword("b"))
}

func TestSpaceIndentationIsFatal(t *testing.T) {
	s := newState("t", "a\n \tb\n", false)
	require.True(t, s.readKeyword("a"))
	require.Panics(t, func() { s.readNewline() })
}

func TestAtEOF(t *testing.T) {
	s := newState("t", "a", false)
	require.False(t, s.atEOF())
	require.True(t, s.readKeyword("a"))
	require.True(t, s.atEOF())
}

func TestReadIndentFailsWithoutLeaking(t *testing.T) {
	s := newState("t", "a\nb\n", false)
	require.True(t, s.readKeyword("a"))
	snapIn := s.inPos
	ok := s.readIndent()
	require.False(t, ok)
	require.Equal(t, snapIn, s.inPos)
}
