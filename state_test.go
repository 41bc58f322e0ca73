package tabscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotRevertRestoresEverything(t *testing.T) {
	s := newState("t", "a\n\tb\nc\n", false)
	require.True(t, s.readKeyword("a"))
	require.True(t, s.readNewline())
	require.True(t, s.readIndent())
	s.emit("a")

	snap := s.snapshot()
	require.True(t, s.readKeyword("b"))
	s.emit("b")
	require.True(t, s.readNewline())

	beforeLen := s.out.length()
	snap.revert()
	require.Less(t, s.out.length(), beforeLen)
	require.Equal(t, snap.inPos, s.inPos)
	require.Equal(t, snap.indentLevel, s.indentLevel)

	// The reverted parse can be retried from the snapshot point.
	require.True(t, s.readKeyword("b"))
}

func TestSnapshotRevertOutputLeavesCursorAlone(t *testing.T) {
	s := newState("t", "foo bar", false)
	s.emit("prefix")
	snap := s.snapshot()
	require.True(t, s.readKeyword("foo"))
	s.emit("foo")
	cursorAfterRead := s.inPos

	discarded := snap.revertOutput()
	require.Len(t, discarded, 2) // the MapMark realized from the read, then "foo"
	require.Equal(t, cursorAfterRead, s.inPos, "revertOutput must not touch the scanner cursor")
	require.False(t, s.out.endsWith("foo"))
	require.True(t, s.out.endsWith("prefix"))
}

func TestSnapshotHasOutput(t *testing.T) {
	s := newState("t", "foo", false)
	snap := s.snapshot()
	require.False(t, snap.hasOutput())
	s.emit("x")
	require.True(t, snap.hasOutput())
}

func TestEmitRealizesPendingTargetAsMapMark(t *testing.T) {
	s := newState("t", "foo", false)
	_, ok := s.read(patIdentifier)
	require.True(t, ok)
	require.NotEqual(t, noTarget, s.outTargetPos)
	s.emit("foo")
	require.Equal(t, noTarget, s.outTargetPos)

	var sawMapMark bool
	for _, it := range s.out.items {
		if it.kind == outMapMark {
			sawMapMark = true
		}
	}
	require.True(t, sawMapMark)
}

func TestClearTargetDropsPendingMark(t *testing.T) {
	s := newState("t", "foo", false)
	_, ok := s.read(patIdentifier)
	require.True(t, ok)
	s.clearTarget()
	require.Equal(t, noTarget, s.outTargetPos)
	s.emit("x")
	for _, it := range s.out.items {
		require.NotEqual(t, outMapMark, it.kind)
	}
}

func TestPositionTracksLinesAndColumns(t *testing.T) {
	s := newState("t", "ab\ncd\n", false)
	line, col := s.position(0)
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)
	line, col = s.position(3)
	require.Equal(t, 2, line)
	require.Equal(t, 1, col)
}
