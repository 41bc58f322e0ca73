package tabscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderPreserveModeJoinsText(t *testing.T) {
	buf := newOutputBuffer()
	buf.pushText("const")
	buf.pushText(" ")
	buf.pushText("x")
	buf.pushText("=")
	buf.pushText("1")
	code, sm := render(buf, WhitespacePreserve)
	require.Equal(t, "const x=1\n", code)
	require.Empty(t, sm.In)
}

func TestRenderPrettyModeInsertsSpaceBetweenWords(t *testing.T) {
	buf := newOutputBuffer()
	buf.pushText("return")
	buf.pushText("x")
	code, _ := render(buf, WhitespacePretty)
	require.Equal(t, "return x\n", code)
}

func TestRenderPrettyModeSuppressesSpaceAroundBrackets(t *testing.T) {
	buf := newOutputBuffer()
	buf.pushText("foo")
	buf.pushText("(")
	buf.pushText("1")
	buf.pushText(",")
	buf.pushText("2")
	buf.pushText(")")
	code, _ := render(buf, WhitespacePretty)
	require.Equal(t, "foo(1, 2)\n", code)
}

func TestRenderPrettyModePairRuleForcesSpaceBeforeParen(t *testing.T) {
	buf := newOutputBuffer()
	buf.pushText("x:")
	buf.pushText("(")
	buf.pushText("number")
	buf.pushText(")")
	code, _ := render(buf, WhitespacePretty)
	require.Equal(t, "x: (number)\n", code)
}

func TestRenderMapMarksProduceSourceMapPairs(t *testing.T) {
	buf := newOutputBuffer()
	buf.pushMapMark(5, 1, 1)
	buf.pushText("x")
	code, sm := render(buf, WhitespacePreserve)
	require.Equal(t, "x\n", code)
	require.Equal(t, []int{5}, sm.In)
	require.Equal(t, []int{0}, sm.Out)
}

func TestRenderIsDeterministic(t *testing.T) {
	buf := newOutputBuffer()
	buf.pushText("a")
	buf.pushText("b")
	buf.pushText("c")
	code1, _ := render(buf, WhitespacePretty)
	code2, _ := render(buf, WhitespacePretty)
	require.Equal(t, code1, code2)
}
