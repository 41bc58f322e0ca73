package tabscript

import "strings"

// outKind tags an entry in the output token stream. Positive-offset marks
// (outMapMark) record a source position that contributes an (in, out) pair
// at render time; negative-form marks (outNoMapMark) only reposition the
// renderer's notion of line/column without emitting a map pair. Spec's
// "compact encoding" (positive ints = MapMark, negative = NoMapMark, strings
// = Text) is expressed here as an explicit tagged enum rather than relying
// on the sign of an int, which is clearer in a statically typed language.
type outKind int

const (
	outText outKind = iota
	outMapMark
	outNoMapMark
)

type outItem struct {
	kind outKind
	text string
	pos  int // source byte offset, for the mark kinds
	line int // resolved 1-based line, for the mark kinds
	col  int // resolved 1-based column, for the mark kinds
}

// outputBuffer is the append-only output token stream (component C). Its
// only mutation other than append is truncate, used by snapshot revert to
// discard speculative output.
type outputBuffer struct {
	items []outItem
}

func newOutputBuffer() *outputBuffer {
	return &outputBuffer{}
}

func (b *outputBuffer) pushText(s string) {
	if s == "" {
		return
	}
	b.items = append(b.items, outItem{kind: outText, text: s})
}

func (b *outputBuffer) pushMapMark(pos, line, col int) {
	b.items = append(b.items, outItem{kind: outMapMark, pos: pos, line: line, col: col})
}

func (b *outputBuffer) pushNoMapMark(pos, line, col int) {
	b.items = append(b.items, outItem{kind: outNoMapMark, pos: pos, line: line, col: col})
}

func (b *outputBuffer) length() int { return len(b.items) }

func (b *outputBuffer) truncate(n int) {
	b.items = b.items[:n]
}

// endsWith reports whether the last emitted Text ends with suffix, skipping
// over any intervening Marks — used by the plugin entry point (e.g. a
// plugin checking whether the statement it just parsed already terminated
// with ";").
func (b *outputBuffer) endsWith(suffix string) bool {
	for i := len(b.items) - 1; i >= 0; i-- {
		if b.items[i].kind != outText {
			continue
		}
		return strings.HasSuffix(b.items[i].text, suffix)
	}
	return false
}

// since returns a copy of the items appended after index n, used by
// Snapshot.revertOutput to hand speculative output back to the caller.
func (b *outputBuffer) since(n int) []outItem {
	if n >= len(b.items) {
		return nil
	}
	out := make([]outItem, len(b.items)-n)
	copy(out, b.items[n:])
	return out
}

// renderedSince renders the given items (e.g. those Snapshot.revertOutput
// returns) as plain text, ignoring marks. Nothing in this module calls it.
func renderedSince(items []outItem) string {
	var sb strings.Builder
	for _, it := range items {
		if it.kind == outText {
			sb.WriteString(it.text)
		}
	}
	return sb.String()
}
