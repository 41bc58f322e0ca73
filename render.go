package tabscript

import "strings"

// WhitespaceMode selects how the Renderer reflows inter-token spacing.
type WhitespaceMode int

const (
	// WhitespacePreserve pads output to match the source's original
	// columns wherever a mapped position says so. This is the default.
	WhitespacePreserve WhitespaceMode = iota
	// WhitespacePretty ignores source columns within a line and inserts a
	// single space between tokens, suppressed around a small set of
	// punctuation pairs. Target lines are still followed, and a new line is
	// still indented with tabs up to the target column.
	WhitespacePretty
)

func parseWhitespaceMode(s string) WhitespaceMode {
	if s == "pretty" {
		return WhitespacePretty
	}
	return WhitespacePreserve
}

// SourceMap is the transpiler's output mapping: two parallel, equal-length,
// non-decreasing arrays of 0-based byte offsets. map.In[i]/map.Out[i] is a
// basis point a decoder may interpolate forward from until the next pair
// (spec §6.4).
type SourceMap struct {
	In  []int
	Out []int
}

// isWordChar reports whether c participates in identifier-fusion: if the
// last emitted byte and the first byte of the next token are both word
// chars, a separator is mandatory in every whitespace mode to avoid fusing
// two tokens into one (e.g. "return" + "x" must never render "returnx").
func isWordChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// prettySeparator decides, outside the forced word-fusion case, whether
// pretty mode inserts a single space between prev (the last emitted byte)
// and next (the first byte of the upcoming token). The no-space class and
// the `:`/`=` → `(`/`[` pair rule are exactly spec §4.F's separator design;
// see DESIGN.md for the judgment call behind the pair rule's interpretation.
func prettySeparator(prev, next byte) bool {
	if (prev == ':' || prev == '=') && (next == '(' || next == '[') {
		return true
	}
	beforeSuppress := prev == '[' || prev == '(' || prev == '.' || prev == '!'
	afterSuppress := next == '[' || next == ']' || next == '(' || next == ',' ||
		next == ';' || next == ')' || next == ':' || next == '.'
	return !beforeSuppress && !afterSuppress
}

// render is the Renderer (component F): a single left-to-right pass over
// the output token stream that materializes final source text plus a
// source map, applying the chosen whitespace mode. It is a pure function of
// its inputs (spec §3.2 invariant 6: "deterministic... byte-identical").
func render(buf *outputBuffer, mode WhitespaceMode) (code string, sm SourceMap) {
	var sb strings.Builder
	outLine, outCol := 1, 1
	targetLine, targetCol := 1, 1
	pendingMapIn := -1
	var prevByte byte
	havePrev := false

	flush := func() {
		if pendingMapIn >= 0 {
			sm.In = append(sm.In, pendingMapIn)
			sm.Out = append(sm.Out, sb.Len())
			pendingMapIn = -1
		}
	}

	writeByte := func(c byte) {
		sb.WriteByte(c)
		prevByte = c
		havePrev = true
		if c == '\n' {
			outLine++
			outCol = 1
		} else {
			outCol++
		}
	}
	writeString := func(s string) {
		for i := 0; i < len(s); i++ {
			writeByte(s[i])
		}
	}

	for _, it := range buf.items {
		switch it.kind {
		case outMapMark:
			targetLine, targetCol = it.line, it.col
			pendingMapIn = it.pos
		case outNoMapMark:
			targetLine, targetCol = it.line, it.col
		case outText:
			t := it.text
			if t == "" {
				continue
			}
			if targetLine > outLine {
				for outLine < targetLine {
					writeByte('\n')
				}
			}
			if outCol == 1 && targetCol > 1 {
				writeString(strings.Repeat("\t", targetCol-1))
			} else if havePrev && prevByte != ' ' && prevByte != '\t' && t[0] != ' ' && t[0] != '\t' {
				// A token already ending (or, here, starting) in whitespace —
				// e.g. a parser-baked "if (" or " of " — has already supplied
				// its own separator; don't add a second one on top of it.
				sep := 0
				if isWordChar(prevByte) && isWordChar(t[0]) {
					sep = 1
				}
				switch mode {
				case WhitespacePreserve:
					if pad := targetCol - outCol; pad > sep {
						sep = pad
					}
				case WhitespacePretty:
					if sep == 0 && prettySeparator(prevByte, t[0]) {
						sep = 1
					}
				}
				if sep > 0 {
					writeString(strings.Repeat(" ", sep))
				}
			}
			flush()
			writeString(t)
		}
	}
	writeByte('\n')
	return sb.String(), sm
}
