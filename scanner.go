package tabscript

import "modernc.org/mathutil"

// fatalError wraps a ParseError that must never be recovered from (header
// version mismatch, space indentation) — caught only at the very top of
// Transpile, never inside recoverErrors.
type fatalError struct{ err *ParseError }

func (f fatalError) Error() string { return f.err.Error() }

// read attempts each matcher in turn at the current input position,
// succeeding on the first match. On success it consumes the match plus any
// trailing whitespace/comment, sets the output target if none is pending,
// and resets the expected-set. On failure every attempted matcher's name is
// added to the expected-set and the state is left exactly as it was
// (invariant: "no-leak on failure", spec §8.1). While the indent queue is
// non-empty, read always fails — indents/dedents must be drained with
// readIndent/readDedent first.
func (s *State) read(ms ...matcher) (string, bool) {
	if len(s.pending) != 0 {
		for _, m := range ms {
			s.expected.add(m.String())
		}
		return "", false
	}
	start := s.inPos
	for _, m := range ms {
		text := m.match(s.src, start)
		if text == "" {
			s.expected.add(m.String())
			continue
		}
		s.inPos = start + len(text)
		s.inPos += len(patWhitespace.match(s.src, s.inPos))
		if s.outTargetPos == noTarget {
			s.outTargetPos = start
		}
		s.expected.reset()
		return text, true
	}
	return "", false
}

// peek is read without the advance: it reports whether a matcher would
// succeed at the current position, leaving the scanner state untouched.
func (s *State) peek(ms ...matcher) (string, bool) {
	if len(s.pending) != 0 {
		return "", false
	}
	for _, m := range ms {
		if text := m.match(s.src, s.inPos); text != "" {
			return text, true
		}
	}
	return "", false
}

// readKeyword is the common case of read for a single literal keyword.
func (s *State) readKeyword(word string) bool {
	_, ok := s.read(keyword(word))
	return ok
}

func (s *State) peekKeyword(word string) bool {
	_, ok := s.peek(keyword(word))
	return ok
}

func (s *State) readLiteral(text string) bool {
	_, ok := s.read(literal(text))
	return ok
}

func (s *State) peekLiteral(text string) bool {
	_, ok := s.peek(literal(text))
	return ok
}

// readNewline is idempotent: a second call landing on the same position
// that a prior call already classified as a newline succeeds immediately
// without consuming anything further (spec §8.1 "idempotent newline").
// Otherwise it scans forward through `;`, blank/comment-only lines, and the
// next real line's tab indentation, translating the indent delta into a run
// of INDENT/DEDENT markers queued for readIndent/readDedent to drain.
func (s *State) readNewline() bool {
	if s.inLastNewline == s.inPos {
		return true
	}

	pos := s.inPos
	pos += len(patWhitespace.match(s.src, pos))
	forcedIndent := false

	for {
		if pos >= len(s.src) {
			s.flushIndentsTo(0)
			if forcedIndent {
				s.pending = append(s.pending, dirIndent)
			}
			s.inPos = pos
			s.inLastNewline = pos
			return true
		}

		switch s.src[pos] {
		case ';':
			forcedIndent = true
			pos++
			pos += len(patWhitespace.match(s.src, pos))
			continue
		case '\n':
			pos++
			tabs := 0
			for pos < len(s.src) && s.src[pos] == '\t' {
				tabs++
				pos++
			}
			if pos < len(s.src) && s.src[pos] == ' ' {
				line, col := s.position(pos)
				perr := &ParseError{
					Offset:  pos,
					Line:    line,
					Column:  col,
					Message: "Space indentation is not allowed, use tabs only",
				}
				s.addError(perr)
				panic(fatalError{perr})
			}
			lookahead := pos + len(patWhitespace.match(s.src, pos))
			if lookahead < len(s.src) && (s.src[lookahead] == '\n' || s.src[lookahead] == '\r') {
				pos = lookahead
				continue
			}
			s.flushIndentsTo(tabs)
			if forcedIndent {
				s.pending = append(s.pending, dirIndent)
				forcedIndent = false
			}
			s.inPos = pos
			s.inLastNewline = pos
			return true
		default:
			return false
		}
	}
}

// flushIndentsTo queues the run of INDENT or DEDENT markers needed to move
// from the current indentLevel to newLevel. mathutil.Max picks out the
// magnitude of the (signed) delta, the same helper the teacher's
// backtracking parser uses for its own bookkeeping (p.maxIx/p.maxBack).
func (s *State) flushIndentsTo(newLevel int) {
	delta := newLevel - s.indentLevel
	count := mathutil.Max(delta, -delta)
	dir := dirIndent
	if delta < 0 {
		dir = dirDedent
	}
	for i := 0; i < count; i++ {
		s.pending = append(s.pending, dir)
	}
	s.indentLevel = newLevel
}

// readIndentDir drains one marker of the requested direction from the
// pending queue, calling readNewline first if the queue is currently
// empty. Any scanner advance made while doing so is rolled back on failure.
func (s *State) readIndentDir(dir indentDir) bool {
	snap := s.snapshot()
	if len(s.pending) == 0 {
		if !s.readNewline() {
			snap.revert()
			return false
		}
	}
	if len(s.pending) == 0 || s.pending[0] != dir {
		snap.revert()
		return false
	}
	s.pending = s.pending[1:]
	return true
}

func (s *State) readIndent() bool { return s.readIndentDir(dirIndent) }
func (s *State) readDedent() bool { return s.readIndentDir(dirDedent) }

// atEOF reports whether the scanner has consumed all input and the indent
// queue is fully drained — the terminal scanner state (spec §4.B).
func (s *State) atEOF() bool {
	return s.inPos >= len(s.src) && len(s.pending) == 0
}
