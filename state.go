package tabscript

import (
	"golang.org/x/exp/slices"
	mtoken "modernc.org/token"
)

// indentDir is the direction of a synthesized indent-queue marker.
type indentDir byte

const (
	dirIndent indentDir = 'I'
	dirDedent indentDir = 'D'
)

// State aggregates the scanner cursor, the pending-indent queue, the output
// buffer, the output target position, and the accumulated errors — every
// piece of mutable machinery a parse needs, per spec §3.1/§3.3. It is
// created once per transpilation, mutated throughout the parse, then handed
// (read-only) to the Renderer.
type State struct {
	src string

	inPos          int
	indentLevel    int
	pending        []indentDir
	inLastNewline  int // sentinel: last offset at which readNewline() succeeded
	outTargetPos   int // -1 means "unset"
	expected       *expectedSet
	errs           []*ParseError
	out            *outputBuffer
	file           *mtoken.File
	recoverEnabled bool
}

const noTarget = -1

func newState(name, src string, recover bool) *State {
	file := mtoken.NewFile(name, len(src))
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			file.AddLine(i + 1)
		}
	}
	return &State{
		src:            src,
		inLastNewline:  -1,
		outTargetPos:   noTarget,
		expected:       newExpectedSet(),
		out:            newOutputBuffer(),
		file:           file,
		recoverEnabled: recover,
	}
}

// position resolves a byte offset to 1-based line/column via the
// modernc.org/token.File position cache (component J, the Source Position
// Cache), rather than hand-rolling a periodic-cache-plus-linear-scan.
func (s *State) position(offset int) (line, col int) {
	p := s.file.PositionFor(mtoken.Pos(offset+1), true)
	return p.Line, p.Column
}

// emit appends literal output text, realizing any pending output target as
// a MapMark immediately before it (spec §4.C push_text / §3.1 Output Target).
func (s *State) emit(text string) {
	if text == "" {
		return
	}
	if s.outTargetPos != noTarget {
		line, col := s.position(s.outTargetPos)
		s.out.pushMapMark(s.outTargetPos, line, col)
		s.outTargetPos = noTarget
	}
	s.out.pushText(text)
}

// emitMapMark forces a (in, out) pair at render time regardless of the
// pending output target.
func (s *State) emitMapMark(offset int) {
	line, col := s.position(offset)
	s.out.pushMapMark(offset, line, col)
}

// emitNoMapMark repositions the renderer's target line/col without
// recording a map pair; unlike the positive form it is not cleared by the
// next read, so a following token may inherit it again.
func (s *State) emitNoMapMark(offset int) {
	line, col := s.position(offset)
	s.out.pushNoMapMark(offset, line, col)
}

// clearTarget drops any pending output target without emitting it, used by
// constructs whose closing delimiter should not inherit a stale position
// (spec §4.C: "render-time construct boundaries... clear" it).
func (s *State) clearTarget() {
	s.outTargetPos = noTarget
}

func (s *State) addError(err *ParseError) {
	s.errs = append(s.errs, err)
}

// Snapshot is a captured, value-typed copy of every field a parse method
// needs to restore the parser to an exact prior point (spec §3.3: "a
// snapshot is... valid only until the state's offsets/length monotonically
// pass them"). Capturing the pending-indent queue by slices.Clone (rather
// than re-slicing) avoids the revert aliasing a queue the parser has since
// mutated in place.
type Snapshot struct {
	state *State

	inPos         int
	indentLevel   int
	pending       []indentDir
	inLastNewline int
	outTargetPos  int
	outLen        int
}

func (s *State) snapshot() Snapshot {
	return Snapshot{
		state:         s,
		inPos:         s.inPos,
		indentLevel:   s.indentLevel,
		pending:       slices.Clone(s.pending),
		inLastNewline: s.inLastNewline,
		outTargetPos:  s.outTargetPos,
		outLen:        s.out.length(),
	}
}

// revert restores every captured field, including truncating the output
// buffer — full backtracking to the snapshot point.
func (snap Snapshot) revert() {
	s := snap.state
	s.inPos = snap.inPos
	s.indentLevel = snap.indentLevel
	s.pending = slices.Clone(snap.pending)
	s.inLastNewline = snap.inLastNewline
	s.outTargetPos = snap.outTargetPos
	s.out.truncate(snap.outLen)
}

// revertOutput restores only outTargetPos and truncates the output buffer,
// leaving the scanner cursor and indent queue untouched. It returns the
// discarded tokens so a caller (typically a plugin) can inspect the
// rendered form of speculative output before discarding it.
func (snap Snapshot) revertOutput() []outItem {
	s := snap.state
	discarded := s.out.since(snap.outLen)
	s.outTargetPos = snap.outTargetPos
	s.out.truncate(snap.outLen)
	return discarded
}

// hasOutput reports whether any Text was appended to the output buffer
// since the snapshot was taken.
func (snap Snapshot) hasOutput() bool {
	for _, it := range snap.state.out.items[snap.outLen:] {
		if it.kind == outText {
			return true
		}
	}
	return false
}
