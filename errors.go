package tabscript

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// ParseError reports a single failure to match the grammar at a source
// position. Errors carry enough context (offset, resolved line/column, a
// window of upcoming input, and the set of things that would have matched)
// to be useful on their own, without a surrounding toolchain.
type ParseError struct {
	Offset int
	Line   int
	Column int
	// Message is "Could not parse <rule>\n  Input is: <window>\n  Expecting one of: <sorted set>".
	Message string
	// RecoverSkip holds the source slice discarded while resynchronizing
	// after this error, set only when recovery actually skipped text.
	RecoverSkip string
}

func (e *ParseError) Error() string { return e.Message }

// expectedSet accumulates the display names of patterns/literals that failed
// to match at the current input position. It resets on every successful
// advance (invariant: "Expected-set reset" in spec §8.1) and is rendered to
// an error message in stable lexicographic order.
type expectedSet struct {
	names map[string]struct{}
}

func newExpectedSet() *expectedSet {
	return &expectedSet{names: map[string]struct{}{}}
}

func (e *expectedSet) add(name string) {
	e.names[name] = struct{}{}
}

func (e *expectedSet) reset() {
	for k := range e.names {
		delete(e.names, k)
	}
}

// sorted returns the expected-set names in stable lexicographic order. The
// set is already duplicate-free (it's built from map keys), so sorting is
// all that's needed; slices.Sort is the same x/exp/slices package state.go
// already uses for Snapshot's pending-queue clone.
func (e *expectedSet) sorted() []string {
	if len(e.names) == 0 {
		return nil
	}
	names := make([]string, 0, len(e.names))
	for n := range e.names {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// window returns a short, single-line preview of upcoming input starting at
// pos, used in ParseError.Message's "Input is:" line.
func window(src string, pos int) string {
	const maxLen = 40
	if pos > len(src) {
		pos = len(src)
	}
	rest := src[pos:]
	for i, r := range rest {
		if r == '\n' {
			rest = rest[:i]
			break
		}
	}
	if len(rest) > maxLen {
		rest = rest[:maxLen] + "..."
	}
	return rest
}

func newParseErrorMessage(rule string, src string, pos int, expected []string) string {
	msg := fmt.Sprintf("Could not parse %s\n  Input is: %q", rule, window(src, pos))
	if len(expected) > 0 {
		msg += fmt.Sprintf("\n  Expecting one of: %v", expected)
	}
	return msg
}
