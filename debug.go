package tabscript

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"modernc.org/strutil"
)

// Logger is the structured-logging half of the `debug` option (spec §6.3:
// "debug: boolean | logger"). Any *charmbracelet/log.Logger satisfies it;
// callers that only want the built-in indented trace pass `debug: true`
// instead and never need this interface.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
}

// tracer is component I (§4.I of SPEC_FULL.md): a pure side channel that
// observes entry/exit of the named parse methods dispatched by Parser.call
// without touching parser state. read/peek outcomes are not traced: the
// token method has no caller. With debug=true it renders a nested call trace through
// modernc.org/strutil.IndentFormatter, whose %i/%u verbs track indent depth
// automatically — the library replacement for the teacher's flat, unindented
// trc() helper (v2/etc.go), which does not nest. With a Logger supplied, it
// forwards the same events as structured Debug calls instead.
type tracer struct {
	f      strutil.Formatter
	logger Logger
	depth  int
}

func newTracer(debug interface{}) *tracer {
	switch v := debug.(type) {
	case nil:
		return nil
	case bool:
		if !v {
			return nil
		}
		return &tracer{f: strutil.IndentFormatter(os.Stderr, "\t")}
	case Logger:
		return &tracer{logger: v}
	default:
		return nil
	}
}

// DefaultLogger returns a *charmbracelet/log.Logger suitable for passing as
// Options.Debug when structured trace output (rather than the built-in
// indented trace) is wanted.
func DefaultLogger() Logger {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{ReportTimestamp: false})
}

func (t *tracer) enter(rule string) {
	if t == nil {
		return
	}
	if t.logger != nil {
		t.logger.Debug("enter", "rule", rule, "depth", t.depth)
	} else {
		t.f.Format("%i-> %s\n", rule)
	}
	t.depth++
}

func (t *tracer) leave(rule string, ok bool) {
	if t == nil {
		return
	}
	t.depth--
	if t.logger != nil {
		t.logger.Debug("leave", "rule", rule, "ok", ok, "depth", t.depth)
	} else {
		t.f.Format("%u<- %s ok=%v\n", rule, ok)
	}
}

func (t *tracer) token(rule, text string, ok bool) {
	if t == nil {
		return
	}
	if t.logger != nil {
		t.logger.Debug("read", "rule", rule, "text", text, "ok", ok)
		return
	}
	t.f.Format("  %s %q ok=%v\n", rule, text, ok)
}
