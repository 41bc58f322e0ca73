// Package tabscript transpiles TabScript, an indentation-based surface
// syntax, to TypeScript or JavaScript. It is a lexer-less, single-pass,
// backtracking recursive-descent parser that consumes input tokens and
// emits output tokens in the same pass, tracking source positions for
// source-map generation along the way.
package tabscript

import (
	"fmt"
	"strings"
)

// SupportedMajor/SupportedMinor are the header version this implementation
// understands (spec §6.1). A source file's major must match exactly; its
// minor must be less than or equal to SupportedMinor.
const (
	SupportedMajor = 1
	SupportedMinor = 0
)

// Options configures a single call to Transpile (spec §6.3).
type Options struct {
	// Debug enables the rule-by-rule trace of named parse methods. Pass true
	// for the built-in indented trace, or a Logger for structured output.
	Debug interface{}
	// Recover enables error recovery: a syntax error is recorded and
	// parsing resumes at the next statement instead of aborting.
	Recover bool
	// JS selects JavaScript output: type-level tokens are stripped and a
	// leading "use strict" is emitted. Without it, output is TypeScript.
	JS bool
	// TransformImport rewrites string-literal import paths, if set.
	TransformImport func(uri string) string
	// Whitespace selects the Renderer's spacing mode: "preserve" (default)
	// or "pretty".
	Whitespace string
	// LoadPlugin resolves "import plugin PATH { ... }" to an entry point.
	// Left nil, such imports fail with a recoverable parse error.
	LoadPlugin PluginLoader
	// Plugins run once, in order, before parsing starts, each free to
	// capture and replace any named parser method (spec §4.G).
	Plugins []PluginEntry
}

// Result is the outcome of a single Transpile call (spec §6.3/§6.4).
type Result struct {
	Code   string
	Errors []*ParseError
	Map    SourceMap
}

// Transpile parses src as TabScript and renders TypeScript or JavaScript.
// On a fatal error (bad header, space indentation) with Recover disabled,
// Errors is non-empty and Code is whatever was emitted before the abort. On
// recoverable errors with Recover enabled, Code is a best-effort rendering
// alongside a non-empty Errors.
func Transpile(src, name string, opts Options) (result Result) {
	state := newState(name, src, opts.Recover)
	p := &Parser{
		State:   state,
		opts:    &opts,
		methods: newMethodTable(),
		tracer:  newTracer(opts.Debug),
	}
	p.registerDefaultMethods()

	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(fatalError)
			if !ok {
				panic(r)
			}
			if fe.err != nil && (len(state.errs) == 0 || state.errs[len(state.errs)-1] != fe.err) {
				state.addError(fe.err)
			}
			code, sm := render(state.out, parseWhitespaceMode(opts.Whitespace))
			result = Result{Code: code, Errors: state.errs, Map: sm}
		}
	}()

	if err := p.applyPlugins(opts.Plugins); err != nil {
		state.addError(&ParseError{Message: fmt.Sprintf("plugin setup failed: %v", err)})
		return Result{Errors: state.errs}
	}

	if !p.parseMain() {
		code, sm := render(state.out, parseWhitespaceMode(opts.Whitespace))
		return Result{Code: code, Errors: state.errs, Map: sm}
	}

	code, sm := render(state.out, parseWhitespaceMode(opts.Whitespace))
	return Result{Code: code, Errors: state.errs, Map: sm}
}

// Parser is the recursive-descent Parser Core (component E). It embeds
// *State so every parseX method reaches the scanner/output primitives
// (read, peek, emit, snapshot, ...) directly as its own methods.
type Parser struct {
	*State

	opts      *Options
	methods   *methodTable
	tracer    *tracer
	ruleStack []string

	// pendingParamProps carries constructor-parameter-property state (spec
	// §4.E.13) across the small stretch of parsing between seeing
	// "constructor" and emitting its body. insideDerivedCtor is not read:
	// whether the class is derived is passed to parseConstructor directly.
	pendingParamProps []string
	insideDerivedCtor bool
}

func (p *Parser) parseError() *ParseError {
	rule := "statement"
	if n := len(p.ruleStack); n > 0 {
		rule = p.ruleStack[n-1]
	}
	line, col := p.position(p.inPos)
	return &ParseError{
		Offset:  p.inPos,
		Line:    line,
		Column:  col,
		Message: newParseErrorMessage(rule, p.src, p.inPos, p.expected.sorted()),
	}
}

// must panics with a ParseError built from the current expected-set when ok
// is false; recoverErrors is the only place that catches it (spec §4.D).
func (p *Parser) must(ok bool) {
	if !ok {
		panic(p.parseError())
	}
}

// mustValue is must's value-returning form, for read() results the caller
// needs (e.g. an identifier's text).
func mustValue[T any](p *Parser, v T, ok bool) T {
	if !ok {
		panic(p.parseError())
	}
	return v
}

// recoverErrors wraps fn, the only place a ParseError panic is ever caught
// short of the top-level Transpile recover (spec §7 propagation policy).
// With Recover disabled, errors propagate straight through to the caller of
// parseMain, which aborts the whole parse.
func (p *Parser) recoverErrors(fn func()) {
	if !p.opts.Recover {
		fn()
		return
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatalError); ok {
				panic(r)
			}
			perr, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			p.recoverFrom(perr)
		}
	}()
	fn()
}

// recoverFrom implements the skip-forward-to-resync loop of spec §4.E.15:
// consume INDENT/DEDENT markers to track net depth relative to where the
// failing statement began, stopping at a newline once that depth returns to
// zero (or at end of file). The discarded slice is recorded on the error,
// a stale output target is cleared, and a statement separator is ensured so
// the enclosing group's loop can continue cleanly.
//
// A failing statement almost always begins at the position the prior
// statement's own readNewline already classified as a newline, so
// readNewline's idempotency guard (scanner.go) would otherwise report
// "already at a newline" without consuming the failed line at all, making
// the depth==0 case below fire on the first iteration with zero forward
// progress. Clearing inLastNewline forces the first real scan instead of
// replaying that stale answer.
func (p *Parser) recoverFrom(perr *ParseError) {
	start := p.inPos
	depth := 0
	p.inLastNewline = -1
loop:
	for !p.atEOF() {
		switch {
		case p.readIndent():
			depth++
		case depth > 0 && p.readDedent():
			depth--
		case depth == 0 && p.readNewline():
			break loop
		default:
			if p.inPos >= len(p.src) {
				break loop
			}
			p.inPos++
			p.inLastNewline = -1
		}
	}
	perr.RecoverSkip = p.src[start:p.inPos]
	p.addError(perr)
	p.clearTarget()
	if !p.out.endsWith(";") {
		p.emit(";")
	}
}

// registerDefaultMethods installs the built-in implementation of every
// named, plugin-overridable parse rule (spec §4.G: "every parseX method [is
// exposed] as an assignable, named slot").
func (p *Parser) registerDefaultMethods() {
	p.Replace("Statement", (*Parser).parseStatementImpl)
	p.Replace("Expression", (*Parser).parseExpressionImpl)
	p.Replace("Type", (*Parser).parseTypeImpl)
	p.Replace("VarDecl", (*Parser).parseVarDeclImpl)
	p.Replace("Function", func(pp *Parser) bool { return pp.parseFunctionImpl(true) })
	p.Replace("Class", (*Parser).parseClassImpl)
	p.Replace("For", (*Parser).parseForImpl)
	p.Replace("Switch", (*Parser).parseSwitchImpl)
	p.Replace("Try", (*Parser).parseTryImpl)
	p.Replace("Import", (*Parser).parseImportImpl)
}

// parseMain is the parse entry point (spec §4.E.2).
func (p *Parser) parseMain() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if fe, isFatal := r.(fatalError); isFatal {
				panic(fe)
			}
			if perr, isParseErr := r.(*ParseError); isParseErr {
				p.addError(perr)
				ok = false
				return
			}
			panic(r)
		}
	}()

	if p.opts.JS {
		p.emit(`"use strict";`)
	}

	p.must(p.parseHeader())

	for !p.atEOF() {
		p.recoverErrors(func() {
			p.must(p.call("Statement"))
			p.must(p.readNewline() || p.atEOF())
		})
	}
	return true
}

// parseHeader consumes the mandatory "tabscript X.Y" header line and its
// optional trailing feature flags (spec §6.1). A version mismatch is a
// fatal, non-recoverable error.
func (p *Parser) parseHeader() bool {
	if !p.readKeyword("tabscript") {
		return false
	}
	verTok, ok := p.read(patNumber)
	if !ok {
		return false
	}
	major, minor, ok := splitVersion(verTok)
	if !ok {
		return false
	}
	if major != SupportedMajor || minor > SupportedMinor {
		perr := &ParseError{
			Offset:  p.inPos,
			Message: fmt.Sprintf("unsupported tabscript version %s (supports %d.0-%d.%d)", verTok, SupportedMajor, SupportedMajor, SupportedMinor),
		}
		perr.Line, perr.Column = p.position(p.inPos)
		panic(fatalError{perr})
	}
	for {
		if _, ok := p.read(patIdentifier); ok {
			if p.readLiteral("=") {
				p.must(p.parseHeaderFlagValue())
			}
			continue
		}
		break
	}
	p.must(p.readNewline())
	return true
}

func (p *Parser) parseHeaderFlagValue() bool {
	if _, ok := p.read(patString, patNumber, patIdentifier); ok {
		return true
	}
	return false
}

func splitVersion(v string) (major, minor int, ok bool) {
	parts := strings.SplitN(v, ".", 2)
	major, err := atoiPrefix(parts[0])
	if err != nil {
		return 0, 0, false
	}
	if len(parts) == 1 {
		return major, 0, true
	}
	minor, err = atoiPrefix(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}

func atoiPrefix(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a number: %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
