package tabscript

import "github.com/tabscript-lang/tsc/internal/litvalue"

// parseStatementImpl is the default "Statement" method. It dispatches to one
// of the statement kinds in spec §4.E.3's order, then applies the shared
// finalization rule: append ";" if the statement emitted text that doesn't
// already end a block or statement, otherwise (a pure type-level statement)
// clear the stale output target so the next statement maps to its own line.
func (p *Parser) parseStatementImpl() bool {
	snap := p.snapshot()
	if !p.dispatchStatement() {
		return false
	}
	if snap.hasOutput() {
		if !p.out.endsWith(";") && !p.out.endsWith("}") {
			p.emit(";")
		}
	} else {
		p.clearTarget()
	}
	return true
}

func (p *Parser) dispatchStatement() bool {
	switch {
	case p.parseReturn():
		return true
	case p.parseThrow():
		return true
	case p.parseTypeDecl():
		return true
	case p.parseExport():
		return true
	case p.call("Import"):
		return true
	case p.parseDoWhile():
		return true
	case p.parseIfWhile():
		return true
	case p.call("For"):
		return true
	case p.call("Try"):
		return true
	case p.call("Function"):
		return true
	case p.call("Class"):
		return true
	case p.call("Switch"):
		return true
	case p.parseEnum():
		return true
	case p.parseDeclare():
		return true
	case p.call("VarDecl"):
		return true
	default:
		return p.parseExpressionSeq()
	}
}

func (p *Parser) parseReturn() bool {
	var kw string
	switch {
	case p.readKeyword("return"):
		kw = "return"
	case p.readKeyword("yield"):
		kw = "yield"
	default:
		return false
	}
	p.clearTarget()
	p.emit(kw)
	if !p.peekNewline() {
		exprSnap := p.snapshot()
		p.emit(" ")
		if !p.parseExpression() {
			exprSnap.revert()
		}
	}
	return true
}

func (p *Parser) parseThrow() bool {
	if !p.readKeyword("throw") {
		return false
	}
	p.clearTarget()
	p.emit("throw ")
	p.must(p.parseExpression())
	return true
}

// parseTypeDecl parses "type IDENT <TEMPLATE>? = TYPE" (spec §4.E.3): purely
// type-level, stripped entirely in JS mode.
func (p *Parser) parseTypeDecl() bool {
	if !p.readKeyword("type") {
		return false
	}
	outSnap := p.snapshot()
	identText, identOk := p.read(patIdentifier)
	name := mustValue(p, identText, identOk)
	p.clearTarget()
	p.emit("type " + name)
	if p.peekLiteral("<") {
		p.must(p.parseTemplateParams())
	}
	p.must(p.readLiteral("="))
	p.emit("=")
	p.must(p.parseType())
	if p.opts.JS {
		outSnap.revertOutput()
		p.clearTarget()
	}
	return true
}

func (p *Parser) parseExport() bool {
	if !p.readKeyword("export") {
		return false
	}
	p.clearTarget()
	p.emit("export ")
	p.must(p.call("Statement"))
	return true
}

func (p *Parser) parseDoWhile() bool {
	if !p.readKeyword("do") {
		return false
	}
	p.clearTarget()
	p.emit("do ")
	p.must(p.parseStatementOrBlock())
	snap := p.snapshot()
	p.readNewline()
	if !p.readKeyword("while") {
		snap.revert()
		p.must(p.readKeyword("while"))
	}
	p.clearTarget()
	p.emit("while(")
	p.must(p.parseExpression())
	p.clearTarget()
	p.emit(")")
	return true
}

// parseIfWhile parses "if"/"while" EXPR BODY ("else" BODY)?, adding the
// parentheses around the condition itself since TabScript source has none
// (spec §4.E.3).
func (p *Parser) parseIfWhile() bool {
	var kw string
	switch {
	case p.readKeyword("if"):
		kw = "if"
	case p.readKeyword("while"):
		kw = "while"
	default:
		return false
	}
	p.clearTarget()
	p.emit(kw + " (")
	p.must(p.parseExpression())
	p.clearTarget()
	p.emit(")")
	p.must(p.parseStatementOrBlock())

	if kw == "if" {
		elseSnap := p.snapshot()
		p.readNewline()
		if p.readKeyword("else") {
			p.clearTarget()
			p.emit("else ")
			p.must(p.parseIfWhileOrBlock())
		} else {
			elseSnap.revert()
		}
	}
	return true
}

// parseIfWhileOrBlock lets "else if" chain without an extra block wrapper.
func (p *Parser) parseIfWhileOrBlock() bool {
	snap := p.snapshot()
	if p.readKeyword("if") {
		snap.revert()
		return p.parseIfWhile()
	}
	return p.parseStatementOrBlock()
}

// parseForImpl tries the for-of/for-in head first, then the C-style head,
// each independently backtrackable (spec §4.E.5).
func (p *Parser) parseForImpl() bool {
	snap := p.snapshot()
	if p.readKeyword("for") && p.parseForOfHead() {
		p.must(p.parseStatementOrBlock())
		return true
	}
	snap.revert()
	if !p.readKeyword("for") {
		return false
	}
	p.must(p.parseForClassicHead())
	p.must(p.parseStatementOrBlock())
	return true
}

func (p *Parser) parseForOfHead() bool {
	p.clearTarget()
	p.emit("for (")
	if !p.parseForBinding() {
		return false
	}
	var kw string
	switch {
	case p.readKeyword("of"):
		kw = "of"
	case p.readKeyword("in"):
		kw = "in"
	default:
		return false
	}
	p.emit(" " + kw + " ")
	if !p.parseExpression() {
		return false
	}
	p.clearTarget()
	p.emit(")")
	return true
}

func (p *Parser) parseForBinding() bool {
	name, ok := p.read(patIdentifier)
	if !ok {
		return false
	}
	if p.readLiteral(":") {
		kind := "const"
		if p.readLiteral(":") {
			kind = "let"
		}
		p.emit(kind + " " + name)
		return true
	}
	p.emit(name)
	return true
}

func (p *Parser) parseForClassicHead() bool {
	p.clearTarget()
	p.emit("for (")
	if !p.peekLiteral(";") {
		if !p.call("VarDecl") {
			p.parseExpressionSeq()
		}
	}
	p.must(p.readLiteral(";"))
	p.clearTarget()
	p.emit(";")
	if !p.peekLiteral(";") {
		p.must(p.parseExpression())
	}
	p.must(p.readLiteral(";"))
	p.clearTarget()
	p.emit(";")
	p.parseExpressionSeq()
	p.clearTarget()
	p.emit(")")
	return true
}

// parseSwitchImpl parses "switch EXPR { CASE+ }" (spec §4.E.6).
func (p *Parser) parseSwitchImpl() bool {
	if !p.readKeyword("switch") {
		return false
	}
	p.clearTarget()
	p.emit("switch(")
	p.must(p.parseExpression())
	p.clearTarget()
	p.emit(")")
	p.must(p.parseGroup(groupOptions{
		open: "{", close: "}", allowImplicit: true,
		jsOpen: "{", jsClose: "}",
	}, p.parseSwitchCase))
	return true
}

func (p *Parser) parseSwitchCase() bool {
	if p.readLiteral("*") {
		p.clearTarget()
		p.emit("default:{")
	} else {
		snap := p.snapshot()
		p.clearTarget()
		p.emit("case ")
		if !p.parseExpression() {
			snap.revert()
			return false
		}
		p.readLiteral(":")
		p.clearTarget()
		p.emit(":{")
	}
	p.parseCaseBody()
	p.clearTarget()
	p.emit("break;}")
	return true
}

// parseCaseBody parses either an indented group of statements or a single
// statement, without itself emitting delimiters (the caller already emitted
// the opening "{" for the case).
func (p *Parser) parseCaseBody() bool {
	if p.readIndent() {
		for !p.peekGroupDedent() {
			p.recoverErrors(func() {
				p.must(p.call("Statement"))
				p.must(p.readNewline() || p.atEOF())
			})
		}
		p.must(p.readDedent())
		return true
	}
	return p.call("Statement")
}

// parseTryImpl parses "try BODY (catch ...)? (finally ...)?", synthesizing
// an empty catch when neither is present (spec §4.E.3).
func (p *Parser) parseTryImpl() bool {
	if !p.readKeyword("try") {
		return false
	}
	p.clearTarget()
	p.emit("try ")
	p.must(p.parseStatementOrBlock())

	hasCatch, hasFinally := false, false

	catchSnap := p.snapshot()
	p.readNewline()
	if p.readKeyword("catch") {
		hasCatch = true
		p.clearTarget()
		name, ok := p.read(patIdentifier)
		if !ok {
			name = "e"
		}
		p.emit("catch(" + name)
		if p.readLiteral(":") {
			p.must(p.parseType())
		}
		p.emit(")")
		p.must(p.parseStatementOrBlock())
	} else {
		catchSnap.revert()
	}

	finallySnap := p.snapshot()
	p.readNewline()
	if p.readKeyword("finally") {
		hasFinally = true
		p.clearTarget()
		p.emit("finally ")
		p.must(p.parseStatementOrBlock())
	} else {
		finallySnap.revert()
	}

	if !hasCatch && !hasFinally {
		p.clearTarget()
		p.emit("catch(e){}")
	}
	return true
}

// parseImportImpl handles both ordinary imports and "import plugin" (spec
// §4.E.3, §4.G).
func (p *Parser) parseImportImpl() bool {
	if !p.readKeyword("import") {
		return false
	}
	if p.readKeyword("plugin") {
		return p.parsePluginImport()
	}
	if text, ok := p.read(patString); ok {
		p.clearTarget()
		p.emit("import ")
		p.emit(p.rewriteImportPath(text))
		return true
	}
	return p.parseImportRest()
}

func (p *Parser) parseImportRest() bool {
	p.clearTarget()
	p.emit("import ")
	switch {
	case p.readLiteral("*"):
		p.emit("* ")
		p.must(p.readKeyword("as"))
		name, ok := p.read(patIdentifier)
		p.must(ok)
		p.emit("as " + name + " ")
	default:
		namedSnap := p.snapshot()
		if p.parseGroup(groupOptions{
			open: "{", close: "}", next: ",",
			jsOpen: "{", jsClose: "}", jsNext: ",",
		}, func() bool {
			name, ok := p.read(patIdentifier)
			if !ok {
				return false
			}
			p.emit(name)
			return true
		}) {
			p.emit(" ")
		} else {
			namedSnap.revert()
			if name, ok := p.read(patIdentifier); ok {
				p.emit(name + " ")
			}
		}
	}
	p.must(p.readKeyword("from"))
	p.emit("from ")
	text, ok := p.read(patString)
	p.must(ok)
	p.emit(p.rewriteImportPath(text))
	return true
}

func (p *Parser) rewriteImportPath(lit string) string {
	if p.opts.TransformImport == nil || len(lit) < 2 {
		return lit
	}
	quote := lit[0]
	inner := lit[1 : len(lit)-1]
	return string(quote) + p.opts.TransformImport(inner) + string(quote)
}

// parsePluginImport implements the "import plugin STRING { OBJECT? }" form
// (spec §4.G): the statement's own output is reverted (plugin imports emit
// no runtime code), the literal options object is captured as raw source and
// evaluated via internal/litvalue, and the loader's entry point runs with
// the resulting options.
func (p *Parser) parsePluginImport() bool {
	outSnap := p.snapshot()
	path, ok := p.read(patString)
	p.must(ok)

	var pluginOpts interface{}
	if p.peekLiteral("{") {
		raw, ok := p.scanBalancedBraces()
		p.must(ok)
		v, err := litvalue.Parse(raw)
		if err != nil {
			p.addError(&ParseError{Message: "import plugin: invalid options literal: " + err.Error()})
		} else {
			pluginOpts = v
		}
	}
	outSnap.revertOutput()

	if p.opts.LoadPlugin == nil {
		p.addError(&ParseError{Message: "import plugin: no plugin loader configured"})
		return true
	}
	unquoted := path
	if len(unquoted) >= 2 {
		unquoted = unquoted[1 : len(unquoted)-1]
	}
	entry, err := p.opts.LoadPlugin(unquoted)
	if err != nil {
		p.addError(&ParseError{Message: "import plugin: " + err.Error()})
		return true
	}
	if err := entry(p, p.opts, pluginOpts); err != nil {
		p.addError(&ParseError{Message: "import plugin: " + err.Error()})
	}
	return true
}

// scanBalancedBraces consumes a "{"-delimited span by brace depth rather
// than grammar, capturing its raw source text for the litvalue evaluator —
// the options literal is data, not code the parser needs to emit.
func (p *Parser) scanBalancedBraces() (string, bool) {
	if p.inPos >= len(p.src) || p.src[p.inPos] != '{' {
		return "", false
	}
	start := p.inPos
	depth := 0
	i := p.inPos
	for i < len(p.src) {
		switch p.src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				i++
				text := p.src[start:i]
				p.inPos = i
				p.inPos += len(patWhitespace.match(p.src, p.inPos))
				return text, true
			}
		}
		i++
	}
	return "", false
}

func (p *Parser) parseEnum() bool {
	if !p.readKeyword("enum") {
		return false
	}
	identText, identOk := p.read(patIdentifier)
	name := mustValue(p, identText, identOk)
	p.clearTarget()
	p.emit("enum " + name)
	p.must(p.parseGroup(groupOptions{
		open: "{", close: "}", next: ",",
		jsOpen: "{", jsClose: "}", jsNext: ",",
		allowImplicit: true,
	}, p.parseEnumMember))
	return true
}

func (p *Parser) parseEnumMember() bool {
	name, ok := p.read(patIdentifier, patString)
	if !ok {
		return false
	}
	p.emit(name)
	if p.readLiteral("=") {
		p.emit("=")
		p.must(p.parseExpression())
	}
	return true
}

// parseDeclare strips "declare STATEMENT" entirely (spec §4.E.3: ambient
// declarations are pure type-level).
func (p *Parser) parseDeclare() bool {
	if !p.readKeyword("declare") {
		return false
	}
	outSnap := p.snapshot()
	p.must(p.call("Statement"))
	outSnap.revertOutput()
	p.clearTarget()
	return true
}

// parseVarDeclImpl parses "IDENT : TYPE? = INIT?" (spec §4.E.4). A second,
// immediately following colon selects `let`; a single colon selects `const`.
func (p *Parser) parseVarDeclImpl() bool {
	snap := p.snapshot()
	name, ok := p.read(patIdentifier)
	if !ok {
		return false
	}
	if !p.readLiteral(":") {
		snap.revert()
		return false
	}
	kind := "const"
	if p.readLiteral(":") {
		kind = "let"
	}
	p.clearTarget()
	p.emit(kind + " " + name)

	if !p.peekLiteral("=") {
		typeSnap := p.snapshot()
		if !p.opts.JS {
			p.emit(": ")
		}
		if !p.parseType() {
			typeSnap.revert()
		} else if p.opts.JS {
			typeSnap.revertOutput()
		}
	}

	if p.readLiteral("=") {
		p.clearTarget()
		p.emit("=")
		p.must(p.parseExpression())
	}
	return true
}

// parseExpressionSeq parses the fallback "EXPR (, EXPR)*" statement form.
func (p *Parser) parseExpressionSeq() bool {
	if !p.parseExpression() {
		return false
	}
	for p.readLiteral(",") {
		p.clearTarget()
		p.emit(",")
		p.must(p.parseExpression())
	}
	return true
}
