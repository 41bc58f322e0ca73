package tabscript

// parseTypeImpl is the default "Type" method. Every type production is
// parsed the same way regardless of output mode so that input is always
// consumed correctly; in JS mode the emitted tokens are discarded afterward
// via revertOutput rather than suppressed token-by-token, which keeps the
// grammar itself mode-agnostic (spec §4.E.12: "routed through the strip in
// JS mode mechanism").
func (p *Parser) parseTypeImpl() bool {
	outSnap := p.snapshot()
	if !p.parseTypeBody() {
		return false
	}
	if p.opts.JS {
		outSnap.revertOutput()
	}
	return true
}

func (p *Parser) parseType() bool { return p.call("Type") }

// parseTypeBody parses a full type expression: a conditional wrapper around
// a union/intersection chain of postfix-suffixed primaries.
func (p *Parser) parseTypeBody() bool {
	if !p.parseTypeUnion() {
		return false
	}
	snap := p.snapshot()
	if p.readKeyword("extends") {
		p.emit(" extends ")
		if p.parseTypeUnion() && p.readLiteral("?") {
			p.emit("?")
			p.must(p.parseType())
			p.must(p.readLiteral(":"))
			p.emit(":")
			p.must(p.parseType())
			return true
		}
		snap.revert()
		return true
	}
	return true
}

// parseTypeUnion handles "or"/"and" chains, substituted to "|"/"&" (spec
// §4.E.12), and the postfix-is-predicate form `IDENT is TYPE`.
func (p *Parser) parseTypeUnion() bool {
	if !p.parseTypePostfix() {
		return false
	}
	for {
		if p.readKeyword("or") {
			p.emit("|")
			p.must(p.parseTypePostfix())
			continue
		}
		if p.readKeyword("and") {
			p.emit("&")
			p.must(p.parseTypePostfix())
			continue
		}
		if p.readKeyword("is") {
			p.emit(" is ")
			p.must(p.parseTypePostfix())
			continue
		}
		break
	}
	return true
}

// parseTypePostfix handles array ("[]") and indexed-access ("[TYPE]")
// suffixes on a primary type.
func (p *Parser) parseTypePostfix() bool {
	if !p.parseTypePrimary() {
		return false
	}
	for {
		snap := p.snapshot()
		if !p.readLiteral("[") {
			break
		}
		if p.readLiteral("]") {
			p.clearTarget()
			p.emit("[]")
			continue
		}
		if p.parseType() && p.readLiteral("]") {
			p.clearTarget()
			p.emit("]")
			continue
		}
		snap.revert()
		break
	}
	return true
}

// parseTypePrimary handles named types, object type literals, tuples,
// function types, parenthesized types, literal types, typeof, and keyof
// (spec §4.E.12).
func (p *Parser) parseTypePrimary() bool {
	if p.readKeyword("typeof") {
		p.emit("typeof ")
		p.must(p.parseExpression())
		return true
	}
	if p.readKeyword("keyof") {
		p.emit("keyof ")
		p.must(p.parseType())
		return true
	}
	if p.parseFunctionTypeLiteral() {
		return true
	}
	if p.parseGroup(groupOptions{open: "(", close: ")", jsOpen: "(", jsClose: ")"}, p.parseType) {
		return true
	}
	if p.parseGroup(groupOptions{
		open: "[", close: "]", next: ",",
		jsOpen: "[", jsClose: "]", jsNext: ",",
	}, p.parseType) {
		return true
	}
	if p.parseGroup(groupOptions{
		open: "{", close: "}", next: ",",
		jsOpen: "{", jsClose: "}", jsNext: ",",
		allowImplicit: true,
	}, p.parseTypeMember) {
		return true
	}
	if text, ok := p.read(patString, patNumber); ok {
		p.emit(text)
		return true
	}
	if text, ok := p.read(patIdentifier); ok {
		p.emit(text)
		for p.readLiteral(".") {
			p.emit(".")
			p.must(p.readEmit(patIdentifier))
		}
		if p.readLiteral("<") {
			p.emit("<")
			p.must(p.parseType())
			for p.readLiteral(",") {
				p.emit(",")
				p.must(p.parseType())
			}
			p.must(p.readLiteral(">"))
			p.emit(">")
		}
		return true
	}
	return false
}

// readEmit reads m and emits its matched text verbatim, failing (without
// emitting) if m does not match.
func (p *Parser) readEmit(m matcher) bool {
	text, ok := p.read(m)
	if !ok {
		return false
	}
	p.emit(text)
	return true
}

// parseFunctionTypeLiteral parses "|PARAMS|: TYPE", emitted as "(PARAMS)=>T"
// (spec §4.E.12: "Arrow return in function types").
func (p *Parser) parseFunctionTypeLiteral() bool {
	snap := p.snapshot()
	if !p.parseGroup(groupOptions{
		open: "|", close: "|", next: ",",
		jsOpen: "(", jsClose: ")", jsNext: ",",
	}, p.parseTypeParam) {
		return false
	}
	if !p.readLiteral(":") {
		snap.revert()
		return false
	}
	p.clearTarget()
	p.emit("=>")
	p.must(p.parseType())
	return true
}

func (p *Parser) parseTypeParam() bool {
	name, ok := p.read(patIdentifier)
	if !ok {
		return false
	}
	p.emit(name)
	if p.readLiteral(":") {
		p.emit(":")
		p.must(p.parseType())
	}
	return true
}

// parseTypeMember parses one member of an object type literal: IDENT "?"? ":" TYPE.
func (p *Parser) parseTypeMember() bool {
	name, ok := p.read(patIdentifier, patString)
	if !ok {
		return false
	}
	p.emit(name)
	if p.readLiteral("?") {
		p.emit("?")
	}
	p.must(p.readLiteral(":"))
	p.emit(":")
	p.must(p.parseType())
	return true
}
