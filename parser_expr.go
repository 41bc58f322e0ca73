package tabscript

// operatorSubstitutions is the §6.2 table: source spelling to emitted
// spelling, applied in both TS and JS output modes.
var operatorSubstitutions = map[string]string{
	"or":  "||",
	"and": "&&",
	"==":  "===",
	"!=":  "!==",
	"=~":  "==",
	"!~":  "!=",

	"%mod":                  "%",
	"%bit_or":               "|",
	"%bit_and":              "&",
	"%bit_xor":              "^",
	"%bit_not":              "~",
	"%shift_left":           "<<",
	"%shift_right":          ">>",
	"%unsigned_shift_right": ">>>",
}

func substituteOperator(op string) string {
	if out, ok := operatorSubstitutions[op]; ok {
		return out
	}
	return op
}

// parseExpressionImpl is the default "Expression" method (spec §4.E.8).
func (p *Parser) parseExpressionImpl() bool {
	snap := p.snapshot()
	if !p.parsePrefixAndPrimary() {
		snap.revert()
		return false
	}
	p.parsePostfixLoop()
	p.parseTrailingQuestion()
	return true
}

// parsePrefixAndPrimary consumes zero or more prefix operators, then a
// mandatory primary. On failure (no primary found) it behaves as failure for
// the whole chain, even if prefix operators were consumed — callers that
// need the no-leak guarantee wrap this in a snapshot (parseExpressionImpl is
// itself always called from a snapshot-protected alternation site).
func (p *Parser) parsePrefixAndPrimary() bool {
	for {
		if p.readLiteral("%bit_not") {
			p.emit("~")
			continue
		}
		if text, ok := p.read(patExpressionPrefix); ok {
			p.emit(substituteOperator(text))
			continue
		}
		break
	}
	return p.parsePrimary()
}

// parsePrimary tries, in order: class, function, identifier, array literal,
// object literal, string, backtick-string, number, parenthesized sequence,
// regexp (spec §4.E.8.2).
func (p *Parser) parsePrimary() bool {
	if p.call("Class") {
		return true
	}
	if p.parseFunctionImpl(false) {
		return true
	}
	if text, ok := p.read(patIdentifier); ok {
		p.emit(text)
		return true
	}
	if p.parseArrayLiteral() {
		return true
	}
	if p.parseObjectLiteral() {
		return true
	}
	if text, ok := p.read(patString); ok {
		p.emit(text)
		return true
	}
	if p.parseBacktickString() {
		return true
	}
	if text, ok := p.read(patNumber); ok {
		p.emit(text)
		return true
	}
	if p.parseParenSequence() {
		return true
	}
	if text, ok := p.read(patRegexp); ok {
		p.emit(text)
		return true
	}
	return false
}

// parseParenSequence is the generic "(" EXPR ("," EXPR)* ")" primary.
func (p *Parser) parseParenSequence() bool {
	return p.parseGroup(groupOptions{
		open: "(", close: ")", next: ",",
		jsOpen: "(", jsClose: ")", jsNext: ",",
	}, p.parseExpression)
}

// parseExpression calls the current (possibly plugin-replaced) Expression
// method, the only way Parser Core code itself recurses into expressions.
func (p *Parser) parseExpression() bool { return p.call("Expression") }

// parsePostfixLoop runs the postfix chain until none of its forms match
// (spec §4.E.8.3).
func (p *Parser) parsePostfixLoop() {
	for {
		if p.tryCall() {
			continue
		}
		if p.tryDotCall() {
			continue
		}
		if p.tryTaggedTemplate() {
			continue
		}
		if p.tryIndex() {
			continue
		}
		if p.tryPostfixIncDec() {
			continue
		}
		if p.tryAs() {
			continue
		}
		if p.tryOptionalChain() {
			continue
		}
		if p.tryMemberAccess() {
			continue
		}
		if p.tryTemplateArgs() {
			continue
		}
		if p.tryBinaryOperator() {
			continue
		}
		if p.tryNonNullAssertion() {
			continue
		}
		break
	}
}

// tryCall matches a call's "(" only when no space preceded it, distinguishing
// `f(x)` (call) from `f (x)` (operator form the grammar handles elsewhere).
func (p *Parser) tryCall() bool {
	if p.inPos == 0 || (p.src[p.inPos-1] != ' ' && p.src[p.inPos-1] != '\t') {
		if p.peekLiteral("(") {
			return p.parseGroup(groupOptions{
				open: "(", close: ")", next: ",",
				jsOpen: "(", jsClose: ")", jsNext: ",",
			}, p.parseExpression)
		}
	}
	return false
}

// tryDotCall matches the alternative ".." ARGS call syntax, where ARGS is
// either an indented group or same-line whitespace-separated expressions,
// each re-emitted comma-separated (spec §4.E.8.3).
func (p *Parser) tryDotCall() bool {
	snap := p.snapshot()
	if !p.readLiteral("..") {
		return false
	}
	p.clearTarget()
	p.emit("(")
	if p.parseGroup(groupOptions{allowImplicit: true, jsOpen: "", jsClose: "", jsNext: ","}, p.parseExpression) {
		p.clearTarget()
		p.emit(")")
		return true
	}
	first := true
	for {
		itemSnap := p.snapshot()
		if !first {
			p.clearTarget()
			p.emit(",")
		}
		if !p.parseExpression() {
			itemSnap.revert()
			break
		}
		first = false
	}
	if first {
		snap.revert()
		return false
	}
	p.clearTarget()
	p.emit(")")
	return true
}

// tryTaggedTemplate matches a backtick string immediately following a
// primary/postfix expression, with no intervening call syntax.
func (p *Parser) tryTaggedTemplate() bool {
	if !p.peekLiteral("`") {
		return false
	}
	return p.parseBacktickString()
}

func (p *Parser) tryIndex() bool {
	snap := p.snapshot()
	if !p.readLiteral("[") {
		return false
	}
	p.clearTarget()
	p.emit("[")
	p.must(p.parseExpression())
	p.must(p.readLiteral("]"))
	p.clearTarget()
	p.emit("]")
	_ = snap
	return true
}

func (p *Parser) tryPostfixIncDec() bool {
	if text, ok := p.read(literal("++"), literal("--")); ok {
		p.emit(text)
		return true
	}
	return false
}

// tryAs strips a trailing "as TYPE" type assertion.
func (p *Parser) tryAs() bool {
	snap := p.snapshot()
	if !p.readKeyword("as") {
		return false
	}
	snapOut := p.snapshot()
	if !p.parseType() {
		snap.revert()
		return false
	}
	snapOut.revertOutput()
	return true
}

func (p *Parser) tryOptionalChain() bool {
	snap := p.snapshot()
	if !p.readLiteral("?.") {
		return false
	}
	if p.readLiteral("[") {
		p.clearTarget()
		p.emit("?.[")
		p.must(p.parseExpression())
		p.must(p.readLiteral("]"))
		p.clearTarget()
		p.emit("]")
		return true
	}
	if text, ok := p.read(patIdentifier); ok {
		p.clearTarget()
		p.emit("?." + text)
		return true
	}
	snap.revert()
	return false
}

// tryMemberAccess matches "." IDENT, but never ".." (the dot-call form).
func (p *Parser) tryMemberAccess() bool {
	snap := p.snapshot()
	if !p.readLiteral(".") {
		return false
	}
	if p.peekLiteral(".") {
		snap.revert()
		return false
	}
	text, ok := p.read(patIdentifier)
	if !ok {
		snap.revert()
		return false
	}
	p.emit(".")
	p.emit(text)
	return true
}

// tryTemplateArgs implements the disambiguation of spec §4.E.11: speculatively
// parse "<" TYPE ("," TYPE)* ">" and commit only if the following token is
// ".", "(", or a newline.
func (p *Parser) tryTemplateArgs() bool {
	snap := p.snapshot()
	if !p.readLiteral("<") {
		return false
	}
	ok := true
	first := true
	for {
		itemSnap := p.snapshot()
		if !p.parseType() {
			itemSnap.revert()
			if first {
				ok = false
			}
			break
		}
		first = false
		if p.readLiteral(",") {
			continue
		}
		break
	}
	if !ok || !p.readLiteral(">") {
		snap.revert()
		return false
	}
	if !p.peekLiteral(".") && !p.peekLiteral("(") && !p.peekNewline() {
		snap.revert()
		return false
	}
	return true
}

func (p *Parser) peekNewline() bool {
	if p.atEOF() {
		return true
	}
	snap := p.snapshot()
	ok := p.readNewline()
	snap.revert()
	return ok
}

// tryBinaryOperator matches a binary operator (after §6.2 substitution) and
// its right-hand operand, recursively, with no precedence climbing (spec
// §4.E.8.3: "left-to-right precedence with no operator-precedence climbing
// is accepted").
func (p *Parser) tryBinaryOperator() bool {
	snap := p.snapshot()
	text, ok := p.read(patOperator)
	if !ok {
		return false
	}
	if text == "=>" {
		snap.revert()
		return false
	}
	p.clearTarget()
	p.emit(substituteOperator(text))
	if !p.parseExpression() {
		snap.revert()
		return false
	}
	return true
}

func (p *Parser) tryNonNullAssertion() bool {
	snap := p.snapshot()
	if !p.readLiteral("!") {
		return false
	}
	if p.peekLiteral("=") {
		snap.revert()
		return false
	}
	return true
}

// parseTrailingQuestion implements the trailing "?" rule: a ternary if an
// expression follows, otherwise the nullish-test shorthand "!=null" (spec
// §4.E.8.4).
func (p *Parser) parseTrailingQuestion() {
	snap := p.snapshot()
	if !p.readLiteral("?") {
		return
	}
	thenSnap := p.snapshot()
	if p.parseExpression() && p.readLiteral(":") {
		p.clearTarget()
		p.emit("?")
		thenOut := thenSnap.revertOutput()
		_ = thenOut
		snap.revert()
		p.must(p.readLiteral("?"))
		p.emit("?")
		p.must(p.parseExpression())
		p.must(p.readLiteral(":"))
		p.emit(":")
		p.must(p.parseExpression())
		return
	}
	thenSnap.revert()
	p.emit("!=null")
}

// parseArrayLiteral parses "[" EXPR ("," EXPR)* "]", spread permitted.
func (p *Parser) parseArrayLiteral() bool {
	return p.parseGroup(groupOptions{
		open: "[", close: "]", next: ",",
		jsOpen: "[", jsClose: "]", jsNext: ",",
	}, p.parseArrayElement)
}

func (p *Parser) parseArrayElement() bool {
	if p.readLiteral("...") {
		p.clearTarget()
		p.emit("...")
		p.must(p.parseExpression())
		return true
	}
	return p.parseExpression()
}

// parseObjectLiteral parses the comma/indent-separated "{" ... "}" literal
// of spec §4.E.10: shorthand, method-shorthand, computed, and spread keys.
func (p *Parser) parseObjectLiteral() bool {
	return p.parseGroup(groupOptions{
		open: "{", close: "}", next: ",",
		jsOpen: "{", jsClose: "}", jsNext: ",",
	}, p.parseObjectMember)
}

func (p *Parser) parseObjectMember() bool {
	if p.readLiteral("...") {
		p.clearTarget()
		p.emit("...")
		p.must(p.parseExpression())
		return true
	}

	snap := p.snapshot()
	var key string
	var ok bool
	switch {
	case p.peekLiteral("["):
		p.readLiteral("[")
		p.clearTarget()
		p.emit("[")
		p.must(p.parseExpression())
		p.must(p.readLiteral("]"))
		p.emit("]")
	case p.peekLiteral("`"):
		if !p.parseBacktickString() {
			snap.revert()
			return false
		}
	default:
		key, ok = p.read(patIdentifier, patString, patNumber)
		if !ok {
			snap.revert()
			return false
		}
		p.emit(key)
	}

	if p.peekLiteral("|") {
		p.must(p.parseFunctionParams())
		p.must(p.parseFunctionBody(false))
		return true
	}
	if p.readLiteral(":") {
		p.emit(":")
		p.must(p.parseExpression())
		return true
	}
	return true
}
