package tabscript

// groupOptions configures parseGroup, the generic delimited-or-indent-implicit
// list parser every comma list, block, and brace-group in the grammar is
// built from (spec §4.E.14).
type groupOptions struct {
	// open/close are literal delimiters, e.g. "(" / ")". Either may be ""
	// when the group has no literal form at all (a pure indent block).
	open, close string
	// next is the item separator literal, e.g. ",". "" means items are
	// separated only by being on successive lines (newline-implicit).
	next string
	// jsOpen/jsClose/jsNext are what gets emitted in their place.
	jsOpen, jsClose, jsNext string
	// allowImplicit lets an INDENT stand in for a missing open literal, and
	// requires a matching DEDENT to close the group in that case.
	allowImplicit bool
}

// parseGroup opens via opts.open or (if allowImplicit) an INDENT, then loops
// calling item until it fails or the group's end is reached, emitting
// opts.jsNext between items and finally closing via opts.close or a DEDENT.
func (p *Parser) parseGroup(opts groupOptions, item func() bool) bool {
	snap := p.snapshot()
	implicit := false
	switch {
	case opts.open != "" && p.readLiteral(opts.open):
	case opts.allowImplicit && p.readIndent():
		implicit = true
	default:
		snap.revert()
		return false
	}
	p.clearTarget()
	p.emit(opts.jsOpen)

	for {
		if implicit && p.peekGroupDedent() {
			break
		}
		if !implicit && opts.close != "" && p.peekLiteral(opts.close) {
			break
		}
		itemSnap := p.snapshot()
		if !item() {
			itemSnap.revert()
			break
		}

		sepSnap := p.snapshot()
		switch {
		case opts.next != "" && p.readLiteral(opts.next):
			if opts.close != "" && p.peekLiteral(opts.close) {
				sepSnap.revert()
				goto closeGroup
			}
			p.emit(opts.jsNext)
		case implicit && p.readNewline():
			if p.peekGroupDedent() {
				sepSnap.revert()
				goto closeGroup
			}
			p.emit(opts.jsNext)
		default:
			sepSnap.revert()
			goto closeGroup
		}
	}
closeGroup:

	if implicit {
		p.must(p.readDedent())
	} else if opts.close != "" {
		p.must(p.readLiteral(opts.close))
	}
	p.clearTarget()
	p.emit(opts.jsClose)
	return true
}

// peekGroupDedent reports, without consuming, whether a DEDENT is next —
// used to decide whether an implicit group has reached its end.
func (p *Parser) peekGroupDedent() bool {
	snap := p.snapshot()
	ok := p.readDedent()
	snap.revert()
	return ok
}

// parseBlock is the special case of parseGroup used for statement bodies: a
// pure indent block of zero or more statements, each requiring its own
// trailing newline, wrapped in "{ }" (spec §4.E.7, "A block").
func (p *Parser) parseBlock() bool {
	if !p.readIndent() {
		return false
	}
	p.clearTarget()
	p.emit("{")
	for !p.peekGroupDedent() {
		p.recoverErrors(func() {
			p.must(p.call("Statement"))
			p.must(p.readNewline() || p.atEOF())
		})
	}
	p.must(p.readDedent())
	p.clearTarget()
	p.emit("}")
	return true
}

// parseStatementOrBlock is the common "BODY" production used by if/while/
// do-while/for: either an indented block, or a single bare statement emitted
// without braces, matching plain JS's brace-optional single-statement body
// (spec §4.E.3 scenario S2).
func (p *Parser) parseStatementOrBlock() bool {
	if p.parseBlock() {
		return true
	}
	return p.call("Statement")
}
