package tabscript

// parseFunctionImpl is the default "Function" method, covering the classic
// `function` form and (in expression context) the `|PARAMS|` arrow form,
// both with an optional `async` prefix (spec §4.E.7).
func (p *Parser) parseFunctionImpl(isDeclaration bool) bool {
	snap := p.snapshot()
	async := p.readKeyword("async")

	if !isDeclaration && p.peekLiteral("|") {
		if p.parseArrowFunction(async) {
			return true
		}
		snap.revert()
		return false
	}

	if !p.readKeyword("function") {
		snap.revert()
		return false
	}
	p.clearTarget()
	prefix := "function"
	if async {
		prefix = "async function"
	}
	if p.readLiteral("*") {
		prefix += "*"
	}
	p.emit(prefix)
	if name, ok := p.read(patIdentifier); ok {
		p.emit(" " + name)
	}
	if p.peekLiteral("<") {
		templSnap := p.snapshot()
		p.must(p.parseTemplateParams())
		if p.opts.JS {
			templSnap.revertOutput()
		}
	}
	p.must(p.parseFunctionParams())
	if p.readLiteral(":") {
		retSnap := p.snapshot()
		p.emit(": ")
		p.readKeyword("asserts")
		p.must(p.parseType())
		if p.opts.JS {
			retSnap.revertOutput()
		}
	}
	if !p.parseFunctionBody(false) {
		if !isDeclaration {
			snap.revert()
			return false
		}
		// Overload signature: permitted only in declaration context; its
		// tokens are discarded entirely (spec §4.E.7).
		snap.revertOutput()
	}
	return true
}

func (p *Parser) parseArrowFunction(async bool) bool {
	snap := p.snapshot()
	if async {
		p.clearTarget()
		p.emit("async ")
	}
	if !p.parseFunctionParams() {
		snap.revert()
		return false
	}
	if p.readLiteral(":") {
		retSnap := p.snapshot()
		p.emit(": ")
		p.must(p.parseType())
		if p.opts.JS {
			retSnap.revertOutput()
		}
	}
	if !p.parseFunctionBody(true) {
		snap.revert()
		return false
	}
	return true
}

func (p *Parser) parseFunctionParams() bool {
	return p.parseGroup(groupOptions{
		open: "|", close: "|", next: ",",
		jsOpen: "(", jsClose: ")", jsNext: ",",
	}, p.parseFunctionParam)
}

// parseFunctionParam parses one parameter, including the constructor
// parameter-property modifiers (public/private/protected/readonly), which
// are recorded on p.pendingParamProps for the constructor body to consume
// (spec §4.E.13) and otherwise produce no output of their own.
func (p *Parser) parseFunctionParam() bool {
	modSnap := p.snapshot()
	isParamProp := false
	for p.readKeyword("public") || p.readKeyword("private") ||
		p.readKeyword("protected") || p.readKeyword("readonly") {
		isParamProp = true
	}
	name, ok := p.read(patIdentifier)
	if !ok {
		modSnap.revert()
		return false
	}
	if isParamProp {
		p.pendingParamProps = append(p.pendingParamProps, name)
	}
	p.clearTarget()
	p.emit(name)
	if p.readLiteral("?") && !p.opts.JS {
		p.emit("?")
	}
	if p.readLiteral(":") {
		typeSnap := p.snapshot()
		if !p.opts.JS {
			p.emit(": ")
		}
		p.must(p.parseType())
		if p.opts.JS {
			typeSnap.revertOutput()
		}
	}
	if p.readLiteral("=") {
		p.emit("=")
		p.must(p.parseExpression())
	}
	return true
}

// parseFunctionBody parses a function's body: a block, a bare expression
// (wrapped in parens if it's an object literal, for arrows; wrapped in
// "{return ...}" for classic functions), or nothing at all, which the
// caller treats as an overload signature (spec §4.E.7).
func (p *Parser) parseFunctionBody(isArrow bool) bool {
	if isArrow {
		p.clearTarget()
		p.emit("=>")
	}

	blockSnap := p.snapshot()
	if p.parseBlock() {
		return true
	}
	blockSnap.revert()

	exprSnap := p.snapshot()
	wrapParens := isArrow && p.peekLiteral("{")
	if wrapParens {
		p.clearTarget()
		p.emit("(")
	}
	if !isArrow {
		p.clearTarget()
		p.emit("{return ")
	}
	if !p.parseExpression() {
		exprSnap.revert()
		return false
	}
	if wrapParens {
		p.clearTarget()
		p.emit(")")
	}
	if !isArrow {
		if !p.out.endsWith(";") {
			p.emit(";")
		}
		p.clearTarget()
		p.emit("}")
	}
	return true
}

// parseClassImpl parses `abstract? class|interface IDENT? TEMPLATE?
// (extends EXPR)? (implements TYPE,...)? BODY` (spec §4.E.13). In JS mode, an
// entire interface's output is discarded: interfaces are type-only.
func (p *Parser) parseClassImpl() bool {
	snap := p.snapshot()
	abstract := p.readKeyword("abstract")
	isInterface := false
	switch {
	case p.readKeyword("class"):
	case p.readKeyword("interface"):
		isInterface = true
	default:
		snap.revert()
		return false
	}

	p.clearTarget()
	if abstract && !isInterface {
		p.emit("abstract ")
	}
	p.emit("class")
	if name, ok := p.read(patIdentifier); ok {
		p.emit(" " + name)
	}

	if p.peekLiteral("<") {
		templSnap := p.snapshot()
		p.must(p.parseTemplateParams())
		if p.opts.JS {
			templSnap.revertOutput()
		}
	}

	isDerived := false
	if p.readKeyword("extends") {
		isDerived = true
		p.emit(" extends ")
		p.must(p.parseExpression())
	}
	if p.readKeyword("implements") {
		implSnap := p.snapshot()
		if !p.opts.JS {
			p.emit(" implements ")
		}
		p.must(p.parseType())
		for p.readLiteral(",") {
			if !p.opts.JS {
				p.emit(",")
			}
			p.must(p.parseType())
		}
		if p.opts.JS {
			implSnap.revertOutput()
		}
	}

	p.must(p.parseGroup(groupOptions{
		open: "{", close: "}", allowImplicit: true,
		jsOpen: "{", jsClose: "}",
	}, func() bool { return p.parseClassMember(isDerived) }))

	if isInterface && p.opts.JS {
		snap.revertOutput()
	}
	return true
}

// parseClassMember is `parseMethod` (spec §4.E.13): the modifier cascade,
// accessor prefix, static initializer blocks, constructor, fields, and
// methods.
func (p *Parser) parseClassMember(isDerived bool) bool {
	staticBlockSnap := p.snapshot()
	if p.readKeyword("static") && p.peekLiteral("{") {
		p.clearTarget()
		p.emit("static")
		p.must(p.parseBlock())
		return true
	}
	staticBlockSnap.revert()

	isStatic := false
loop:
	for {
		switch {
		case p.readKeyword("static"):
			isStatic = true
		case p.readKeyword("abstract"):
		case p.readKeyword("public"):
		case p.readKeyword("private"):
		case p.readKeyword("protected"):
		case p.readKeyword("readonly"):
		default:
			break loop
		}
	}

	accessor := ""
	accSnap := p.snapshot()
	if p.readKeyword("get") {
		if _, ok := p.peek(patIdentifier); ok {
			accessor = "get "
		} else {
			accSnap.revert()
		}
	} else if p.readKeyword("set") {
		if _, ok := p.peek(patIdentifier); ok {
			accessor = "set "
		} else {
			accSnap.revert()
		}
	}

	if p.peekKeyword("constructor") {
		return p.parseConstructor(isStatic, isDerived)
	}

	nameSnap := p.snapshot()
	name, ok := p.read(patIdentifier, patString, patNumber)
	if !ok {
		nameSnap.revert()
		return false
	}

	p.clearTarget()
	if isStatic {
		p.emit("static ")
	}
	p.emit(accessor + name)

	if p.readLiteral("?") && !p.opts.JS {
		p.emit("?")
	}

	if p.peekLiteral("|") || p.peekLiteral("<") {
		if p.peekLiteral("<") {
			templSnap := p.snapshot()
			p.must(p.parseTemplateParams())
			if p.opts.JS {
				templSnap.revertOutput()
			}
		}
		p.must(p.parseFunctionParams())
		if p.readLiteral(":") {
			retSnap := p.snapshot()
			p.emit(": ")
			p.readKeyword("asserts")
			p.must(p.parseType())
			if p.opts.JS {
				retSnap.revertOutput()
			}
		}
		bodySnap := p.snapshot()
		if !p.parseFunctionBody(false) {
			bodySnap.revertOutput()
		}
		return true
	}

	if p.readLiteral(":") {
		typeSnap := p.snapshot()
		if !p.opts.JS {
			p.emit(": ")
		}
		p.must(p.parseType())
		if p.opts.JS {
			typeSnap.revertOutput()
		}
	}
	if p.readLiteral("=") {
		p.emit("=")
		p.must(p.parseExpression())
	}
	if !p.out.endsWith(";") && !p.out.endsWith("}") {
		p.emit(";")
	}
	return true
}

// parseConstructor parses the constructor member, collecting parameter
// properties from parseFunctionParam into p.pendingParamProps and then
// injecting `this.X=X;` assignments at the start of the body, or, if the
// class is derived, after the body's first statement, which is taken to be
// the `super(...)` call without checking (spec §4.E.13).
func (p *Parser) parseConstructor(isStatic, isDerived bool) bool {
	p.must(p.readKeyword("constructor"))
	p.clearTarget()
	if isStatic {
		p.emit("static ")
	}
	p.emit("constructor")

	save := p.pendingParamProps
	p.pendingParamProps = nil
	p.must(p.parseFunctionParams())
	props := p.pendingParamProps
	p.pendingParamProps = save

	p.must(p.readIndent())
	p.clearTarget()
	p.emit("{")

	injected := len(props) == 0
	if !isDerived {
		p.emitParamProps(props)
		injected = true
	}
	first := true
	for !p.peekGroupDedent() {
		p.recoverErrors(func() {
			p.must(p.call("Statement"))
			p.must(p.readNewline() || p.atEOF())
		})
		if first && !injected {
			p.emitParamProps(props)
			injected = true
		}
		first = false
	}
	if !injected {
		p.emitParamProps(props)
	}
	p.must(p.readDedent())
	p.clearTarget()
	p.emit("}")
	return true
}

func (p *Parser) emitParamProps(props []string) {
	for _, name := range props {
		p.clearTarget()
		p.emit("this." + name + "=" + name + ";")
	}
}
