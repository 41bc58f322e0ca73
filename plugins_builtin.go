package tabscript

// AssertPlugin is a worked example of the capture-then-replace pattern spec
// §4.G describes: it captures the current "Statement" method via Method
// before installing its own via Replace, and delegates to the captured value
// for every case it doesn't itself handle. It recognizes a bare `assert`
// keyword form — `assert EXPR` lowers to `if(!(EXPR))throw new Error(...)`.
//
// Plugins live in-package here (rather than in an importable sub-package)
// because the capture/replace primitives they need (Method, Replace, and the
// parseX building blocks: read/peek/emit/snapshot) are Parser Core internals
// not otherwise exported; a plugin that needs them is, for Go's purposes,
// more core than "external code" in the dynamic-language sense spec §4.G
// describes. See DESIGN.md for the tradeoff.
func AssertPlugin(p *Parser, _ *Options, _ interface{}) error {
	prev := p.Method("Statement")
	p.Replace("Statement", func(pp *Parser) bool {
		return assertStatement(pp, prev)
	})
	return nil
}

func assertStatement(p *Parser, prev parseMethod) bool {
	if !p.readKeyword("assert") {
		return prev(p)
	}
	p.clearTarget()
	p.emit("if(!(")
	p.must(p.parseExpression())
	p.clearTarget()
	p.emit(`))throw new Error("assertion failed");`)
	return true
}
