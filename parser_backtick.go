package tabscript

import "strings"

// parseBacktickString implements the re-entrant backtick-string scanner of
// spec §4.E.9: repeatedly consume body text up to the next "${" or closing
// backtick; "${" opens a nested expression, re-entering this same function
// for any backtick string within it.
func (p *Parser) parseBacktickString() bool {
	// The opening "`" and an interpolation's closing "}" are consumed without
	// the trailing-whitespace skip read applies, since what follows them is
	// body text.
	if len(p.pending) != 0 || !strings.HasPrefix(p.src[p.inPos:], "`") {
		p.expected.add("`")
		return false
	}
	p.inPos++
	p.expected.reset()
	p.clearTarget()
	p.emit("`")
	for {
		if text, ok := p.read(patWithinBacktick); ok {
			p.emit(text)
		}
		if p.readLiteral("${") {
			p.clearTarget()
			p.emit("${")
			p.must(p.parseExpression())
			if len(p.pending) != 0 || !strings.HasPrefix(p.src[p.inPos:], "}") {
				p.expected.add("}")
				p.must(false)
			}
			p.inPos++
			p.clearTarget()
			p.emit("}")
			continue
		}
		break
	}
	p.must(p.readLiteral("`"))
	p.clearTarget()
	p.emit("`")
	return true
}
