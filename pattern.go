package tabscript

import (
	"regexp"
	"strings"
)

// matcher is the common shape of a Pattern and a keyword literal: something
// that can attempt to match at a fixed input position without scanning
// ahead, and that has a display name usable in "expecting one of" messages.
type matcher interface {
	String() string
	match(src string, pos int) string
}

// Pattern is a named sticky regex: it matches only at the position it is
// asked to, never scanning forward to find a match elsewhere. Go's regexp
// package has no native cursor/sticky mode, so sticky semantics are
// simulated exactly as spec §9 prescribes: the pattern is anchored with a
// literal start-of-string assertion and matched against a slice of the
// input starting at pos. This is the documented fallback, not an
// unconsidered stdlib shortcut — see DESIGN.md for why modernc.org/lex and
// modernc.org/lexer (a real sticky-lexer runtime) were not wired instead.
type Pattern struct {
	name string
	re   *regexp.Regexp
}

func pattern(expr, name string) *Pattern {
	return &Pattern{name: name, re: regexp.MustCompile(`\A(?:` + expr + `)`)}
}

func (p *Pattern) String() string { return p.name }

func (p *Pattern) match(src string, pos int) string {
	if pos > len(src) {
		return ""
	}
	return p.re.FindString(src[pos:])
}

// keyword matches a literal word only when it is not a prefix of a longer
// identifier, e.g. "in" must not match the leading two bytes of "inward".
type keyword string

func (k keyword) String() string { return string(k) }

func (k keyword) match(src string, pos int) string {
	text := string(k)
	if !strings.HasPrefix(src[pos:], text) {
		return ""
	}
	end := pos + len(text)
	if end < len(src) && isWordByte(src[end]) {
		return ""
	}
	return text
}

// literal matches an exact punctuation sequence with no word-boundary
// requirement, e.g. "(" or "=>".
type literal string

func (l literal) String() string { return string(l) }

func (l literal) match(src string, pos int) string {
	text := string(l)
	if strings.HasPrefix(src[pos:], text) {
		return text
	}
	return ""
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Predefined patterns (component A, Pattern Registry, spec §4.A).
var (
	patWhitespace = pattern(`[ \t\r]*(?:#.*)?`, "whitespace")
	patIdentifier = pattern(`[A-Za-z_$][0-9A-Za-z_$]*`, "identifier")
	patString     = pattern(`"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`, "string")
	patNumber     = pattern(
		`[+-]?(?:0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+|(?:\d+\.\d*|\.\d+|\d+)(?:[eE][+-]?\d+)?)`,
		"number")
	patInteger            = pattern(`\d+`, "integer")
	patWithinBacktick     = pattern("(?:\\\\.|[^`$]|\\$(?:[^{]|$))*", "backtick string body")
	patExpressionPrefix   = pattern(`\+\+|--|!|\+|-|typeof\b|delete\b|await\b|new\b`, "prefix operator")
	patRegexp             = pattern(`/(?:\\.|[^/\\\n])+/[a-zA-Z]*`, "regexp literal")
	patNewline            = pattern(`[ \t\r]*(?:#.*)?\r?\n`, "newline")
	patSemicolon          = pattern(`;`, "\";\"")
	patIndentTabs         = pattern(`\t*`, "tab indentation")
	patIndentSpace        = pattern(`[ \t]* `, "space indentation")
	patLineTail           = pattern(`[^\n]*`, "rest of line")
	patDot                = pattern(`\.`, "\".\"")
	patDotDot             = pattern(`\.\.`, "\"..\"")
	patQuestionDot        = pattern(`\?\.`, "\"?.\"")
	patNullishCoalesce    = pattern(`\?\?`, "\"??\"")
	patArrow              = pattern(`=>`, "\"=>\"")
	patSpread             = pattern(`\.\.\.`, "\"...\"")
	patColon              = pattern(`:`, "\":\"")
	patComma              = pattern(`,`, "\",\"")
	patPercentOp          = pattern(`%[A-Za-z_][0-9A-Za-z_]*`, "percent-named operator")
	patBacktick           = literal("`")
	patOperator           = pattern(operatorAlternation, "operator")
)

// operatorAlternation lists OPERATOR's multi-char forms, longest first so
// Go's RE2 alternation (first-match, not longest-match) still prefers ">>>="
// over ">>" when both would match at the same position. The percent-named
// form comes first so "%" and "%=" never shadow e.g. "%mod".
const operatorAlternation = `%[A-Za-z_][0-9A-Za-z_]*|>>>=|>>>|<<=|>>=|\*\*=|&&=|\|\|=|\?\?=|===|!==|\.\.\.|=>|==|!=|<=|>=|&&|\|\||\?\?|\+\+|--|\+=|-=|\*=|/=|%=|&=|\|=|\^=|<<|>>|=~|!~|\*\*|=|\+|-|\*|/|%|<|>|!|~|&|\||\^|and\b|or\b|in\b|instanceof\b`
