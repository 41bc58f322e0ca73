package tabscript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func header(body string) string {
	return "tabscript 1.0\n" + body
}

// S1 (spec §8.3): a typed const declaration, TypeScript output keeps the
// type annotation, JavaScript output strips it but keeps the semantics.
func TestScenarioS1ConstDeclTypeScript(t *testing.T) {
	result := Transpile(header("x: number = 3\n"), "s1.ts", Options{Whitespace: "pretty"})
	require.Empty(t, result.Errors)
	require.Equal(t, "const x: number = 3;\n", result.Code)
}

func TestScenarioS1ConstDeclJavaScript(t *testing.T) {
	result := Transpile(header("x: number = 3\n"), "s1.ts", Options{JS: true, Whitespace: "pretty"})
	require.Empty(t, result.Errors)
	require.Equal(t, `"use strict"; const x = 3;`+"\n", result.Code)
}

// S2 (spec §8.3): "or"/"and"/"==" substitution inside an if-condition whose
// body is a same-line statement.
func TestScenarioS2OperatorSubstitution(t *testing.T) {
	result := Transpile(header("if a == 1 or b == 2 and c log(c)\n"), "s2.ts", Options{Whitespace: "pretty"})
	require.Empty(t, result.Errors)
	require.Equal(t, "if (a === 1 || b === 2 && c) log(c);\n", result.Code)
}

// S3 (spec §8.3): a for-of loop with an inline binding defaults to "const".
func TestScenarioS3ForOfInlineConst(t *testing.T) {
	result := Transpile(header("for x: of arr\n\tlog(x)\n"), "s3.ts", Options{Whitespace: "pretty"})
	require.Empty(t, result.Errors)
	require.Contains(t, result.Code, "for (const x of arr)")
	require.Contains(t, result.Code, "log(x)")
	require.Contains(t, result.Code, "{")
	require.Contains(t, result.Code, "}")
}

// for-of with an explicit mutable binding ("::") renders "let" instead.
func TestScenarioS3ForOfLetBinding(t *testing.T) {
	result := Transpile(header("for x:: of arr\n\tlog(x)\n"), "s3-let.ts", Options{Whitespace: "pretty"})
	require.Empty(t, result.Errors)
	require.Contains(t, result.Code, "for (let x of arr)")
}

// S4 (spec §8.3): an arrow function whose body is an object literal, which
// must be wrapped in parens to disambiguate it from a block.
func TestScenarioS4ArrowWithObjectLiteralBody(t *testing.T) {
	result := Transpile(header("make = |x| { value: x }\n"), "s4.ts", Options{Whitespace: "pretty"})
	require.Empty(t, result.Errors)
	require.Contains(t, result.Code, "=>")
	require.Contains(t, result.Code, "({")
	require.Contains(t, result.Code, "value: x")
	require.Contains(t, result.Code, "})")
}

// S5 (spec §8.3): constructor parameter properties are hoisted into
// this.NAME = NAME assignments inside the constructor body. Parameter
// lists use the grammar's "|PARAMS|" delimiters (spec §4.E.7), not "(...)" —
// "(...)" is only ever the *rendered* JS/TS form.
func TestScenarioS5ConstructorParameterProperties(t *testing.T) {
	src := header("class Point\n\tconstructor|public x: number, public y: number|\n\t\tlog(\"made\")\n")
	result := Transpile(src, "s5.ts", Options{JS: true, Whitespace: "pretty"})
	require.Empty(t, result.Errors)
	require.Contains(t, result.Code, "class Point")
	require.Contains(t, result.Code, "constructor(x, y)")
	require.Contains(t, result.Code, "this.x=x")
	require.Contains(t, result.Code, "this.y=y")
}

// S6 (spec §8.3): with Recover enabled, a syntax error is recorded but
// parsing resumes at the next statement rather than aborting the transpile.
func TestScenarioS6RecoverContinuesAfterError(t *testing.T) {
	src := header("x: number = 3\n::::\ny: number = 4\n")
	result := Transpile(src, "s6.ts", Options{Recover: true, Whitespace: "pretty"})
	require.NotEmpty(t, result.Errors)
	require.Contains(t, result.Code, "const x")
	require.Contains(t, result.Code, "const y")
}

// Without Recover, the same malformed input aborts the parse with exactly
// the output emitted up to the failure.
func TestScenarioS6NoRecoverAbortsParse(t *testing.T) {
	src := header("x: number = 3\n::::\ny: number = 4\n")
	result := Transpile(src, "s6.ts", Options{Whitespace: "pretty"})
	require.NotEmpty(t, result.Errors)
	require.NotContains(t, result.Code, "const y")
}

// --- Invariants from spec §8.1/§8.2 ---

// A failed alternative must leave the scanner cursor and output buffer
// exactly as it found them (the parseMethod contract, §4.E.1); only the
// expected-set grows, by the failed pattern's name.
func TestInvariantFailedAlternativeLeavesNoTrace(t *testing.T) {
	s := newState("t", "123abc", false)
	snap := s.snapshot()
	_, ok := s.read(patIdentifier)
	require.False(t, ok)
	require.Equal(t, snap.inPos, s.inPos)
	require.Equal(t, snap.outLen, s.out.length())

	// The same state can still succeed on a different pattern afterward.
	text, ok := s.read(patNumber)
	require.True(t, ok)
	require.Equal(t, "123", text)
}

// A successful read resets the expected-set so error messages only ever
// describe what failed since the last successful advance.
func TestInvariantSuccessResetsExpectedSet(t *testing.T) {
	s := newState("t", "foo", false)
	_, ok := s.read(patNumber)
	require.False(t, ok)
	require.NotEmpty(t, s.expected.sorted())

	_, ok = s.read(patIdentifier)
	require.True(t, ok)
	require.Empty(t, s.expected.sorted())
}

// Round-trip law (§8.2): transpiling twice from the same source produces
// byte-identical code, independent of map/whitespace bookkeeping order.
func TestRoundTripIsDeterministic(t *testing.T) {
	src := header("x: number = 3\nif a == 1 or b == 2 and c log(c)\n")
	r1 := Transpile(src, "det.ts", Options{Whitespace: "pretty"})
	r2 := Transpile(src, "det.ts", Options{Whitespace: "pretty"})
	require.Equal(t, r1.Code, r2.Code)
	require.Equal(t, r1.Map, r2.Map)
}

// An unsupported major version is a fatal, non-recoverable error even with
// Recover enabled (spec §6.1).
func TestHeaderVersionMismatchIsFatal(t *testing.T) {
	result := Transpile("tabscript 2.0\nx: number = 3\n", "bad.ts", Options{Recover: true})
	require.NotEmpty(t, result.Errors)
	require.True(t, strings.Contains(result.Errors[0].Message, "unsupported tabscript version"))
}

// The source map's In/Out arrays stay parallel and non-decreasing across a
// realistic multi-statement program (spec §6.4).
func TestSourceMapArraysStayParallelAndOrdered(t *testing.T) {
	src := header("x: number = 3\ny: number = 4\n")
	result := Transpile(src, "map.ts", Options{})
	require.Equal(t, len(result.Map.In), len(result.Map.Out))
	for i := 1; i < len(result.Map.Out); i++ {
		require.LessOrEqual(t, result.Map.Out[i-1], result.Map.Out[i])
	}
}
