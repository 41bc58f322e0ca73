package tabscript

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMethodTableReplaceAndCall(t *testing.T) {
	p := &Parser{
		State:   newState("t", "x", false),
		opts:    &Options{},
		methods: newMethodTable(),
		tracer:  newTracer(nil),
	}
	p.Replace("Greet", func(pp *Parser) bool {
		pp.emit("hi")
		return true
	})
	require.True(t, p.call("Greet"))
	require.True(t, p.out.endsWith("hi"))
}

func TestMethodCapturesPriorImplementationForDelegation(t *testing.T) {
	p := &Parser{
		State:   newState("t", "x", false),
		opts:    &Options{},
		methods: newMethodTable(),
		tracer:  newTracer(nil),
	}
	var calledOriginal bool
	p.Replace("Greet", func(pp *Parser) bool {
		calledOriginal = true
		return true
	})
	prev := p.Method("Greet")
	p.Replace("Greet", func(pp *Parser) bool {
		return prev(pp)
	})
	require.True(t, p.call("Greet"))
	require.True(t, calledOriginal)
}

func TestApplyPluginsRunsInOrderAndSkipsNil(t *testing.T) {
	p := &Parser{
		State:   newState("t", "x", false),
		opts:    &Options{},
		methods: newMethodTable(),
		tracer:  newTracer(nil),
	}
	var order []int
	entries := []PluginEntry{
		nil,
		func(pp *Parser, global *Options, opts interface{}) error {
			order = append(order, 1)
			return nil
		},
		func(pp *Parser, global *Options, opts interface{}) error {
			order = append(order, 2)
			return nil
		},
	}
	require.NoError(t, p.applyPlugins(entries))
	require.Equal(t, []int{1, 2}, order)
}

func TestApplyPluginsPropagatesError(t *testing.T) {
	p := &Parser{
		State:   newState("t", "x", false),
		opts:    &Options{},
		methods: newMethodTable(),
		tracer:  newTracer(nil),
	}
	boom := errors.New("boom")
	entries := []PluginEntry{
		func(pp *Parser, global *Options, opts interface{}) error { return boom },
	}
	err := p.applyPlugins(entries)
	require.ErrorIs(t, err, boom)
}

// AssertPlugin is the worked example of spec §4.G's capture-then-replace
// pattern: it captures the built-in "Statement" method and only delegates
// to it when the input isn't its own "assert" keyword.
func TestAssertPluginHandlesAssertKeyword(t *testing.T) {
	src := header("assert x == 1\n")
	result := Transpile(src, "plugin.ts", Options{
		Whitespace: "pretty",
		Plugins:    []PluginEntry{AssertPlugin},
	})
	require.Empty(t, result.Errors)
	require.Contains(t, result.Code, `if(!(x === 1))throw new Error("assertion failed");`)
}

func TestAssertPluginDelegatesNonAssertStatements(t *testing.T) {
	src := header("x: number = 3\n")
	result := Transpile(src, "plugin.ts", Options{
		Whitespace: "pretty",
		Plugins:    []PluginEntry{AssertPlugin},
	})
	require.Empty(t, result.Errors)
	require.Equal(t, "const x: number = 3;\n", result.Code)
}
