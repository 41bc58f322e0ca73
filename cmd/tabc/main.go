// Command tabc transpiles a single TabScript file to TypeScript or
// JavaScript and writes the result to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	tsc "github.com/tabscript-lang/tsc"
	tscplugin "github.com/tabscript-lang/tsc/plugin"
)

// builtinPlugins resolves "import plugin" paths for this CLI binary. A real
// embedder would register its own plugins; tabc only ships the worked
// example from plugins_builtin.go, under the name "assert".
var builtinPlugins = func() *tscplugin.Registry {
	r := tscplugin.NewRegistry()
	r.Register("assert", tsc.AssertPlugin)
	return r
}()

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		js              bool
		recover_        bool
		whitespace      string
		debug           bool
		debugStructured bool
		transformImport string
		mapOut          string
		enableAssert    bool
	)

	cmd := &cobra.Command{
		Use:           "tabc <file>",
		Short:         "Transpile a TabScript source file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			opts := tsc.Options{
				Recover:    recover_,
				JS:         js,
				Whitespace: whitespace,
				LoadPlugin: builtinPluginLoader,
			}
			if transformImport != "" {
				opts.TransformImport = rewritePrefix(transformImport)
			}
			if enableAssert {
				opts.Plugins = append(opts.Plugins, tsc.AssertPlugin)
			}
			if debugStructured {
				opts.Debug = tsc.DefaultLogger()
			} else if debug {
				opts.Debug = true
			}

			result := tsc.Transpile(string(src), args[0], opts)

			for _, e := range result.Errors {
				fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", args[0], e.Line, e.Column, e.Error())
			}
			fmt.Print(result.Code)

			if mapOut != "" {
				b, err := json.Marshal(result.Map)
				if err != nil {
					return err
				}
				if err := os.WriteFile(mapOut, b, 0o644); err != nil {
					return err
				}
			}

			if len(result.Errors) > 0 && !recover_ {
				return fmt.Errorf("%d error(s)", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&js, "js", false, "emit JavaScript instead of TypeScript")
	cmd.Flags().BoolVar(&recover_, "recover", false, "recover from syntax errors and keep going")
	cmd.Flags().StringVar(&whitespace, "whitespace", "preserve", "output spacing: preserve or pretty")
	cmd.Flags().BoolVar(&debug, "debug", false, "print an indented parse trace to stderr")
	cmd.Flags().BoolVar(&debugStructured, "debug-log", false, "use structured logging for the parse trace instead of the indented trace")
	cmd.Flags().StringVar(&transformImport, "rewrite-import-prefix", "", "old=new prefix pair applied to every import path")
	cmd.Flags().StringVar(&mapOut, "map-out", "", "write the source map as JSON to this path")
	cmd.Flags().BoolVar(&enableAssert, "enable-assert", false, "enable the built-in assert-statement plugin")

	return cmd
}

// builtinPluginLoader resolves "import plugin" statements against the
// registry of plugins declared above.
func builtinPluginLoader(path string) (tsc.PluginEntry, error) {
	return builtinPlugins.Load(path)
}

// rewritePrefix implements --rewrite-import-prefix "old=new": replace a
// literal leading prefix of every import path, leaving anything that doesn't
// match untouched.
func rewritePrefix(spec string) func(string) string {
	old, new_, ok := splitOnce(spec, '=')
	if !ok {
		return func(uri string) string { return uri }
	}
	return func(uri string) string {
		if len(uri) >= len(old) && uri[:len(old)] == old {
			return new_ + uri[len(old):]
		}
		return uri
	}
}

func splitOnce(s string, sep byte) (before, after string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
