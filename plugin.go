package tabscript

// PluginEntry is what a plugin module exposes: a function invoked with the
// parser handle, the global options, and this particular import's own
// options (spec §4.G). It may inspect or replace any named parse method.
type PluginEntry func(p *Parser, global *Options, pluginOptions interface{}) error

// PluginLoader resolves a logical plugin path to its entry point. Spec §1
// explicitly keeps "how a plugin module is located, read, compiled, and
// executed" out of the core's scope; the core only ever calls this
// callback. See the plugin package for a minimal in-memory implementation.
type PluginLoader func(path string) (PluginEntry, error)

// parseMethod is the shape every named, replaceable grammar rule has: it
// either advances the parser and returns true, or leaves it exactly as it
// found it and returns false (spec §4.E.1).
type parseMethod func(p *Parser) bool

// methodTable implements spec Design Note §9's "table of function pointers
// keyed by name": the mechanical, statically-dispatched lowering of a
// dynamic-language method-replacement plugin model. Plugins capture a slot's
// current value before overwriting it, which is how a replacement delegates
// back to the original implementation.
type methodTable struct {
	slots map[string]parseMethod
}

func newMethodTable() *methodTable {
	return &methodTable{slots: map[string]parseMethod{}}
}

// Method returns the current implementation bound to name. Plugins call
// this before Replace to capture a reference they can delegate to.
func (p *Parser) Method(name string) parseMethod {
	return p.methods.slots[name]
}

// Replace installs fn as the implementation of the named parse method. An
// unknown name is registered fresh; this lets plugins introduce entirely
// new dispatch targets, not just override existing ones.
func (p *Parser) Replace(name string, fn parseMethod) {
	p.methods.slots[name] = fn
}

// call invokes the current implementation of the named method, wrapping it
// with tracer enter/leave events. Parser Core methods reach the named (i.e.
// overridable) grammar rules through call, so a plugin's replacement is on
// the call path, with one exception: parsePrimary calls parseFunctionImpl
// directly for function expressions, bypassing the "Function" slot.
func (p *Parser) call(name string) bool {
	p.tracer.enter(name)
	ok := p.methods.slots[name](p)
	p.tracer.leave(name, ok)
	return ok
}

// applyPlugins runs every pre-registered plugin entry point before parsing
// starts (spec §4.G: "Before parse, zero or more plugin functions are
// invoked with the parser handle and the global/options").
func (p *Parser) applyPlugins(entries []PluginEntry) error {
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if err := entry(p, p.opts, nil); err != nil {
			return err
		}
	}
	return nil
}
