// Package lower implements the Lowerer: it walks a checked
// program and emits JavaScript or TypeScript target text, optionally
// instrumented with runtime contract checks.
package lower

// Dialect selects the target host-language surface.
type Dialect uint8

const (
	DialectJavaScript Dialect = iota
	DialectTypeScript
)

// ModuleSystem selects the shape of emitted imports/exports.
type ModuleSystem uint8

const (
	ModuleESM ModuleSystem = iota
	ModuleCommonJS
)

// VerifyLevel controls how aggressively runtime guards are emitted.
type VerifyLevel uint8

const (
	VerifyFull VerifyLevel = iota
	VerifyRuntime
	VerifyTrusted
)

// Options configures one lowering pass, matching the compilation
// options table.
type Options struct {
	Dialect          Dialect
	Module           ModuleSystem
	RuntimeContracts bool
	Verify           VerifyLevel
	SourceMap        bool // reserved, unused for now
	Minify           bool // reserved, unused for now
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Dialect:          DialectJavaScript,
		Module:           ModuleESM,
		RuntimeContracts: true,
		Verify:           VerifyRuntime,
	}
}

// emitsGuards reports whether requires/ensures/invariant checks (and the
// prelude they depend on) should be emitted: instrumentation must be on and
// verify level must not be "trusted" 
func (o Options) emitsGuards() bool {
	return o.RuntimeContracts && o.Verify != VerifyTrusted
}
