// Package sema implements the resolver and type/contract/effect/capability
// checker: a two-pass walk over a parsed Program that
// installs every declared name and nominal type (Pass A — collection),
// then resolves and type-checks every declaration body in program order
// (Pass B — checking), recording the type of every expression for the
// lowerer to consult.
package sema

import (
	"fmt"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/symbols"
	"github.com/covenant-lang/covenant/internal/types"
)

// Options configure one run of the checker over a single file's Program.
type Options struct {
	Reporter diag.Reporter
	Types    *types.Interner // reused across files in a multi-file build; created fresh if nil
	Symbols  *symbols.Table  // reused across files in a multi-file build; created fresh if nil
}

// Result stores every semantic artefact the checker produced, which the
// lowerer (internal/lower) consults to emit target text.
type Result struct {
	Types     *types.Interner
	Symbols   *symbols.Table
	ExprTypes map[ast.ExprID]types.TypeID
}

// TypeOf returns the type recorded for expr, or NoTypeID if expr was never
// checked (e.g. it belongs to a different Program than the one checked).
func (r *Result) TypeOf(id ast.ExprID) types.TypeID { return r.ExprTypes[id] }

// Check runs both passes of the checker over prog and returns the
// accumulated result. Diagnostics are reported through opts.Reporter;
// Check never aborts early, matching every other pipeline stage's
// accumulate-and-continue discipline.
func Check(builder *ast.Builder, prog *ast.Program, opts Options) *Result {
	res := &Result{ExprTypes: make(map[ast.ExprID]types.TypeID)}
	if opts.Types != nil {
		res.Types = opts.Types
	} else {
		res.Types = types.NewInterner()
	}
	if opts.Symbols != nil {
		res.Symbols = opts.Symbols
	} else {
		res.Symbols = symbols.NewTable()
	}
	if builder == nil || prog == nil {
		return res
	}

	c := &Checker{
		builder:  builder,
		program:  prog,
		reporter: opts.Reporter,
		types:    res.Types,
		symbols:  res.Symbols,
		result:   res,
		declSym:  make(map[ast.DeclID]symbols.SymbolID),
	}
	c.run()
	return res
}

// Checker holds the state threaded through both passes. Lexical scope is
// never a field here — every check* method takes the scope it runs in as
// an explicit parameter, since the same declaration (e.g. a function body)
// is checked in a scope that only exists for the duration of that call.
type Checker struct {
	builder  *ast.Builder
	program  *ast.Program
	reporter diag.Reporter
	types    *types.Interner
	symbols  *symbols.Table
	result   *Result

	// declSym remembers the symbol Pass A declared for a function/variable
	// declaration, so Pass B can refine its Type in place (a variable's
	// declared-or-inferred type is only known for certain once its
	// initializer is checked) without a second name lookup.
	declSym map[ast.DeclID]symbols.SymbolID

	// Per-function state, valid only while checking inside a function
	// (or method) body; cleared on exit
	inFunction    bool
	currentReturn types.TypeID
	currentPure   bool
	activeEffects symbols.EffectSet
	activeCaps    symbols.CapabilityMap

	// inContract is true while checking a requires/ensures/invariant
	// condition (or a capability-spec field initializer), where `result`,
	// `old(...)`, and `forall`/`exists` are legal.
	inContract bool
}

func (c *Checker) run() {
	c.collect()
	for _, id := range c.program.Decls {
		c.checkTopDecl(c.symbols.Global(), id)
	}
}

// errorf reports an analyzer-phase error at pos.
func (c *Checker) errorf(pos source.Position, code diag.Code, format string, args ...any) {
	diag.Report(c.reporter, diag.PhaseAnalyzer, diag.SevError, code, pos, fmt.Sprintf(format, args...))
}

// warnf reports an analyzer-phase warning at pos.
func (c *Checker) warnf(pos source.Position, code diag.Code, format string, args ...any) {
	diag.Report(c.reporter, diag.PhaseAnalyzer, diag.SevWarning, code, pos, fmt.Sprintf(format, args...))
}

func (c *Checker) typeName(id types.TypeID) string {
	t, ok := c.types.Lookup(id)
	if !ok {
		return "unknown"
	}
	switch t.Kind {
	case types.KindArray:
		return fmt.Sprintf("[%s]", c.typeName(t.Elem))
	case types.KindReference:
		if t.Mutable {
			return "&mut " + c.typeName(t.Elem)
		}
		return "&" + c.typeName(t.Elem)
	case types.KindOptional:
		return c.typeName(t.Elem) + "?"
	case types.KindResult:
		return fmt.Sprintf("Result<%s, %s>", c.typeName(t.Elem), c.typeName(t.ErrElem))
	case types.KindStruct:
		if info, ok := c.types.StructInfo(id); ok {
			return info.Name
		}
	case types.KindEnum:
		if info, ok := c.types.EnumInfo(id); ok {
			return info.Name
		}
	case types.KindTrait:
		if info, ok := c.types.TraitInfo(id); ok {
			return info.Name
		}
	case types.KindEffect:
		if info, ok := c.types.EffectInfo(id); ok {
			return info.Name
		}
	case types.KindCapability:
		if info, ok := c.types.CapabilityInfo(id); ok {
			return info.Name
		}
	case types.KindGenericApp:
		if info, ok := c.types.GenericAppInfo(id); ok {
			args := ""
			for i, a := range info.Args {
				if i > 0 {
					args += ", "
				}
				args += c.typeName(a)
			}
			return fmt.Sprintf("%s<%s>", c.typeName(info.Base), args)
		}
	case types.KindTypeVar:
		if info, ok := c.types.TypeVarInfo(id); ok {
			return info.Name
		}
	}
	return t.Kind.String()
}

// isPoisoned reports whether t is Unknown, Error, or invalid: a type a
// prior diagnostic already produced, whose further use should not cascade
// into new diagnostics.
func (c *Checker) isPoisoned(id types.TypeID) bool {
	t, ok := c.types.Lookup(id)
	return !ok || t.Kind == types.KindUnknown || t.Kind == types.KindErrorType
}

// assignable wraps Interner.Assignable, treating a poisoned operand as
// compatible with anything so one diagnostic does not spawn a cascade.
func (c *Checker) assignable(from, to types.TypeID) bool {
	if c.isPoisoned(from) || c.isPoisoned(to) {
		return true
	}
	return c.types.Assignable(from, to)
}

// setType records expr's type for the lowerer and returns it, the common
// tail call of every checkExpr case.
func (c *Checker) setType(id ast.ExprID, t types.TypeID) types.TypeID {
	c.result.ExprTypes[id] = t
	return t
}

// errType is the poisoned type returned after reporting a diagnostic, to
// stop the error from cascading into its callers.
func (c *Checker) errType() types.TypeID { return c.types.Builtins().Error }

func (c *Checker) isBool(id types.TypeID) bool {
	t, ok := c.types.Lookup(id)
	return ok && t.Kind == types.KindBool
}

func (c *Checker) isNumeric(id types.TypeID) bool {
	t, ok := c.types.Lookup(id)
	return ok && t.Kind.IsNumeric()
}

func (c *Checker) isInteger(id types.TypeID) bool {
	t, ok := c.types.Lookup(id)
	return ok && t.Kind.IsInteger()
}

func (c *Checker) kindOf(id types.TypeID) types.Kind {
	t, ok := c.types.Lookup(id)
	if !ok {
		return types.KindInvalid
	}
	return t.Kind
}
