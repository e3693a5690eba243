package sema

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/symbols"
)

// checkAnnotations checks every annotation in anns with inContract = true
// (functions, loops, struct/impl invariants all check their
// annotations in contract mode before checking the body they guard).
func (c *Checker) checkAnnotations(scope symbols.ScopeID, anns []ast.AnnotationID) {
	prev := c.inContract
	c.inContract = true
	for _, aid := range anns {
		c.checkAnnotation(scope, aid)
	}
	c.inContract = prev
}

func (c *Checker) checkAnnotation(scope symbols.ScopeID, aid ast.AnnotationID) {
	a := c.builder.Annotation(aid)
	if a == nil {
		return
	}
	switch a.Kind {
	case ast.AnnRequires, ast.AnnEnsures, ast.AnnInvariant:
		t := c.checkExpr(scope, a.Expr)
		if !c.isPoisoned(t) && !c.isBool(t) {
			c.errorf(a.Pos, diag.TypeNotBoolean, "%s condition must be Bool, got %s", annotationName(a.Kind), c.typeName(t))
		}
	case ast.AnnEffectSet:
		for _, name := range a.Effects {
			if _, ok := c.symbols.Lookup(scope, symbols.NSOrdinary, name); !ok {
				c.errorf(a.Pos, diag.EffectUnresolved, "unknown effect %q", name)
			}
		}
	case ast.AnnCapabilitySpec:
		if _, ok := c.symbols.Lookup(scope, symbols.NSOrdinary, a.CapabilityName); !ok {
			c.errorf(a.Pos, diag.NameUnknownCapability, "unknown capability %q", a.CapabilityName)
		}
		for _, f := range a.CapabilityFields {
			c.checkExpr(scope, f.Value)
		}
	case ast.AnnContractRef:
		if _, ok := c.symbols.Lookup(scope, symbols.NSContract, a.RefName); !ok {
			c.errorf(a.Pos, diag.NameUnknownContract, "unknown contract %q", a.RefName)
		}
	case ast.AnnIntentRef:
		if _, ok := c.symbols.Lookup(scope, symbols.NSIntent, a.RefName); !ok {
			c.errorf(a.Pos, diag.NameUnknownIntent, "unknown intent %q", a.RefName)
		}
	case ast.AnnVerifyLevel:
		// Carried verbatim to the lowerer; nothing to resolve.
	}
}

func annotationName(k ast.AnnotationKind) string {
	switch k {
	case ast.AnnRequires:
		return "requires"
	case ast.AnnEnsures:
		return "ensures"
	case ast.AnnInvariant:
		return "invariant"
	default:
		return "annotation"
	}
}

// effectSetOf builds the active EffectSet a function's @effect[...]
// annotations declare.
func (c *Checker) effectSetOf(d *ast.Decl) symbols.EffectSet {
	return symbols.NewEffectSet(effectNamesOf(c.builder, d))
}

// capabilityMapOf resolves a function's @capability(...) annotations into a
// CapabilityMap (name resolution only — enforcement
// beyond that is out of scope).
func (c *Checker) capabilityMapOf(scope symbols.ScopeID, d *ast.Decl) symbols.CapabilityMap {
	entries := make(map[string]symbols.SymbolID)
	for _, aid := range d.Annotations {
		a := c.builder.Annotation(aid)
		if a == nil || a.Kind != ast.AnnCapabilitySpec {
			continue
		}
		if id, ok := c.symbols.Lookup(scope, symbols.NSOrdinary, a.CapabilityName); ok {
			entries[a.CapabilityName] = id
		}
	}
	return symbols.NewCapabilityMap(entries)
}

// invariantAnnotations filters anns down to just the @invariant clauses, so
// struct/impl checking can run them against a synthetic `self` binding
// without re-checking requires/ensures clauses that don't apply there.
func invariantAnnotations(builder *ast.Builder, anns []ast.AnnotationID) []ast.AnnotationID {
	var out []ast.AnnotationID
	for _, aid := range anns {
		if a := builder.Annotation(aid); a != nil && a.Kind == ast.AnnInvariant {
			out = append(out, aid)
		}
	}
	return out
}
