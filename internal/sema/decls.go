package sema

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/symbols"
	"github.com/covenant-lang/covenant/internal/types"
)

// checkTopDecl is Pass B's per-declaration driver, called
// once per top-level declaration in program order.
func (c *Checker) checkTopDecl(scope symbols.ScopeID, id ast.DeclID) {
	d := c.builder.Decl(id)
	if d == nil {
		return
	}
	switch d.Kind {
	case ast.DeclExport:
		c.checkTopDecl(scope, d.Inner)
	case ast.DeclFunction:
		c.checkFunction(scope, id, d, types.NoTypeID)
	case ast.DeclVariable:
		c.checkVariable(scope, id, d)
	case ast.DeclStruct:
		c.checkStruct(scope, d)
	case ast.DeclEnum:
		// Enum variants carry no invariants of their own in this grammar;
		// Pass A already resolved the variant field types.
	case ast.DeclTrait:
		c.checkTrait(scope, d)
	case ast.DeclImpl:
		c.checkImpl(scope, d)
	case ast.DeclTypeAlias, ast.DeclEffect, ast.DeclCapability, ast.DeclContract, ast.DeclIntent, ast.DeclImport:
		// Nothing further to check: type aliases and effect/capability
		// bodies were fully resolved in Pass A. Contract/intent bodies are
		// not checked; a reference to one only resolves its name.
	}
}

// checkFunction enters a fresh function scope, binds generics/params,
// records the active effect set and capability map, checks every
// annotation in contract mode, then checks the body. selfType is
// NoTypeID for a free function, or the implemented-for type for a method.
func (c *Checker) checkFunction(scope symbols.ScopeID, id ast.DeclID, d *ast.Decl, selfType types.TypeID) {
	fnScope := c.genericScope(scope, d.Generics)
	fnScope = c.symbols.NewScope(symbols.ScopeFunction, fnScope)

	for _, p := range d.Params {
		if p.Name == "self" {
			if selfType == types.NoTypeID {
				c.errorf(p.Pos, diag.TypeMismatch, "'self' parameter outside an impl block")
				continue
			}
			c.symbols.Declare(fnScope, symbols.NSOrdinary, symbols.Symbol{
				Kind: symbols.SymbolParam, Name: "self", Type: selfType, Mutable: p.Mut, Pos: p.Pos,
			})
			continue
		}
		pt := c.resolveTypeExpr(fnScope, p.Type)
		if _, ok := c.symbols.Declare(fnScope, symbols.NSOrdinary, symbols.Symbol{
			Kind: symbols.SymbolParam, Name: p.Name, Type: pt, Mutable: p.Mut, Pos: p.Pos,
		}); !ok {
			c.errorf(p.Pos, diag.NameDuplicate, "parameter %q already declared", p.Name)
		}
	}

	retType := c.resolveTypeExpr(fnScope, d.RetType)

	if d.Pure && len(effectNamesOf(c.builder, d)) > 0 {
		c.errorf(d.Pos, diag.EffectOnPureFn, "pure function %q may not declare effects", d.Name)
	}

	prevReturn, prevEffects, prevCaps, prevPure, prevInFn := c.currentReturn, c.activeEffects, c.activeCaps, c.currentPure, c.inFunction
	c.currentReturn = retType
	c.activeEffects = c.effectSetOf(d)
	c.activeCaps = c.capabilityMapOf(scope, d)
	c.currentPure = d.Pure
	c.inFunction = true

	c.checkAnnotations(fnScope, d.Annotations)
	if d.Body.IsValid() {
		c.checkExpr(fnScope, d.Body)
		bodyType := c.result.TypeOf(d.Body)
		if !c.assignable(bodyType, retType) && c.kindOf(retType) != types.KindVoid {
			pos := c.builder.Expr(d.Body).Pos
			c.errorf(pos, diag.TypeMismatch, "function %q returns %s, body has type %s", d.Name, c.typeName(retType), c.typeName(bodyType))
		}
	}

	// On exit, clear active effects/capabilities/return context, restoring
	// whatever enclosing function state (if any) existed —
	// relevant only for nested method-checking recursion, never for
	// ordinary top-level functions.
	c.currentReturn, c.activeEffects, c.activeCaps, c.currentPure, c.inFunction = prevReturn, prevEffects, prevCaps, prevPure, prevInFn
}

func (c *Checker) checkVariable(scope symbols.ScopeID, id ast.DeclID, d *ast.Decl) {
	var declared types.TypeID
	if d.VarType.IsValid() {
		declared = c.resolveTypeExpr(scope, d.VarType)
	}
	var initType types.TypeID
	if d.Init.IsValid() {
		initType = c.checkExpr(scope, d.Init)
	}

	final := c.finalVarType(d.Pos, d.Name, declared, initType, d.VarType.IsValid(), d.Init.IsValid())
	if sid, ok := c.declSym[id]; ok {
		if sym := c.symbols.Symbol(sid); sym != nil {
			sym.Type = final
		}
	}
}

// checkStruct checks struct-level and per-field invariant annotations and
// any field default-value initializers ("Check invariants
// (struct) in contract mode").
func (c *Checker) checkStruct(scope symbols.ScopeID, d *ast.Decl) {
	t, ok := c.nominalType(scope, d.Name)
	if !ok {
		return
	}
	c.checkInvariants(scope, d.Pos, invariantAnnotations(c.builder, d.Annotations), t)
	for _, f := range d.Fields {
		if f.Default.IsValid() {
			ft := c.resolveTypeExpr(scope, f.Type)
			dt := c.checkExpr(scope, f.Default)
			if !c.assignable(dt, ft) {
				c.errorf(f.Pos, diag.TypeMismatch, "default value for field %q has type %s, expected %s", f.Name, c.typeName(dt), c.typeName(ft))
			}
		}
		c.checkInvariants(scope, f.Pos, invariantAnnotations(c.builder, f.Annotations), t)
	}
}

// checkInvariants binds a synthetic `self` of selfType in a fresh block
// scope and checks every invariant annotation against it in contract mode.
func (c *Checker) checkInvariants(scope symbols.ScopeID, pos source.Position, anns []ast.AnnotationID, selfType types.TypeID) {
	if len(anns) == 0 {
		return
	}
	s := c.symbols.NewScope(symbols.ScopeBlock, scope)
	c.symbols.Declare(s, symbols.NSOrdinary, symbols.Symbol{Kind: symbols.SymbolParam, Name: "self", Type: selfType, Pos: pos})
	c.checkAnnotations(s, anns)
}

// checkTrait checks every trait method as a function, bound
// against the trait's own type as the synthetic `self` — a concrete impl
// rebinds `self` to its own ForType when checking its method bodies.
func (c *Checker) checkTrait(scope symbols.ScopeID, d *ast.Decl) {
	t, ok := c.nominalType(scope, d.Name)
	if !ok {
		return
	}
	for _, mid := range d.Methods {
		md := c.builder.Decl(mid)
		if md == nil {
			continue
		}
		c.checkFunction(scope, mid, md, t)
	}
}

// checkImpl binds a synthetic `self` of the implemented-for type and
// checks each method, plus any impl-level invariant annotations (the same
// invariant rule applies equally to an invariant written on the impl block,
// as opposed to the struct declaration).
func (c *Checker) checkImpl(scope symbols.ScopeID, d *ast.Decl) {
	forType := c.resolveTypeExpr(scope, d.ForType)
	if d.TraitName != "" {
		if _, ok := c.symbols.Lookup(scope, symbols.NSType, d.TraitName); !ok {
			c.errorf(d.Pos, diag.NameUnknownType, "unknown trait %q", d.TraitName)
		}
	}
	c.checkInvariants(scope, d.Pos, invariantAnnotations(c.builder, d.Annotations), forType)
	for _, mid := range d.ImplMethods {
		md := c.builder.Decl(mid)
		if md == nil {
			continue
		}
		c.checkFunction(scope, mid, md, forType)
	}
}

// finalVarType implements the variable-type rule: prefer the
// declared type (checking the initializer is assignable to it), else adopt
// the initializer's type, else "cannot infer".
func (c *Checker) finalVarType(pos source.Position, name string, declared, initType types.TypeID, hasDeclared, hasInit bool) types.TypeID {
	switch {
	case hasDeclared && hasInit:
		if !c.assignable(initType, declared) {
			c.errorf(pos, diag.TypeMismatch, "cannot assign %s to %s in declaration of %q", c.typeName(initType), c.typeName(declared), name)
		}
		return declared
	case hasDeclared:
		return declared
	case hasInit:
		return initType
	default:
		c.errorf(pos, diag.TypeCannotInfer, "cannot infer type of %q", name)
		return c.errType()
	}
}
