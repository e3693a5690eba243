package sema

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/symbols"
	"github.com/covenant-lang/covenant/internal/types"
)

// collect is Pass A: installs every top-level name so that
// forward references — a function body naming a type declared later in
// the same program — resolve during Pass B. Runs in two passes of its
// own: shells first (a bare, fields-not-yet-filled nominal TypeID per
// struct/enum/trait/effect/capability, plus contract/intent registration),
// then bodies (field/variant/method/signature resolution), so a shell
// declared textually after the thing referencing it already exists by the
// time any body is resolved.
func (c *Checker) collect() {
	global := c.symbols.Global()
	for _, id := range c.program.Decls {
		c.collectShell(global, id)
	}
	for _, id := range c.program.Decls {
		c.collectBody(global, id)
	}
}

func (c *Checker) collectShell(scope symbols.ScopeID, id ast.DeclID) {
	d := c.builder.Decl(id)
	if d == nil {
		return
	}
	switch d.Kind {
	case ast.DeclExport:
		c.collectShell(scope, d.Inner)
	case ast.DeclStruct:
		t := c.types.RegisterStruct(d.Name, d.Pos)
		c.declareNominal(scope, id, symbols.SymbolStruct, d, t)
	case ast.DeclEnum:
		t := c.types.RegisterEnum(d.Name, d.Pos)
		c.declareNominal(scope, id, symbols.SymbolEnum, d, t)
	case ast.DeclTrait:
		t := c.types.RegisterTrait(d.Name, d.Pos)
		c.declareNominal(scope, id, symbols.SymbolTrait, d, t)
	case ast.DeclEffect:
		t := c.types.RegisterEffect(d.Name, d.Pos)
		c.declareNominal(scope, id, symbols.SymbolEffect, d, t)
	case ast.DeclCapability:
		t := c.types.RegisterCapability(d.Name, d.Pos)
		c.declareNominal(scope, id, symbols.SymbolCapability, d, t)
	case ast.DeclContract:
		c.declareTagged(scope, symbols.NSContract, symbols.SymbolContract, id, d)
	case ast.DeclIntent:
		c.declareTagged(scope, symbols.NSIntent, symbols.SymbolIntent, id, d)
	}
}

// declareNominal installs a struct/enum/trait/effect/capability declaration
// into both the type and ordinary namespaces ("struct/enum
// definitions as both types and ordinary symbols", likewise for trait,
// effect, capability).
func (c *Checker) declareNominal(scope symbols.ScopeID, id ast.DeclID, kind symbols.SymbolKind, d *ast.Decl, t types.TypeID) {
	sym := symbols.Symbol{Kind: kind, Name: d.Name, Type: t, Pos: d.Pos, Decl: id}
	if _, ok := c.symbols.Declare(scope, symbols.NSType, sym); !ok {
		c.errorf(d.Pos, diag.NameDuplicate, "%s %q already declared", kind, d.Name)
		return
	}
	if _, ok := c.symbols.Declare(scope, symbols.NSOrdinary, sym); !ok {
		c.errorf(d.Pos, diag.NameDuplicate, "%s %q already declared", kind, d.Name)
	}
}

func (c *Checker) declareTagged(scope symbols.ScopeID, ns symbols.Namespace, kind symbols.SymbolKind, id ast.DeclID, d *ast.Decl) {
	sym := symbols.Symbol{Kind: kind, Name: d.Name, Pos: d.Pos, Decl: id}
	if _, ok := c.symbols.Declare(scope, ns, sym); !ok {
		c.errorf(d.Pos, diag.NameDuplicate, "%s %q already declared", kind, d.Name)
	}
}

func (c *Checker) collectBody(scope symbols.ScopeID, id ast.DeclID) {
	d := c.builder.Decl(id)
	if d == nil {
		return
	}
	switch d.Kind {
	case ast.DeclExport:
		c.collectBody(scope, d.Inner)
	case ast.DeclStruct:
		c.collectStructBody(scope, d)
	case ast.DeclEnum:
		c.collectEnumBody(scope, d)
	case ast.DeclTrait:
		c.collectTraitBody(scope, d)
	case ast.DeclEffect:
		c.collectEffectBody(scope, d)
	case ast.DeclCapability:
		c.collectCapabilityBody(scope, d)
	case ast.DeclFunction:
		c.collectFunctionSignature(scope, id, d)
	case ast.DeclVariable:
		c.collectVariableShell(scope, id, d)
	case ast.DeclTypeAlias:
		// Aliases resolve in program order: the target may name only
		// types already declared above it.
		target := c.resolveTypeExpr(c.genericScope(scope, d.Generics), d.AliasTarget)
		if _, ok := c.symbols.Declare(scope, symbols.NSType, symbols.Symbol{
			Kind: symbols.SymbolType, Name: d.Name, Type: target, Pos: d.Pos, Decl: id,
		}); !ok {
			c.errorf(d.Pos, diag.NameDuplicate, "type alias %q already declared", d.Name)
		}
	}
}

func (c *Checker) nominalType(scope symbols.ScopeID, name string) (types.TypeID, bool) {
	id, ok := c.symbols.Lookup(scope, symbols.NSType, name)
	if !ok {
		return types.NoTypeID, false
	}
	sym := c.symbols.Symbol(id)
	if sym == nil {
		return types.NoTypeID, false
	}
	return sym.Type, true
}

func (c *Checker) collectStructBody(scope symbols.ScopeID, d *ast.Decl) {
	t, ok := c.nominalType(scope, d.Name)
	if !ok {
		return
	}
	fscope := c.genericScope(scope, d.Generics)
	fields := make([]types.StructField, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = types.StructField{Name: f.Name, Type: c.resolveTypeExpr(fscope, f.Type)}
	}
	c.types.SetStructFields(t, fields)
}

func (c *Checker) collectEnumBody(scope symbols.ScopeID, d *ast.Decl) {
	t, ok := c.nominalType(scope, d.Name)
	if !ok {
		return
	}
	fscope := c.genericScope(scope, d.Generics)
	variants := make([]types.EnumVariant, len(d.Variants))
	for i, v := range d.Variants {
		fieldTypes := make([]types.TypeID, len(v.Fields))
		for j, ft := range v.Fields {
			fieldTypes[j] = c.resolveTypeExpr(fscope, ft)
		}
		variants[i] = types.EnumVariant{Name: v.Name, Fields: fieldTypes}
	}
	c.types.SetEnumVariants(t, variants)
}

func (c *Checker) collectTraitBody(scope symbols.ScopeID, d *ast.Decl) {
	t, ok := c.nominalType(scope, d.Name)
	if !ok {
		return
	}
	fscope := c.genericScope(scope, d.Generics)
	supers := make([]types.TypeID, 0, len(d.SuperTraits))
	for _, name := range d.SuperTraits {
		if st, ok := c.nominalType(scope, name); ok {
			supers = append(supers, st)
		} else {
			c.errorf(d.Pos, diag.NameUnknownType, "unknown super-trait %q", name)
		}
	}
	methods := make([]types.FnSignature, 0, len(d.Methods))
	for _, mid := range d.Methods {
		md := c.builder.Decl(mid)
		if md == nil {
			continue
		}
		methods = append(methods, c.fnSignatureOf(fscope, md))
	}
	c.types.SetTraitBody(t, supers, methods)
}

// fnSignatureOf resolves a bare function signature (used for trait/effect
// method tables); a leading `self`/`mut self` parameter is omitted from the
// positional type list since it is bound specially at call sites, not
// passed like an ordinary argument.
func (c *Checker) fnSignatureOf(scope symbols.ScopeID, d *ast.Decl) types.FnSignature {
	params := make([]types.TypeID, 0, len(d.Params))
	for _, p := range d.Params {
		if p.Name == "self" {
			continue
		}
		params = append(params, c.resolveTypeExpr(scope, p.Type))
	}
	return types.FnSignature{
		Name:    d.Name,
		Params:  params,
		Result:  c.resolveTypeExpr(scope, d.RetType),
		Effects: effectNamesOf(c.builder, d),
	}
}

func (c *Checker) collectEffectBody(scope symbols.ScopeID, d *ast.Decl) {
	t, ok := c.nominalType(scope, d.Name)
	if !ok {
		return
	}
	ops := make([]types.FnSignature, len(d.EffectOps))
	for i, op := range d.EffectOps {
		params := make([]types.TypeID, len(op.Params))
		for j, p := range op.Params {
			params[j] = c.resolveTypeExpr(scope, p.Type)
		}
		ops[i] = types.FnSignature{
			Name: op.Name, Params: params, Result: c.resolveTypeExpr(scope, op.RetType),
			Effects: []string{d.Name},
		}
	}
	c.types.SetEffectOps(t, ops)
}

func (c *Checker) collectCapabilityBody(scope symbols.ScopeID, d *ast.Decl) {
	t, ok := c.nominalType(scope, d.Name)
	if !ok {
		return
	}
	perms := make([]types.CapabilityPermission, len(d.Permissions))
	for i, p := range d.Permissions {
		perms[i] = types.CapabilityPermission{Name: p.Name, Type: c.resolveTypeExpr(scope, p.Type)}
	}
	c.types.SetCapabilityPermissions(t, perms)
}

func (c *Checker) collectFunctionSignature(scope symbols.ScopeID, id ast.DeclID, d *ast.Decl) {
	fscope := c.genericScope(scope, d.Generics)
	params := make([]types.TypeID, 0, len(d.Params))
	for _, p := range d.Params {
		if p.Name == "self" {
			continue
		}
		params = append(params, c.resolveTypeExpr(fscope, p.Type))
	}
	ret := c.resolveTypeExpr(fscope, d.RetType)
	fnType := c.types.RegisterFn(params, ret, effectNamesOf(c.builder, d))
	sid, ok := c.symbols.Declare(scope, symbols.NSOrdinary, symbols.Symbol{
		Kind: symbols.SymbolFunction, Name: d.Name, Type: fnType, Pos: d.Pos, Decl: id,
	})
	if !ok {
		c.errorf(d.Pos, diag.NameDuplicate, "function %q already declared", d.Name)
		return
	}
	c.declSym[id] = sid
}

func (c *Checker) collectVariableShell(scope symbols.ScopeID, id ast.DeclID, d *ast.Decl) {
	t := c.types.Builtins().Unknown
	if d.VarType.IsValid() {
		t = c.resolveTypeExpr(scope, d.VarType)
	}
	sid, ok := c.symbols.Declare(scope, symbols.NSOrdinary, symbols.Symbol{
		Kind: symbols.SymbolVariable, Name: d.Name, Type: t, Mutable: d.Mutable, Pos: d.Pos, Decl: id,
	})
	if !ok {
		c.errorf(d.Pos, diag.NameDuplicate, "variable %q already declared", d.Name)
		return
	}
	c.declSym[id] = sid
}

// effectNamesOf scans a declaration's annotations for the (at most one,
// but any is tolerated) @effect[...] clause, since a function's type must
// carry its declared effect set for higher-order call sites.
func effectNamesOf(builder *ast.Builder, d *ast.Decl) []string {
	var names []string
	for _, aid := range d.Annotations {
		a := builder.Annotation(aid)
		if a != nil && a.Kind == ast.AnnEffectSet {
			names = append(names, a.Effects...)
		}
	}
	return names
}
