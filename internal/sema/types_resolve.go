package sema

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/symbols"
	"github.com/covenant-lang/covenant/internal/types"
)

// resolveTypeExpr converts a syntactic TypeExpr (the type as written) into
// an interned semantic TypeID, looking up nominal names in scope.
func (c *Checker) resolveTypeExpr(scope symbols.ScopeID, tid ast.TypeID) types.TypeID {
	if !tid.IsValid() {
		return c.types.Builtins().Void
	}
	te := c.builder.Type(tid)
	if te == nil {
		return c.types.Builtins().Unknown
	}
	switch te.Kind {
	case ast.TyPrimitive:
		if t := c.resolvePrimitiveName(te.Name); t != types.NoTypeID {
			return t
		}
		c.errorf(te.Pos, diag.NameUnknownType, "unknown type %q", te.Name)
		return c.errType()
	case ast.TyNamed:
		return c.resolveNamedType(scope, te)
	case ast.TyGeneric:
		return c.resolveGenericType(scope, te)
	case ast.TyArray:
		elem := c.resolveTypeExpr(scope, te.Elem)
		count := types.ArrayDynamicLength
		if te.Size != nil {
			count = uint32(*te.Size)
		}
		return c.types.Intern(types.MakeArray(elem, count))
	case ast.TyTuple:
		elems := make([]types.TypeID, len(te.Args))
		for i, a := range te.Args {
			elems[i] = c.resolveTypeExpr(scope, a)
		}
		return c.types.RegisterTuple(elems)
	case ast.TyFunction:
		params := make([]types.TypeID, len(te.Params))
		for i, p := range te.Params {
			params[i] = c.resolveTypeExpr(scope, p)
		}
		ret := c.resolveTypeExpr(scope, te.Ret)
		return c.types.RegisterFn(params, ret, te.Effects)
	case ast.TyReference:
		elem := c.resolveTypeExpr(scope, te.Elem)
		return c.types.Intern(types.MakeReference(elem, te.Mutable))
	case ast.TyOptional:
		elem := c.resolveTypeExpr(scope, te.Elem)
		return c.types.Intern(types.MakeOptional(elem))
	case ast.TyResult:
		ok := c.resolveTypeExpr(scope, te.Ret)
		errT := c.resolveTypeExpr(scope, te.ErrType)
		return c.types.Intern(types.MakeResult(ok, errT))
	case ast.TyNever:
		return c.types.Builtins().Never
	default:
		return c.types.Builtins().Unknown
	}
}

// resolvePrimitiveName maps a reserved type-name's source text to its
// builtin TypeID, returning NoTypeID for anything else (a nominal name).
func (c *Checker) resolvePrimitiveName(name string) types.TypeID {
	b := c.types.Builtins()
	switch name {
	case "Int":
		return b.Int
	case "Int8":
		return b.Int8
	case "Int16":
		return b.Int16
	case "Int32":
		return b.Int32
	case "Int64":
		return b.Int64
	case "UInt":
		return b.UInt
	case "Float32":
		return b.Float32
	case "Float64":
		return b.Float64
	case "Bool":
		return b.Bool
	case "Char":
		return b.Char
	case "String":
		return b.String
	case "Void":
		return b.Void
	case "Never":
		return b.Never
	default:
		return types.NoTypeID
	}
}

// resolveNamedType resolves a bare (non-generic) named type: a primitive
// keyword or a nominal struct/enum/trait/effect/capability/alias/type-var
// looked up by name in the type namespace.
func (c *Checker) resolveNamedType(scope symbols.ScopeID, te *ast.TypeExpr) types.TypeID {
	if t := c.resolvePrimitiveName(te.Name); t != types.NoTypeID {
		return t
	}
	if id, ok := c.symbols.Lookup(scope, symbols.NSType, te.Name); ok {
		if sym := c.symbols.Symbol(id); sym != nil && sym.Type != types.NoTypeID {
			return sym.Type
		}
	}
	c.errorf(te.Pos, diag.NameUnknownType, "unknown type %q", te.Name)
	return c.errType()
}

// resolveGenericType resolves `Base<Args...>`. Result and Option are the
// two generic-looking names the grammar treats as builtin type
// constructors rather than nominal declarations.
func (c *Checker) resolveGenericType(scope symbols.ScopeID, te *ast.TypeExpr) types.TypeID {
	args := make([]types.TypeID, len(te.Args))
	for i, a := range te.Args {
		args[i] = c.resolveTypeExpr(scope, a)
	}
	switch te.Name {
	case "Result":
		if len(args) != 2 {
			c.errorf(te.Pos, diag.TypeArity, "Result expects 2 type arguments, got %d", len(args))
			return c.errType()
		}
		return c.types.Intern(types.MakeResult(args[0], args[1]))
	case "Option":
		if len(args) != 1 {
			c.errorf(te.Pos, diag.TypeArity, "Option expects 1 type argument, got %d", len(args))
			return c.errType()
		}
		return c.types.Intern(types.MakeOptional(args[0]))
	}
	id, ok := c.symbols.Lookup(scope, symbols.NSType, te.Name)
	if !ok {
		c.errorf(te.Pos, diag.NameUnknownType, "unknown type %q", te.Name)
		return c.errType()
	}
	base := c.symbols.Symbol(id).Type
	return c.types.RegisterGenericApp(base, args)
}

// genericScope binds generics as a child scope's type variables, returning
// parent unchanged when there are none so callers never allocate an empty
// scope for a non-generic declaration.
func (c *Checker) genericScope(parent symbols.ScopeID, generics []ast.GenericParam) symbols.ScopeID {
	if len(generics) == 0 {
		return parent
	}
	s := c.symbols.NewScope(symbols.ScopeBlock, parent)
	for _, g := range generics {
		bounds := make([]types.TypeID, len(g.Bounds))
		for i, b := range g.Bounds {
			bounds[i] = c.resolveTypeExpr(parent, b)
		}
		tv := c.types.RegisterTypeVar(g.Name, bounds)
		c.symbols.Declare(s, symbols.NSType, symbols.Symbol{Kind: symbols.SymbolType, Name: g.Name, Type: tv})
	}
	return s
}
