package sema

import (
	"strings"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/symbols"
	"github.com/covenant-lang/covenant/internal/types"
)

// bindPattern declares every binding a pattern introduces in scope, matching
// its shape against subjectType (the pattern-binding rules). It
// never rejects a structurally-valid pattern for being "incomplete" — a
// missing field or an unmatched variant is reported, but checking continues
// so a single bad arm doesn't suppress diagnostics in the rest of a match.
func (c *Checker) bindPattern(scope symbols.ScopeID, id ast.PatternID, subjectType types.TypeID) {
	p := c.builder.Pattern(id)
	if p == nil {
		return
	}
	switch p.Kind {
	case ast.PatWildcard, ast.PatLiteral, ast.PatRange:
		// No bindings introduced.
	case ast.PatIdentBinding:
		if _, ok := c.symbols.Declare(scope, symbols.NSOrdinary, symbols.Symbol{
			Kind: symbols.SymbolVariable, Name: p.Name, Type: subjectType, Mutable: p.Mutable, Pos: p.Pos,
		}); !ok {
			c.errorf(p.Pos, diag.NameDuplicate, "binding %q already declared in this pattern", p.Name)
		}
	case ast.PatTuple:
		c.bindTuplePattern(scope, p, subjectType)
	case ast.PatStruct:
		c.bindStructPattern(scope, p, subjectType)
	case ast.PatEnumVariant:
		c.bindEnumVariantPattern(scope, p, subjectType)
	}
}

func (c *Checker) bindTuplePattern(scope symbols.ScopeID, p *ast.Pattern, subjectType types.TypeID) {
	unk := c.types.Builtins().Unknown
	info, ok := c.types.TupleInfo(subjectType)
	for i, sub := range p.Elements {
		elemType := unk
		if ok && i < len(info.Elements) {
			elemType = info.Elements[i]
		}
		c.bindPattern(scope, sub, elemType)
	}
}

func (c *Checker) bindStructPattern(scope symbols.ScopeID, p *ast.Pattern, subjectType types.TypeID) {
	unk := c.types.Builtins().Unknown
	info, ok := c.types.StructInfo(subjectType)
	if !ok {
		c.errorf(p.Pos, diag.TypeUnknownField, "pattern %q does not match a struct type", p.Name)
	}
	for _, pf := range p.Fields {
		fieldType := unk
		if ok {
			found := false
			for _, f := range info.Fields {
				if f.Name == pf.Name {
					fieldType = f.Type
					found = true
					break
				}
			}
			if !found {
				c.errorf(pf.Pos, diag.TypeUnknownField, "struct %q has no field %q", p.Name, pf.Name)
			}
		}
		if pf.Pattern.IsValid() {
			c.bindPattern(scope, pf.Pattern, fieldType)
			continue
		}
		if _, ok := c.symbols.Declare(scope, symbols.NSOrdinary, symbols.Symbol{
			Kind: symbols.SymbolVariable, Name: pf.Name, Type: fieldType, Pos: pf.Pos,
		}); !ok {
			c.errorf(pf.Pos, diag.NameDuplicate, "binding %q already declared in this pattern", pf.Name)
		}
	}
}

// bindEnumVariantPattern resolves the variant name trailing p.Name's
// "::"-joined path (the subject's own enum type is already known from
// context, so only the final segment need be looked up).
func (c *Checker) bindEnumVariantPattern(scope symbols.ScopeID, p *ast.Pattern, subjectType types.TypeID) {
	variantName := p.Name
	if idx := strings.LastIndex(p.Name, "::"); idx >= 0 {
		variantName = p.Name[idx+2:]
	}
	unk := c.types.Builtins().Unknown
	info, ok := c.types.EnumInfo(subjectType)
	if !ok {
		c.errorf(p.Pos, diag.TypeUnknownVariant, "pattern %q does not match an enum type", p.Name)
		for _, sub := range p.Elements {
			c.bindPattern(scope, sub, unk)
		}
		return
	}
	var fields []types.TypeID
	found := false
	for _, v := range info.Variants {
		if v.Name == variantName {
			fields = v.Fields
			found = true
			break
		}
	}
	if !found {
		c.errorf(p.Pos, diag.TypeUnknownVariant, "enum %q has no variant %q", info.Name, variantName)
	}
	for i, sub := range p.Elements {
		ft := unk
		if i < len(fields) {
			ft = fields[i]
		}
		c.bindPattern(scope, sub, ft)
	}
}
