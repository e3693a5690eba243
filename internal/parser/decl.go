package parser

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/token"
)

// parseDecl parses one top-level declaration, including any leading
// annotations and the `export`/`pure`/`extern` modifiers.
func (p *Parser) parseDecl() (ast.DeclID, bool) {
	annotations := p.parseAnnotations()

	if p.at(token.KwExport) {
		start := p.advance().Pos
		inner, ok := p.parseDecl()
		if !ok {
			return ast.NoDeclID, false
		}
		return p.builder.NewDecl(ast.Decl{Kind: ast.DeclExport, Pos: start, Inner: inner}), true
	}

	pure := false
	if p.at(token.KwPure) {
		p.advance()
		pure = true
	}
	extern := false
	if p.at(token.KwExtern) {
		p.advance()
		extern = true
	}

	switch p.peek().Kind {
	case token.KwFn:
		return p.parseFnDecl(annotations, pure, extern), true
	case token.KwLet:
		return p.parseVarDecl(annotations), true
	case token.KwType:
		return p.parseTypeAliasDecl(annotations), true
	case token.KwStruct:
		return p.parseStructDecl(annotations), true
	case token.KwEnum:
		return p.parseEnumDecl(annotations), true
	case token.KwTrait:
		return p.parseTraitDecl(annotations), true
	case token.KwImpl:
		return p.parseImplDecl(annotations), true
	case token.KwContract:
		return p.parseContractOrIntentDecl(annotations, ast.DeclContract), true
	case token.KwIntent:
		return p.parseContractOrIntentDecl(annotations, ast.DeclIntent), true
	case token.KwEffect:
		return p.parseEffectDecl(annotations), true
	case token.KwCapability:
		return p.parseCapabilityDecl(annotations), true
	case token.KwImport:
		return p.parseImportDecl(), true
	default:
		tok := p.peek()
		p.errorf(diag.SynExpected, "expected a declaration, got %q", tok.Text)
		return ast.NoDeclID, false
	}
}

func (p *Parser) parseGenericParams() []ast.GenericParam {
	if !p.at(token.Lt) {
		return nil
	}
	p.advance()
	var params []ast.GenericParam
	for !p.at(token.Gt) && !p.at(token.EOF) {
		name, ok := p.expect(token.Ident, "generic parameter name")
		if !ok {
			break
		}
		var bounds []ast.TypeID
		if p.at(token.Colon) {
			p.advance()
			bounds = append(bounds, p.parseType())
			for p.at(token.Amp) {
				p.advance()
				bounds = append(bounds, p.parseType())
			}
		}
		def := ast.NoTypeID
		if p.at(token.Assign) {
			p.advance()
			def = p.parseType()
		}
		params = append(params, ast.GenericParam{Name: name.Text, Bounds: bounds, Default: def})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.Gt, "'>'")
	return params
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LParen, "'('")
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		mut := false
		if p.at(token.KwMut) && p.peekAt(1).Kind == token.KwSelf {
			p.advance() // 'mut'
			self := p.advance()
			params = append(params, ast.Param{Name: "self", Mut: true, Pos: self.Pos})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if p.at(token.KwSelf) {
			self := p.advance()
			params = append(params, ast.Param{Name: "self", Pos: self.Pos})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if p.at(token.KwMut) {
			p.advance()
			mut = true
		}
		name, ok := p.expect(token.Ident, "parameter name")
		if !ok {
			break
		}
		p.expect(token.Colon, "':'")
		ty := p.parseType()
		params = append(params, ast.Param{Name: name.Text, Type: ty, Mut: mut, Pos: name.Pos})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	return params
}

func (p *Parser) parseFnDecl(annotations []ast.AnnotationID, pure, extern bool) ast.DeclID {
	start := p.advance().Pos // 'fn'
	name, _ := p.expect(token.Ident, "function name")
	generics := p.parseGenericParams()
	params := p.parseParamList()
	ret := p.builder.NewType(ast.TypeExpr{Kind: ast.TyNamed, Name: "Void"})
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
	}
	body := ast.NoExprID
	if extern || p.at(token.Semicolon) {
		p.expect(token.Semicolon, "';'")
	} else {
		body = p.parseBlockExpr()
	}
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclFunction, Pos: start, Name: name.Text, Annotations: annotations,
		Generics: generics, Params: params, RetType: ret, Body: body, Pure: pure,
	})
}

func (p *Parser) parseVarDecl(annotations []ast.AnnotationID) ast.DeclID {
	start := p.advance().Pos // 'let'
	mutable := false
	if p.at(token.KwMut) {
		p.advance()
		mutable = true
	}
	name, _ := p.expect(token.Ident, "variable name")
	varType := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		varType = p.parseType()
	}
	init := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		init = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclVariable, Pos: start, Name: name.Text, Annotations: annotations,
		Mutable: mutable, VarType: varType, Init: init,
	})
}

func (p *Parser) parseTypeAliasDecl(annotations []ast.AnnotationID) ast.DeclID {
	start := p.advance().Pos // 'type'
	name, _ := p.expect(token.Ident, "type name")
	generics := p.parseGenericParams()
	p.expect(token.Assign, "'='")
	target := p.parseType()
	p.expect(token.Semicolon, "';'")
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclTypeAlias, Pos: start, Name: name.Text, Annotations: annotations,
		Generics: generics, AliasTarget: target,
	})
}

func (p *Parser) parseStructDecl(annotations []ast.AnnotationID) ast.DeclID {
	start := p.advance().Pos // 'struct'
	name, _ := p.expect(token.Ident, "struct name")
	generics := p.parseGenericParams()
	p.expect(token.LBrace, "'{'")
	var fields []ast.FieldDecl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldAnnotations := p.parseAnnotations()
		fname, ok := p.expect(token.Ident, "field name")
		if !ok {
			break
		}
		p.expect(token.Colon, "':'")
		ty := p.parseType()
		def := ast.NoExprID
		if p.at(token.Assign) {
			p.advance()
			def = p.parseExpr()
		}
		fields = append(fields, ast.FieldDecl{
			Name: fname.Text, Type: ty, Default: def, Annotations: fieldAnnotations, Pos: fname.Pos,
		})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBrace, "'}'")
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclStruct, Pos: start, Name: name.Text, Annotations: annotations,
		Generics: generics, Fields: fields,
	})
}

func (p *Parser) parseEnumDecl(annotations []ast.AnnotationID) ast.DeclID {
	start := p.advance().Pos // 'enum'
	name, _ := p.expect(token.Ident, "enum name")
	generics := p.parseGenericParams()
	p.expect(token.LBrace, "'{'")
	var variants []ast.EnumVariant
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		vname, ok := p.expect(token.Ident, "variant name")
		if !ok {
			break
		}
		var fields []ast.TypeID
		if p.at(token.LParen) {
			p.advance()
			for !p.at(token.RParen) && !p.at(token.EOF) {
				fields = append(fields, p.parseType())
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RParen, "')'")
		}
		variants = append(variants, ast.EnumVariant{Name: vname.Text, Fields: fields, Pos: vname.Pos})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBrace, "'}'")
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclEnum, Pos: start, Name: name.Text, Annotations: annotations,
		Generics: generics, Variants: variants,
	})
}

func (p *Parser) parseTraitDecl(annotations []ast.AnnotationID) ast.DeclID {
	start := p.advance().Pos // 'trait'
	name, _ := p.expect(token.Ident, "trait name")
	generics := p.parseGenericParams()
	var supers []string
	if p.at(token.Colon) {
		p.advance()
		for {
			seg, ok := p.expect(token.Ident, "super-trait name")
			if !ok {
				break
			}
			supers = append(supers, seg.Text)
			if p.at(token.Amp) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.LBrace, "'{'")
	var methods []ast.DeclID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		methodAnnotations := p.parseAnnotations()
		if id, ok := p.tryParseMethodSignature(methodAnnotations); ok {
			methods = append(methods, id)
			continue
		}
		p.synchronize()
	}
	p.expect(token.RBrace, "'}'")
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclTrait, Pos: start, Name: name.Text, Annotations: annotations,
		Generics: generics, SuperTraits: supers, Methods: methods,
	})
}

// tryParseMethodSignature parses one `fn name(params) -> Ret [;|block]`
// inside a trait or impl body.
func (p *Parser) tryParseMethodSignature(annotations []ast.AnnotationID) (ast.DeclID, bool) {
	if !p.at(token.KwFn) {
		return ast.NoDeclID, false
	}
	return p.parseFnDecl(annotations, false, false), true
}

func (p *Parser) parseImplDecl(annotations []ast.AnnotationID) ast.DeclID {
	start := p.advance().Pos // 'impl'
	first := p.parseType()
	traitName := ""
	forType := first
	if p.at(token.KwFor) {
		p.advance()
		traitName = p.builder.Type(first).Name
		forType = p.parseType()
	}
	p.expect(token.LBrace, "'{'")
	var methods []ast.DeclID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		methodAnnotations := p.parseAnnotations()
		if id, ok := p.tryParseMethodSignature(methodAnnotations); ok {
			methods = append(methods, id)
			continue
		}
		p.synchronize()
	}
	p.expect(token.RBrace, "'}'")
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclImpl, Pos: start, Annotations: annotations,
		TraitName: traitName, ForType: forType, ImplMethods: methods,
	})
}

// parseContractOrIntentDecl parses `contract`/`intent Name<Generics> { @requires ... }`:
// a body containing only annotations.
func (p *Parser) parseContractOrIntentDecl(annotations []ast.AnnotationID, kind ast.DeclKind) ast.DeclID {
	start := p.advance().Pos // 'contract'/'intent'
	name, _ := p.expect(token.Ident, "name")
	generics := p.parseGenericParams()
	p.expect(token.LBrace, "'{'")
	body := p.parseAnnotations()
	p.expect(token.RBrace, "'}'")
	// A contract/intent body holds only annotations (the contract
	// model), so the body clauses join the same Annotations list as any
	// leading annotations on the declaration itself.
	all := append(annotations, body...)
	return p.builder.NewDecl(ast.Decl{
		Kind: kind, Pos: start, Name: name.Text, Annotations: all, Generics: generics,
	})
}

func (p *Parser) parseEffectDecl(annotations []ast.AnnotationID) ast.DeclID {
	start := p.advance().Pos // 'effect'
	name, _ := p.expect(token.Ident, "effect name")
	p.expect(token.LBrace, "'{'")
	var ops []ast.FnSignature
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.expect(token.KwFn, "'fn'")
		opName, ok := p.expect(token.Ident, "operation name")
		if !ok {
			p.synchronize()
			continue
		}
		params := p.parseParamList()
		ret := p.builder.NewType(ast.TypeExpr{Kind: ast.TyNamed, Name: "Void"})
		if p.at(token.Arrow) {
			p.advance()
			ret = p.parseType()
		}
		p.expect(token.Semicolon, "';'")
		ops = append(ops, ast.FnSignature{Name: opName.Text, Params: params, RetType: ret, Pos: opName.Pos})
	}
	p.expect(token.RBrace, "'}'")
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclEffect, Pos: start, Name: name.Text, Annotations: annotations, EffectOps: ops,
	})
}

func (p *Parser) parseCapabilityDecl(annotations []ast.AnnotationID) ast.DeclID {
	start := p.advance().Pos // 'capability'
	name, _ := p.expect(token.Ident, "capability name")
	p.expect(token.LBrace, "'{'")
	var perms []ast.Permission
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		pname, ok := p.expect(token.Ident, "permission name")
		if !ok {
			break
		}
		p.expect(token.Colon, "':'")
		ty := p.parseType()
		perms = append(perms, ast.Permission{Name: pname.Text, Type: ty, Pos: pname.Pos})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBrace, "'}'")
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclCapability, Pos: start, Name: name.Text, Annotations: annotations, Permissions: perms,
	})
}

// parseImportDecl parses `import a.b.c [as alias];`, `import a.b.{x, y as z};`,
// and `import a.b.*;`.
func (p *Parser) parseImportDecl() ast.DeclID {
	start := p.advance().Pos // 'import'
	var path []string
	for {
		seg, ok := p.expect(token.Ident, "module path segment")
		if !ok {
			break
		}
		path = append(path, seg.Text)
		if p.at(token.Dot) {
			next := p.peekAt(1)
			if next.Kind == token.LBrace || next.Kind == token.Star {
				p.advance()
				break
			}
			p.advance()
			continue
		}
		break
	}

	var items []ast.ImportItem
	wildcard := false
	switch {
	case p.at(token.Star):
		p.advance()
		wildcard = true
	case p.at(token.LBrace):
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			iname, ok := p.expect(token.Ident, "imported name")
			if !ok {
				break
			}
			alias := ""
			if p.at(token.KwAs) {
				p.advance()
				if a, ok := p.expect(token.Ident, "alias"); ok {
					alias = a.Text
				}
			}
			items = append(items, ast.ImportItem{Name: iname.Text, Alias: alias})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBrace, "'}'")
	case p.at(token.KwAs):
		p.advance()
		alias := ""
		if a, ok := p.expect(token.Ident, "alias"); ok {
			alias = a.Text
		}
		items = []ast.ImportItem{{Name: path[len(path)-1], Alias: alias}}
		path = path[:len(path)-1]
	}

	p.expect(token.Semicolon, "';'")
	return p.builder.NewDecl(ast.Decl{
		Kind: ast.DeclImport, Pos: start, ModulePath: path, ImportList: items, Wildcard: wildcard,
	})
}
