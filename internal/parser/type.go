package parser

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/token"
)

// parseType parses one syntactic type (the Type family), handling
// postfix `?` (optional) after any primary type form.
func (p *Parser) parseType() ast.TypeID {
	base := p.parseTypePrimary()
	for p.at(token.Question) {
		pos := p.advance().Pos
		base = p.builder.NewType(ast.TypeExpr{Kind: ast.TyOptional, Pos: pos, Elem: base})
	}
	return base
}

func (p *Parser) parseTypePrimary() ast.TypeID {
	tok := p.peek()
	switch {
	case tok.Kind.IsReservedTypeName():
		p.advance()
		return p.parseNamedOrGeneric(tok)
	case tok.Kind == token.Ident:
		p.advance()
		return p.parseNamedOrGeneric(tok)
	case tok.Kind == token.Amp:
		return p.parseReferenceType()
	case tok.Kind == token.LBracket:
		return p.parseArrayType()
	case tok.Kind == token.LParen:
		return p.parseTupleOrParenType()
	case tok.Kind == token.KwFn:
		return p.parseFunctionType()
	default:
		p.errorf(diag.SynExpected, "expected a type, got %q", tok.Text)
		return p.builder.NewType(ast.TypeExpr{Kind: ast.TyInvalid, Pos: tok.Pos, Name: tok.Text})
	}
}

// parseNamedOrGeneric consumes the rest of a dotted path (`a.b.c`) that
// began with name, then an optional `<Args, ...>` generic argument list.
func (p *Parser) parseNamedOrGeneric(name token.Token) ast.TypeID {
	path := name.Text
	pos := name.Pos
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		seg := p.advance()
		path += "." + seg.Text
		pos = pos.Cover(seg.Pos)
	}
	if !p.at(token.Lt) {
		return p.builder.NewType(ast.TypeExpr{Kind: ast.TyNamed, Pos: pos, Name: path})
	}
	p.advance()
	var args []ast.TypeID
	for !p.at(token.Gt) && !p.at(token.EOF) {
		args = append(args, p.parseType())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	closePos := pos
	if t, ok := p.expect(token.Gt, "'>'"); ok {
		closePos = t.Pos
	}
	return p.builder.NewType(ast.TypeExpr{Kind: ast.TyGeneric, Pos: pos.Cover(closePos), Name: path, Args: args})
}

func (p *Parser) parseReferenceType() ast.TypeID {
	start := p.advance().Pos // '&'
	mutable := false
	if p.at(token.KwMut) {
		p.advance()
		mutable = true
	}
	elem := p.parseType()
	return p.builder.NewType(ast.TypeExpr{Kind: ast.TyReference, Pos: start, Elem: elem, Mutable: mutable})
}

// parseArrayType parses `[T]` (dynamic) or `[T; N]` (fixed size).
func (p *Parser) parseArrayType() ast.TypeID {
	start := p.advance().Pos // '['
	elem := p.parseType()
	var size *uint64
	if p.at(token.Semicolon) {
		p.advance()
		if tok, ok := p.expect(token.IntLit, "array size"); ok && tok.Literal != nil {
			n := uint64(tok.Literal.Int)
			size = &n
		}
	}
	end, _ := p.expect(token.RBracket, "']'")
	return p.builder.NewType(ast.TypeExpr{Kind: ast.TyArray, Pos: start.Cover(end.Pos), Elem: elem, Size: size})
}

// parseTupleOrParenType parses `(T)` (unwraps to T) or `(T1, T2, ...)`.
func (p *Parser) parseTupleOrParenType() ast.TypeID {
	start := p.advance().Pos // '('
	var elems []ast.TypeID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elems = append(elems, p.parseType())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(token.RParen, "')'")
	pos := start.Cover(end.Pos)
	if len(elems) == 1 {
		return elems[0]
	}
	return p.builder.NewType(ast.TypeExpr{Kind: ast.TyTuple, Pos: pos, Args: elems})
}

// parseFunctionType parses `fn(T1, T2) -> Ret` with an optional trailing
// `effect[Name, ...]` declared-effect list.
func (p *Parser) parseFunctionType() ast.TypeID {
	start := p.advance().Pos // 'fn'
	p.expect(token.LParen, "'('")
	var params []ast.TypeID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseType())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	ret := p.builder.NewType(ast.TypeExpr{Kind: ast.TyNamed, Name: "Void"})
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
	}
	var effects []string
	if p.at(token.KwEffect) && p.peekAt(1).Kind == token.LBracket {
		p.advance()
		p.advance()
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			if tok, ok := p.expect(token.Ident, "effect name"); ok {
				effects = append(effects, tok.Text)
			}
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBracket, "']'")
	}
	return p.builder.NewType(ast.TypeExpr{Kind: ast.TyFunction, Pos: start, Params: params, Ret: ret, Effects: effects})
}
