package parser

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/token"
)

// parseAnnotations consumes every `@...` clause at the current position
// (declarations may carry any number, e.g. a function with both @requires
// and @effect). Stops at the first token that is not `@`.
func (p *Parser) parseAnnotations() []ast.AnnotationID {
	var out []ast.AnnotationID
	for p.at(token.At) {
		if id, ok := p.parseAnnotation(); ok {
			out = append(out, id)
		}
	}
	return out
}

// parseAnnotation parses one `@name ...` clause (the fixed
// annotation set). An unrecognized name after `@` is reported and skipped.
func (p *Parser) parseAnnotation() (ast.AnnotationID, bool) {
	at := p.advance() // '@'
	name := p.peek()
	switch name.Kind {
	case token.Ident, token.KwRequires, token.KwEnsures, token.KwInvariant,
		token.KwEffect, token.KwCapability, token.KwContract, token.KwIntent:
		p.advance()
	default:
		p.errorf(diag.SynExpected, "expected annotation name, got %q", name.Text)
		return ast.NoAnnotationID, false
	}

	switch name.Text {
	case "requires":
		expr := p.parseExpr()
		return p.builder.NewAnnotation(ast.Annotation{Kind: ast.AnnRequires, Pos: at.Pos, Expr: expr}), true
	case "ensures":
		expr := p.parseExpr()
		return p.builder.NewAnnotation(ast.Annotation{Kind: ast.AnnEnsures, Pos: at.Pos, Expr: expr}), true
	case "invariant":
		expr := p.parseExpr()
		return p.builder.NewAnnotation(ast.Annotation{Kind: ast.AnnInvariant, Pos: at.Pos, Expr: expr}), true
	case "effect":
		effects := p.parseBracketedNameList()
		return p.builder.NewAnnotation(ast.Annotation{Kind: ast.AnnEffectSet, Pos: at.Pos, Effects: effects}), true
	case "capability":
		return p.parseCapabilitySpec(at)
	case "contract":
		return p.parseRefAnnotation(at, ast.AnnContractRef)
	case "intent":
		return p.parseRefAnnotation(at, ast.AnnIntentRef)
	case "verify":
		return p.parseVerifyLevel(at)
	default:
		p.errorf(diag.SynUnexpectedToken, "unknown annotation @%s", name.Text)
		return ast.NoAnnotationID, false
	}
}

func (p *Parser) parseBracketedNameList() []string {
	var names []string
	if _, ok := p.expect(token.LBracket, "'['"); !ok {
		return names
	}
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if tok, ok := p.expect(token.Ident, "name"); ok {
			names = append(names, tok.Text)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBracket, "']'")
	return names
}

func (p *Parser) parseCapabilitySpec(at token.Token) (ast.AnnotationID, bool) {
	name, ok := p.expect(token.Ident, "capability name")
	if !ok {
		return ast.NoAnnotationID, false
	}
	var fields []ast.FieldInit
	if p.at(token.LBrace) {
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			fname, ok := p.expect(token.Ident, "field name")
			if !ok {
				break
			}
			p.expect(token.Colon, "':'")
			value := p.parseExpr()
			fields = append(fields, ast.FieldInit{Name: fname.Text, Value: value, Pos: fname.Pos})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBrace, "'}'")
	}
	return p.builder.NewAnnotation(ast.Annotation{
		Kind: ast.AnnCapabilitySpec, Pos: at.Pos, CapabilityName: name.Text, CapabilityFields: fields,
	}), true
}

func (p *Parser) parseRefAnnotation(at token.Token, kind ast.AnnotationKind) (ast.AnnotationID, bool) {
	name, ok := p.expect(token.Ident, "name")
	if !ok {
		return ast.NoAnnotationID, false
	}
	var typeArgs []ast.TypeID
	if p.at(token.Lt) {
		p.advance()
		for !p.at(token.Gt) && !p.at(token.EOF) {
			typeArgs = append(typeArgs, p.parseType())
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.Gt, "'>'")
	}
	return p.builder.NewAnnotation(ast.Annotation{
		Kind: kind, Pos: at.Pos, RefName: name.Text, TypeArgs: typeArgs,
	}), true
}

func (p *Parser) parseVerifyLevel(at token.Token) (ast.AnnotationID, bool) {
	p.expect(token.LParen, "'('")
	p.expect(token.Ident, "'level'") // the `level:` key, matched loosely
	p.expect(token.Colon, "':'")
	level := "full"
	if tok, ok := p.expect(token.StringLit, "verify level string"); ok && tok.Literal != nil {
		level = tok.Literal.String
	}
	p.expect(token.RParen, "')'")
	return p.builder.NewAnnotation(ast.Annotation{Kind: ast.AnnVerifyLevel, Pos: at.Pos, VerifyLevel: level}), true
}
