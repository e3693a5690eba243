package parser

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/token"
)

// parsePattern parses one pattern (the Patterns grammar).
func (p *Parser) parsePattern() ast.PatternID {
	switch {
	case p.at(token.Underscore):
		pos := p.advance().Pos
		return p.builder.NewPattern(ast.Pattern{Kind: ast.PatWildcard, Pos: pos})
	case p.at(token.LParen):
		return p.parseTuplePattern()
	case p.at(token.KwMut):
		return p.parseIdentBindingPattern()
	case p.at(token.Ident):
		return p.parsePathLedPattern()
	case p.peek().Kind.IsLiteral():
		return p.parseLiteralOrRangePattern()
	default:
		p.errorf(diag.SynExpected, "expected a pattern, got %q", p.peek().Text)
		pos := p.peek().Pos
		return p.builder.NewPattern(ast.Pattern{Kind: ast.PatInvalid, Pos: pos})
	}
}

func (p *Parser) parseIdentBindingPattern() ast.PatternID {
	start := p.advance().Pos // 'mut'
	name, ok := p.expect(token.Ident, "binding name")
	if !ok {
		return p.builder.NewPattern(ast.Pattern{Kind: ast.PatInvalid, Pos: start})
	}
	return p.builder.NewPattern(ast.Pattern{Kind: ast.PatIdentBinding, Pos: start, Name: name.Text, Mutable: true})
}

// parsePathLedPattern disambiguates a bare identifier binding from a
// `Type::Variant(...)` enum pattern or `Name { ... }` struct pattern, all of
// which start with an Ident.
func (p *Parser) parsePathLedPattern() ast.PatternID {
	name := p.advance()
	path := name.Text
	for p.at(token.ColonColon) {
		p.advance()
		seg, ok := p.expect(token.Ident, "variant name")
		if !ok {
			break
		}
		path += "::" + seg.Text
	}

	switch {
	case path != name.Text && p.at(token.LParen):
		return p.parseEnumVariantPattern(name.Pos, path)
	case path != name.Text:
		return p.builder.NewPattern(ast.Pattern{Kind: ast.PatEnumVariant, Pos: name.Pos, Name: path})
	case p.at(token.LBrace):
		return p.parseStructPattern(name.Pos, path)
	default:
		return p.builder.NewPattern(ast.Pattern{Kind: ast.PatIdentBinding, Pos: name.Pos, Name: path})
	}
}

func (p *Parser) parseEnumVariantPattern(pos source.Position, path string) ast.PatternID {
	p.advance() // '('
	var elems []ast.PatternID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elems = append(elems, p.parsePattern())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	return p.builder.NewPattern(ast.Pattern{Kind: ast.PatEnumVariant, Pos: pos, Name: path, Elements: elems})
}

func (p *Parser) parseStructPattern(pos source.Position, name string) ast.PatternID {
	p.advance() // '{'
	var fields []ast.PatField
	hasRest := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDot) {
			p.advance()
			hasRest = true
			break
		}
		fname, ok := p.expect(token.Ident, "field name")
		if !ok {
			break
		}
		sub := ast.NoPatternID
		if p.at(token.Colon) {
			p.advance()
			sub = p.parsePattern()
		}
		fields = append(fields, ast.PatField{Name: fname.Text, Pattern: sub, Pos: fname.Pos})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBrace, "'}'")
	return p.builder.NewPattern(ast.Pattern{Kind: ast.PatStruct, Pos: pos, Name: name, Fields: fields, HasRest: hasRest})
}

func (p *Parser) parseTuplePattern() ast.PatternID {
	start := p.advance().Pos // '('
	var elems []ast.PatternID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elems = append(elems, p.parsePattern())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	end, _ := p.expect(token.RParen, "')'")
	pos := start.Cover(end.Pos)
	if len(elems) == 1 {
		return elems[0] // a parenthesized single pattern, not a one-tuple
	}
	return p.builder.NewPattern(ast.Pattern{Kind: ast.PatTuple, Pos: pos, Elements: elems})
}

func (p *Parser) parseLiteralOrRangePattern() ast.PatternID {
	tok := p.advance()
	lo := tok.Literal
	if p.atAny(token.DotDot, token.DotDotEq) {
		inclusive := p.at(token.DotDotEq)
		p.advance()
		hiTok := p.advance()
		return p.builder.NewPattern(ast.Pattern{
			Kind: ast.PatRange, Pos: tok.Pos,
			RangeLow: lo, RangeHigh: hiTok.Literal, RangeInclusive: inclusive,
		})
	}
	return p.builder.NewPattern(ast.Pattern{Kind: ast.PatLiteral, Pos: tok.Pos, Literal: lo})
}
