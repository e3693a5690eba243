package parser

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/token"
)

// parseBlockExpr parses `{ stmt* [tail-expr] }` into a single ExprBlock
// node: used everywhere a block appears (function bodies, if/else
// branches, while/for-in bodies, lambda bodies), since a block already
// models "statement list with optional trailing value" for both the
// Control and Expression families.
//
// `if` and `match` are expressions with their own syntax (ExprIf/ExprMatch)
// but may also appear in statement position without a trailing `;`; this
// loop parses them once via the expression path and then decides, by
// whether `}` follows immediately, whether the result becomes the block's
// tail value or a discarded statement.
func (p *Parser) parseBlockExpr() ast.ExprID {
	start, _ := p.expect(token.LBrace, "'{'")
	var stmts []ast.StmtID
	tail := ast.NoExprID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.KwLet:
			stmts = append(stmts, p.parseLetStmt())
			continue
		case token.KwReturn:
			stmts = append(stmts, p.parseReturnStmt())
			continue
		case token.KwWhile:
			stmts = append(stmts, p.parseWhileStmt())
			continue
		case token.KwFor:
			stmts = append(stmts, p.parseForInStmt())
			continue
		case token.KwIf:
			id := p.parseIfExpr()
			if p.at(token.RBrace) {
				tail = id
				goto done
			}
			stmts = append(stmts, p.ifExprToStmt(id))
			continue
		case token.KwMatch:
			id := p.parseMatchExpr()
			if p.at(token.RBrace) {
				tail = id
				goto done
			}
			stmts = append(stmts, p.matchExprToStmt(id))
			continue
		}

		expr := p.parseExpr()
		if p.at(token.Semicolon) {
			p.advance()
			stmts = append(stmts, p.builder.NewStmt(ast.Stmt{Kind: ast.StmtExpr, Value: expr}))
			continue
		}
		// No trailing `;`: only valid immediately before `}`, making this
		// the block's tail value.
		tail = expr
		break
	}
done:
	end, _ := p.expect(token.RBrace, "'}'")
	return p.builder.NewExpr(ast.Expr{
		Kind: ast.ExprBlock, Pos: start.Pos.Cover(end.Pos), Stmts: stmts, Tail: tail,
	})
}

// ifExprToStmt and matchExprToStmt re-tag an already-built ExprIf/ExprMatch
// node as the corresponding Control-family statement, for when the
// construct appears mid-block rather than as a block's tail value.
func (p *Parser) ifExprToStmt(id ast.ExprID) ast.StmtID {
	e := p.builder.Expr(id)
	return p.builder.NewStmt(ast.Stmt{Kind: ast.StmtIf, Pos: e.Pos, Cond: e.Cond, Then: e.Then, Else: e.Else})
}

func (p *Parser) matchExprToStmt(id ast.ExprID) ast.StmtID {
	e := p.builder.Expr(id)
	return p.builder.NewStmt(ast.Stmt{Kind: ast.StmtMatch, Pos: e.Pos, Subject: e.Subject, Arms: e.Arms})
}

func (p *Parser) parseLetStmt() ast.StmtID {
	start := p.advance().Pos // 'let'
	mutable := false
	if p.at(token.KwMut) {
		p.advance()
		mutable = true
	}
	name, _ := p.expect(token.Ident, "variable name")
	letType := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		letType = p.parseType()
	}
	init := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		init = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")
	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtLet, Pos: start, Mutable: mutable, Name: name.Text, LetType: letType, Init: init,
	})
}

func (p *Parser) parseWhileStmt() ast.StmtID {
	start := p.advance().Pos // 'while'
	cond := p.parseExpr()
	invariants := p.parseLoopInvariants()
	body := p.parseBlockExpr()
	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtWhile, Pos: start, Cond: cond, Invariants: invariants, Body: body,
	})
}

func (p *Parser) parseForInStmt() ast.StmtID {
	start := p.advance().Pos // 'for'
	binder := p.parsePattern()
	p.expect(token.KwIn, "'in'")
	iter := p.parseExpr()
	invariants := p.parseLoopInvariants()
	body := p.parseBlockExpr()
	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtForIn, Pos: start, Binder: binder, Iter: iter, Invariants: invariants, Body: body,
	})
}

// parseLoopInvariants consumes any `@invariant` clauses written between a
// loop's header and its body.
func (p *Parser) parseLoopInvariants() []ast.AnnotationID {
	var out []ast.AnnotationID
	for p.at(token.At) {
		if id, ok := p.parseAnnotation(); ok {
			out = append(out, id)
		}
	}
	return out
}

func (p *Parser) parseReturnStmt() ast.StmtID {
	start := p.advance().Pos // 'return'
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		value = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")
	return p.builder.NewStmt(ast.Stmt{Kind: ast.StmtReturn, Pos: start, Value: value})
}
