// Package parser implements the tree builder: a recursive-
// descent parser with precedence climbing for expressions, separating
// declaration, statement, expression, type, pattern and annotation grammars
// into their own files. It never aborts: a parse error is recorded on the
// diagnostic sink and the parser synchronizes to the next declaration
// boundary or semicolon before resuming.
package parser

import (
	"fmt"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/lexer"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/token"
)

// Options configures one parse.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint // 0 means unlimited
}

// Result is everything ParseFile produces for one file.
type Result struct {
	Program ast.Program
	Errors  uint
}

// Parser holds the state for parsing a single file: a flat, pre-scanned
// token slice (simpler than streaming from the Scanner directly, since the
// whole file already fits the lexer's one-shot Tokenize) plus the shared
// node builder every stage after parsing addresses nodes through.
type Parser struct {
	toks     []token.Token
	pos      int
	builder  *ast.Builder
	opts     Options
	errCount uint
}

// ParseFile scans and parses one file, returning its declaration list.
func ParseFile(fs *source.FileSet, fileID source.FileID, builder *ast.Builder, opts Options) Result {
	toks := lexer.Tokenize(fs, fileID, opts.Reporter)
	p := &Parser{toks: toks, builder: builder, opts: opts}
	decls := p.parseDecls()
	return Result{Program: ast.Program{File: fileID, Decls: decls}, Errors: p.errCount}
}

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atAny(ks ...token.Kind) bool {
	cur := p.peek().Kind
	for _, k := range ks {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// expect consumes a token of kind k, reporting diag.SynExpected and
// returning ok=false (without consuming) if the next token differs.
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf(diag.SynExpected, "expected %s, got %q", what, p.peek().Text)
	return token.Token{}, false
}

func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	p.errCount++
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors != 0 && p.errCount > p.opts.MaxErrors {
		return
	}
	diag.Report(p.opts.Reporter, diag.PhaseParser, diag.SevError, code, p.peek().Pos, fmt.Sprintf(format, args...))
}

// declStarters are the token kinds that begin a top-level declaration, used
// both to dispatch parseDecl and to pick a synchronization point after an
// error (the recovery rule).
var declStarters = []token.Kind{
	token.KwFn, token.KwLet, token.KwType, token.KwStruct, token.KwEnum,
	token.KwTrait, token.KwImpl, token.KwContract, token.KwIntent,
	token.KwEffect, token.KwCapability, token.KwImport, token.KwExport,
	token.KwPure, token.KwExtern,
}

func isDeclStarter(k token.Kind) bool {
	for _, d := range declStarters {
		if d == k {
			return true
		}
	}
	return false
}

// synchronize advances past the next semicolon, or up to (not past) the
// next declaration starter or EOF, whichever comes first.
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if isDeclStarter(p.peek().Kind) {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseDecls() []ast.DeclID {
	var decls []ast.DeclID
	for !p.at(token.EOF) {
		id, ok := p.parseDecl()
		if !ok {
			p.synchronize()
			continue
		}
		decls = append(decls, id)
	}
	return decls
}
