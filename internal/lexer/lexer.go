// Package lexer implements the scanner: source bytes to a
// token stream with positions, recovering from lexical errors by emitting a
// synthetic Invalid token alongside a diagnostic and continuing.
package lexer

import (
	"fmt"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/token"
)

// Scanner tokenizes one file. It never aborts: every method either returns
// a token or, on EOF, returns an EOF token forever after.
type Scanner struct {
	fs       *source.FileSet
	file     *source.File
	cur      cursor
	reporter diag.Reporter
}

// New creates a Scanner over file within fs, reporting lexical diagnostics
// to reporter (may be nil to discard them, e.g. in tests that only inspect
// tokens).
func New(fs *source.FileSet, fileID source.FileID, reporter diag.Reporter) *Scanner {
	f := fs.Get(fileID)
	return &Scanner{fs: fs, file: f, cur: newCursor(f), reporter: reporter}
}

// Tokenize scans the whole file into a token slice (EOF-terminated). This is
// the form the tree builder and CLI `tokenize` collaborator both use.
func Tokenize(fs *source.FileSet, fileID source.FileID, reporter diag.Reporter) []token.Token {
	s := New(fs, fileID, reporter)
	var toks []token.Token
	for {
		t := s.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next significant token, skipping whitespace and
// comments. After end of input it always returns an EOF token.
func (s *Scanner) Next() token.Token {
	s.skipTrivia()
	if s.cur.eof() {
		return s.tokenAt(s.cur.mark(), token.EOF, "", nil)
	}

	b := s.cur.peek()
	switch {
	case b == '_':
		b1 := s.cur.peekAt(1)
		if isIdentContinue(b1) {
			return s.scanIdentOrKeyword()
		}
		return s.scanOperatorOrPunct()
	case isIdentStart(b):
		return s.scanIdentOrKeyword()
	case isDecDigit(b):
		return s.scanNumber()
	case b == '.' && isDecDigit(s.cur.peekAt(1)):
		return s.scanNumber()
	case b == '"':
		return s.scanString()
	case b == '\'':
		return s.scanChar()
	default:
		return s.scanOperatorOrPunct()
	}
}

// skipTrivia discards whitespace and comments. Block comments nest
// arbitrarily and report LexUnterminatedComment if input ends inside one
//.
func (s *Scanner) skipTrivia() {
	for !s.cur.eof() {
		b := s.cur.peek()
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			s.cur.bump()
		case b == '/' && s.cur.peekAt(1) == '/':
			for !s.cur.eof() && s.cur.peek() != '\n' {
				s.cur.bump()
			}
		case b == '/' && s.cur.peekAt(1) == '*':
			s.skipBlockComment()
		default:
			return
		}
	}
}

func (s *Scanner) skipBlockComment() {
	start := s.cur.mark()
	s.cur.bump() // '/'
	s.cur.bump() // '*'
	depth := 1
	for !s.cur.eof() && depth > 0 {
		if s.cur.peek() == '/' && s.cur.peekAt(1) == '*' {
			s.cur.bump()
			s.cur.bump()
			depth++
			continue
		}
		if s.cur.peek() == '*' && s.cur.peekAt(1) == '/' {
			s.cur.bump()
			s.cur.bump()
			depth--
			continue
		}
		s.cur.bump()
	}
	if depth > 0 {
		s.report(diag.LexUnterminatedComment, start, "unterminated block comment")
	}
}

func (s *Scanner) tokenAt(start mark, kind token.Kind, text string, lit *token.LiteralValue) token.Token {
	pos := s.fs.Position(s.file.ID, uint32(start), s.cur.lenFrom(start))
	if lit != nil {
		lit.Kind = kind
	}
	return token.Token{Kind: kind, Text: text, Pos: pos, Literal: lit}
}

func (s *Scanner) report(code diag.Code, start mark, format string, args ...any) {
	if s.reporter == nil {
		return
	}
	pos := s.fs.Position(s.file.ID, uint32(start), s.cur.lenFrom(start))
	diag.Report(s.reporter, diag.PhaseLexer, diag.SevError, code, pos, fmt.Sprintf(format, args...))
}
