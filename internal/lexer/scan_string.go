package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/token"
)

// scanString consumes a `"..."` literal with the standard escape set.
// Unterminated strings are reported and the lexer stops at end of input.
func (s *Scanner) scanString() token.Token {
	start := s.cur.mark()
	s.cur.bump() // opening quote

	var value strings.Builder
	terminated := false
	for !s.cur.eof() {
		b := s.cur.peek()
		if b == '"' {
			s.cur.bump()
			terminated = true
			break
		}
		if b == '\\' {
			r, ok := s.scanEscape()
			if ok {
				value.WriteRune(r)
			}
			continue
		}
		r, size := s.decodeRune()
		value.WriteRune(r)
		s.cur.off += uint32(size)
	}
	text := s.cur.textFrom(start)
	if !terminated {
		s.report(diag.LexUnterminatedString, start, "unterminated string literal")
	}
	return s.tokenAt(start, token.StringLit, text, &token.LiteralValue{String: value.String()})
}

// scanChar consumes a `'...'` literal: a single code point with the same
// escape set as strings.
func (s *Scanner) scanChar() token.Token {
	start := s.cur.mark()
	s.cur.bump() // opening quote

	var r rune
	if s.cur.peek() == '\\' {
		var ok bool
		r, ok = s.scanEscape()
		if !ok {
			r = utf8.RuneError
		}
	} else if !s.cur.eof() {
		var size int
		r, size = s.decodeRune()
		s.cur.off += uint32(size)
	}

	terminated := s.cur.eat('\'')
	text := s.cur.textFrom(start)
	if !terminated {
		s.report(diag.LexUnterminatedChar, start, "unterminated char literal")
	}
	return s.tokenAt(start, token.CharLit, text, &token.LiteralValue{Char: r})
}

func (s *Scanner) decodeRune() (rune, int) {
	remaining := s.cur.file.Content[s.cur.off:]
	r, size := utf8.DecodeRune(remaining)
	if size == 0 {
		size = 1
	}
	return r, size
}

// scanEscape consumes a backslash escape and returns the decoded rune. The
// caller is responsible for not double-advancing: scanEscape leaves the
// cursor positioned just past the whole escape sequence.
func (s *Scanner) scanEscape() (rune, bool) {
	escStart := s.cur.mark()
	s.cur.bump() // backslash
	if s.cur.eof() {
		s.report(diag.LexInvalidEscape, escStart, "dangling escape at end of input")
		return utf8.RuneError, false
	}
	b := s.cur.bump()
	switch b {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '0':
		return 0, true
	case 'x':
		return s.scanHexEscape(escStart)
	case 'u':
		return s.scanUnicodeEscape(escStart)
	default:
		s.report(diag.LexInvalidEscape, escStart, "invalid escape sequence '\\%c'", b)
		return utf8.RuneError, false
	}
}

func (s *Scanner) scanHexEscape(escStart mark) (rune, bool) {
	digitsStart := s.cur.mark()
	for i := 0; i < 2 && isHexDigit(s.cur.peek()); i++ {
		s.cur.bump()
	}
	digits := s.cur.textFrom(digitsStart)
	if len(digits) != 2 {
		s.report(diag.LexInvalidEscape, escStart, `\x escape requires exactly two hex digits`)
		return utf8.RuneError, false
	}
	n, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		s.report(diag.LexInvalidEscape, escStart, `invalid \x escape %q`, digits)
		return utf8.RuneError, false
	}
	return rune(n), true
}

func (s *Scanner) scanUnicodeEscape(escStart mark) (rune, bool) {
	if !s.cur.eat('{') {
		s.report(diag.LexInvalidEscape, escStart, `\u escape requires '{'`)
		return utf8.RuneError, false
	}
	digitsStart := s.cur.mark()
	for isHexDigit(s.cur.peek()) {
		s.cur.bump()
	}
	digits := s.cur.textFrom(digitsStart)
	if !s.cur.eat('}') {
		s.report(diag.LexInvalidEscape, escStart, `\u escape requires '}'`)
		return utf8.RuneError, false
	}
	if digits == "" {
		s.report(diag.LexInvalidEscape, escStart, `\u escape has no hex digits`)
		return utf8.RuneError, false
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || !utf8.ValidRune(rune(n)) {
		s.report(diag.LexInvalidEscape, escStart, `invalid \u escape %q`, digits)
		return utf8.RuneError, false
	}
	return rune(n), true
}
