package lexer

import (
	"strconv"
	"strings"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/token"
)

func isDecDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDecDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanNumber consumes an integer or float literal. Underscores are
// permitted as visual separators in decimal literals and are stripped
// before parsing.
func (s *Scanner) scanNumber() token.Token {
	start := s.cur.mark()

	if s.cur.peek() == '0' && (s.cur.peekAt(1) == 'x' || s.cur.peekAt(1) == 'X') {
		return s.scanRadix(start, 16, "0x", isHexDigit)
	}
	if s.cur.peek() == '0' && (s.cur.peekAt(1) == 'b' || s.cur.peekAt(1) == 'B') {
		return s.scanRadix(start, 2, "0b", func(b byte) bool { return b == '0' || b == '1' })
	}
	if s.cur.peek() == '0' && (s.cur.peekAt(1) == 'o' || s.cur.peekAt(1) == 'O') {
		return s.scanRadix(start, 8, "0o", func(b byte) bool { return b >= '0' && b <= '7' })
	}

	s.scanDecDigits()
	isFloat := false
	if s.cur.peek() == '.' && isDecDigit(s.cur.peekAt(1)) {
		isFloat = true
		s.cur.bump() // '.'
		s.scanDecDigits()
	}
	if s.cur.peek() == 'e' || s.cur.peek() == 'E' {
		save := s.cur
		s.cur.bump()
		if s.cur.peek() == '+' || s.cur.peek() == '-' {
			s.cur.bump()
		}
		if isDecDigit(s.cur.peek()) {
			isFloat = true
			s.scanDecDigits()
		} else {
			s.cur = save
		}
	}

	text := s.cur.textFrom(start)
	clean := strings.ReplaceAll(text, "_", "")
	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			s.report(diag.LexBadNumber, start, "invalid float literal %q", text)
			return s.tokenAt(start, token.FloatLit, text, &token.LiteralValue{Float: 0})
		}
		return s.tokenAt(start, token.FloatLit, text, &token.LiteralValue{Float: f})
	}
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		s.report(diag.LexBadNumber, start, "invalid integer literal %q", text)
		return s.tokenAt(start, token.IntLit, text, &token.LiteralValue{Int: 0})
	}
	return s.tokenAt(start, token.IntLit, text, &token.LiteralValue{Int: n})
}

func (s *Scanner) scanDecDigits() {
	for isDecDigit(s.cur.peek()) || s.cur.peek() == '_' {
		s.cur.bump()
	}
}

func (s *Scanner) scanRadix(start mark, base int, prefix string, digit func(byte) bool) token.Token {
	s.cur.bump() // '0'
	s.cur.bump() // 'x'/'b'/'o'
	digitsStart := s.cur.mark()
	for digit(s.cur.peek()) || s.cur.peek() == '_' {
		s.cur.bump()
	}
	text := s.cur.textFrom(start)
	digits := strings.ReplaceAll(s.cur.textFrom(digitsStart), "_", "")
	if digits == "" {
		s.report(diag.LexBadNumber, start, "%s literal has no digits", prefix)
		return s.tokenAt(start, token.IntLit, text, &token.LiteralValue{Int: 0})
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		s.report(diag.LexBadNumber, start, "invalid integer literal %q", text)
		return s.tokenAt(start, token.IntLit, text, &token.LiteralValue{Int: 0})
	}
	return s.tokenAt(start, token.IntLit, text, &token.LiteralValue{Int: n})
}
