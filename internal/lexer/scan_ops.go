package lexer

import (
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/token"
)

// scanOperatorOrPunct consumes one operator or punctuator token using
// maximal munch: longer matches are always preferred, e.g.
// '<' vs '<=' vs '<<', '.' vs '..' vs '..=', '-' vs '->' vs '-='.
func (s *Scanner) scanOperatorOrPunct() token.Token {
	start := s.cur.mark()
	b := s.cur.bump()

	two := func(next byte, kind2 token.Kind, kind1 token.Kind) token.Kind {
		if s.cur.peek() == next {
			s.cur.bump()
			return kind2
		}
		return kind1
	}

	var kind token.Kind
	switch b {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case ':':
		kind = two(':', token.ColonColon, token.Colon)
	case '@':
		kind = token.At
	case '_':
		kind = token.Underscore
	case '+':
		kind = two('=', token.PlusAssign, token.Plus)
	case '-':
		switch s.cur.peek() {
		case '>':
			s.cur.bump()
			kind = token.Arrow
		case '=':
			s.cur.bump()
			kind = token.MinusAssign
		default:
			kind = token.Minus
		}
	case '*':
		if s.cur.peek() == '*' {
			s.cur.bump()
			kind = token.StarStar
		} else {
			kind = two('=', token.StarAssign, token.Star)
		}
	case '/':
		kind = two('=', token.SlashAssign, token.Slash)
	case '%':
		kind = token.Percent
	case '=':
		switch s.cur.peek() {
		case '=':
			s.cur.bump()
			kind = token.EqEq
		case '>':
			s.cur.bump()
			kind = token.FatArrow
		default:
			kind = token.Assign
		}
	case '!':
		kind = two('=', token.BangEq, token.Bang)
	case '<':
		if s.cur.peek() == '<' {
			s.cur.bump()
			kind = token.Shl
		} else {
			kind = two('=', token.LtEq, token.Lt)
		}
	case '>':
		if s.cur.peek() == '>' {
			s.cur.bump()
			kind = token.Shr
		} else {
			kind = two('=', token.GtEq, token.Gt)
		}
	case '&':
		kind = two('&', token.AmpAmp, token.Amp)
	case '|':
		kind = two('|', token.PipePipe, token.Pipe)
	case '^':
		kind = token.Caret
	case '~':
		kind = token.Tilde
	case '?':
		kind = two('?', token.QuestionQuestion, token.Question)
	case '.':
		if s.cur.peek() == '.' {
			s.cur.bump()
			kind = two('=', token.DotDotEq, token.DotDot)
		} else {
			kind = token.Dot
		}
	default:
		s.report(diag.LexUnexpectedChar, start, "unexpected character %q", string(rune(b)))
		text := s.cur.textFrom(start)
		return s.tokenAt(start, token.Invalid, text, nil)
	}

	text := s.cur.textFrom(start)
	return s.tokenAt(start, kind, text, nil)
}
