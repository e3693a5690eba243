package lexer

import "github.com/covenant-lang/covenant/internal/token"

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// scanIdentOrKeyword consumes an identifier and classifies it against the
// reserved-word table. A bare "_" is special-cased to Underscore before this
// is called.
func (s *Scanner) scanIdentOrKeyword() token.Token {
	start := s.cur.mark()
	for !s.cur.eof() && isIdentContinue(s.cur.peek()) {
		s.cur.bump()
	}
	text := s.cur.textFrom(start)

	if kw, ok := token.LookupKeyword(text); ok {
		switch kw {
		case token.KwTrue:
			return s.tokenAt(start, token.BoolLit, text, &token.LiteralValue{Bool: true})
		case token.KwFalse:
			return s.tokenAt(start, token.BoolLit, text, &token.LiteralValue{Bool: false})
		case token.KwNilWord:
			return s.tokenAt(start, token.NilLit, text, &token.LiteralValue{IsNil: true})
		default:
			return s.tokenAt(start, kw, text, nil)
		}
	}
	return s.tokenAt(start, token.Ident, text, nil)
}
