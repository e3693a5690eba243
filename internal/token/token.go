package token

import "github.com/covenant-lang/covenant/internal/source"

// LiteralValue holds the pre-parsed value of a literal token, when the
// scanner was able to compute one. Kind records which of Int/Float/String/
// Char/Bool/IsNil is the meaningful field — consumers that outlive the
// owning Token (e.g. a pattern's literal, copied off the token during
// parsing) still need to tell a zero Int apart from a zero-valued Float,
// Bool, or Char.
type LiteralValue struct {
	Kind   Kind
	Int    int64
	Float  float64
	String string
	Char   rune
	Bool   bool
	IsNil  bool
}

// Token is a single lexeme with its source position and, for literals, a
// pre-computed value.
type Token struct {
	Kind    Kind
	Text    string // slice of the original source
	Pos     source.Position
	Literal *LiteralValue // non-nil only for IsLiteral() kinds
}

// IsKeyword reports whether the token's kind is one of the reserved words
// (including reserved type names) rather than a plain identifier.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwLet, KwMut, KwType, KwStruct, KwEnum, KwTrait, KwImpl, KwContract,
		KwIntent, KwEffect, KwCapability, KwRequires, KwEnsures, KwInvariant, KwIf,
		KwElse, KwMatch, KwFor, KwWhile, KwReturn, KwImport, KwExport, KwWhere,
		KwPure, KwExtern, KwSelf, KwSelfType, KwOld, KwForall, KwExists, KwIn, KwAs:
		return true
	default:
		return t.Kind.IsReservedTypeName()
	}
}

// IsPunctOrOp reports whether the token is a punctuator or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case LParen, RParen, LBrace, RBrace, LBracket, RBracket, Comma, Semicolon,
		Colon, ColonColon, Dot, At, Plus, Minus, Star, Slash, Percent, StarStar,
		EqEq, BangEq, Lt, Gt, LtEq, GtEq, AmpAmp, PipePipe, Bang, Amp, Pipe, Caret,
		Tilde, Shl, Shr, Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign,
		Arrow, FatArrow, DotDot, DotDotEq, Question, QuestionQuestion:
		return true
	default:
		return false
	}
}
