package ast

import (
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/token"
)

// PatternKind tags which fields of Pattern are meaningful.
type PatternKind uint8

const (
	PatInvalid PatternKind = iota
	PatWildcard
	PatLiteral
	PatIdentBinding
	PatTuple
	PatStruct
	PatEnumVariant
	PatRange
)

// PatField binds a struct pattern's field name to a sub-pattern. Pattern is
// NoPatternID for field-name-shorthand bindings (`{ x, y }`).
type PatField struct {
	Name    string
	Pattern PatternID
	Pos     source.Position
}

// Pattern is one node of the Pattern family.
type Pattern struct {
	Kind PatternKind
	Pos  source.Position

	// IdentBinding: the bound name. EnumVariant: the "Type::Variant" path.
	Name    string
	Mutable bool

	// Tuple / EnumVariant: ordered positional sub-patterns.
	Elements []PatternID

	// Struct
	Fields  []PatField
	HasRest bool

	// Literal
	Literal *token.LiteralValue

	// Range
	RangeLow       *token.LiteralValue
	RangeHigh      *token.LiteralValue
	RangeInclusive bool
}
