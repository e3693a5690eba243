package ast

import (
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/token"
)

// ExprKind tags which fields of Expr are meaningful.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLiteral
	ExprBinary
	ExprUnary
	ExprCall
	ExprMember
	ExprIndex
	ExprIf
	ExprMatch
	ExprBlock
	ExprLambda
	ExprArray
	ExprTuple
	ExprStructLiteral
	ExprRange
	ExprCast
	ExprOld
	ExprForall
	ExprExists
	ExprTry
	ExprAssign
	ExprSelf
)

// Param is a function or lambda parameter.
type Param struct {
	Name string
	Type TypeID
	Mut  bool
	Pos  source.Position
}

// FieldInit binds a struct-literal field name to a value expression.
type FieldInit struct {
	Name  string
	Value ExprID
	Pos   source.Position
}

// MatchArm is one `pattern [if guard] => body` arm of a match expression.
type MatchArm struct {
	Pattern PatternID
	Guard   ExprID // optional, NoExprID if absent
	Body    ExprID
}

// QuantBinding is one `name: Type` binder in a forall/exists quantifier.
type QuantBinding struct {
	Name string
	Type TypeID
}

// Expr is one node of the Expression family. Only the fields
// relevant to Kind are populated; the rest are zero values.
type Expr struct {
	Kind ExprKind
	Pos  source.Position

	// Ident / Self
	Name string

	// Literal
	LitKind token.Kind
	Literal token.LiteralValue

	// Binary, Assign (simple or compound, e.g. "+=")
	Op    string
	Left  ExprID
	Right ExprID

	// Unary
	Operand ExprID
	Prefix  string

	// Call
	Callee ExprID
	Args   []ExprID

	// Member
	Object ExprID
	Field  string

	// Index
	Indexee   ExprID
	IndexExpr ExprID

	// If
	Cond ExprID
	Then ExprID
	Else ExprID // NoExprID if no else branch

	// Match
	Subject ExprID
	Arms    []MatchArm

	// Block
	Stmts []StmtID
	Tail  ExprID // NoExprID if the block has no trailing expression

	// Lambda
	Params  []Param
	RetType TypeID
	Body    ExprID

	// Array / Tuple
	Elements []ExprID

	// StructLiteral
	TypeName string
	Fields   []FieldInit
	Spread   ExprID // NoExprID unless this is a `..base` copy-extend literal

	// Range
	Low       ExprID
	High      ExprID
	Inclusive bool

	// Cast, Old, Try reuse Operand; Cast also needs the target type.
	CastType TypeID

	// Forall / Exists
	Bindings   []QuantBinding
	Collection ExprID // optional `in` clause, NoExprID if absent
	Predicate  ExprID
}
