package ast

import "github.com/covenant-lang/covenant/internal/source"

// TypeKind tags which fields of TypeExpr are meaningful.
type TypeKind uint8

const (
	TyInvalid TypeKind = iota
	TyPrimitive
	TyNamed
	TyGeneric
	TyArray
	TyTuple
	TyFunction
	TyReference
	TyOptional
	TyResult
	TyNever
)

// TypeExpr is one node of the (syntactic) Type family: the type as written
// in source, before the checker resolves it to an internal/types.Type.
type TypeExpr struct {
	Kind TypeKind
	Pos  source.Position

	// Primitive / Named: keyword text or a "."-joined path.
	Name string

	// Generic: base name plus type arguments, e.g. Option<Int>.
	Args []TypeID

	// Array / Reference / Optional: the element type.
	Elem    TypeID
	Size    *uint64 // Array only; nil means unsized (slice-like)
	Mutable bool    // Reference only: `&mut T` vs `&T`

	// Function: parameter types, declared effect names, return type.
	Params  []TypeID
	Effects []string
	Ret     TypeID

	// Result: Ret is the Ok type, ErrType the Err type.
	ErrType TypeID
}
