package ast

import "github.com/covenant-lang/covenant/internal/source"

// DeclKind tags which fields of Decl are meaningful.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclFunction
	DeclVariable
	DeclTypeAlias
	DeclStruct
	DeclEnum
	DeclTrait
	DeclImpl
	DeclContract
	DeclIntent
	DeclEffect
	DeclCapability
	DeclImport
	DeclExport
)

// GenericParam is one `<Name: Bound = Default>` type parameter.
type GenericParam struct {
	Name    string
	Bounds  []TypeID
	Default TypeID // NoTypeID if absent
}

// FieldDecl is one struct field, with its own annotations (e.g. a per-field
// invariant) and an optional default value.
type FieldDecl struct {
	Name        string
	Type        TypeID
	Default     ExprID // NoExprID if absent
	Annotations []AnnotationID
	Pos         source.Position
}

// EnumVariant is one `Name` or `Name(T1, T2, ...)` enum case.
type EnumVariant struct {
	Name   string
	Fields []TypeID
	Pos    source.Position
}

// FnSignature is a bare name+params+return, used where a full function body
// does not apply (effect declarations list the operations they permit).
type FnSignature struct {
	Name    string
	Params  []Param
	RetType TypeID
	Pos     source.Position
}

// Permission is one named, typed capability grant (`fs.Read: Path`).
type Permission struct {
	Name string
	Type TypeID
	Pos  source.Position
}

// ImportItem is one imported name with an optional local alias.
type ImportItem struct {
	Name  string
	Alias string // "" if unaliased
}

// Decl is one node of the Declaration family. As with Expr,
// only the fields relevant to Kind are populated.
type Decl struct {
	Kind DeclKind
	Pos  source.Position
	Name string

	Export      bool
	Annotations []AnnotationID

	// Function
	Generics []GenericParam
	Params   []Param
	RetType  TypeID
	Body     ExprID // NoExprID for a signature-only declaration
	Pure     bool

	// Variable (top-level `let`/`const`)
	Mutable bool
	VarType TypeID
	Init    ExprID

	// TypeAlias
	AliasTarget TypeID

	// Struct
	Fields []FieldDecl

	// Enum
	Variants []EnumVariant

	// Trait
	SuperTraits []string
	Methods     []DeclID

	// Impl
	TraitName   string // "" for an inherent impl
	ForType     TypeID
	ImplMethods []DeclID

	// Effect
	EffectOps []FnSignature

	// Capability
	Permissions []Permission

	// Import
	ModulePath []string
	ImportList []ImportItem
	Wildcard   bool

	// Export wrapper
	Inner DeclID
}
