package ast

// Every ID type below is a 1-based Arena index; zero is the "absent" value
// (e.g. a variable declaration with no initializer has Init == NoExprID),
// so nodes reference each other through plain integers, never pointers.

// DeclID refers to a Declaration node.
type DeclID uint32

// NoDeclID marks an absent declaration reference.
const NoDeclID DeclID = 0

// IsValid reports whether id refers to an allocated declaration.
func (id DeclID) IsValid() bool { return id != NoDeclID }

// ExprID refers to an Expression node.
type ExprID uint32

// NoExprID marks an absent expression reference.
const NoExprID ExprID = 0

// IsValid reports whether id refers to an allocated expression.
func (id ExprID) IsValid() bool { return id != NoExprID }

// TypeID refers to a syntactic TypeExpr node (the written type, as opposed
// to the resolved semantic type the checker assigns in internal/types).
type TypeID uint32

// NoTypeID marks an absent type annotation.
const NoTypeID TypeID = 0

// IsValid reports whether id refers to an allocated type expression.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// AnnotationID refers to an Annotation node (requires/ensures/invariant/
// effect-set/capability-spec/contract-ref/intent-ref/verify-level).
type AnnotationID uint32

// NoAnnotationID marks an absent annotation.
const NoAnnotationID AnnotationID = 0

// IsValid reports whether id refers to an allocated annotation.
func (id AnnotationID) IsValid() bool { return id != NoAnnotationID }

// PatternID refers to a Pattern node.
type PatternID uint32

// NoPatternID marks an absent pattern.
const NoPatternID PatternID = 0

// IsValid reports whether id refers to an allocated pattern.
func (id PatternID) IsValid() bool { return id != NoPatternID }

// StmtID refers to a Statement node (the Control family: if/while/for-in/
// match/block/return, plus expression-statements and let-bindings).
type StmtID uint32

// NoStmtID marks an absent statement.
const NoStmtID StmtID = 0

// IsValid reports whether id refers to an allocated statement.
func (id StmtID) IsValid() bool { return id != NoStmtID }
