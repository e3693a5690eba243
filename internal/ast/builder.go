package ast

// Hints pre-sizes each node family's arena to cut down on reallocation for
// typically-sized files; all default to a modest capacity when zero.
type Hints struct {
	Decls, Exprs, Types, Annotations, Patterns, Stmts uint
}

func (h Hints) withDefaults() Hints {
	if h.Decls == 0 {
		h.Decls = 1 << 5
	}
	if h.Exprs == 0 {
		h.Exprs = 1 << 8
	}
	if h.Types == 0 {
		h.Types = 1 << 6
	}
	if h.Annotations == 0 {
		h.Annotations = 1 << 5
	}
	if h.Patterns == 0 {
		h.Patterns = 1 << 6
	}
	if h.Stmts == 0 {
		h.Stmts = 1 << 7
	}
	return h
}

// Builder owns every node-family arena for one compilation and exposes one
// constructor per family. The tree builder (internal/parser) allocates
// through a Builder; every later stage addresses nodes by ID against the
// same Builder.
type Builder struct {
	Decls       *Arena[Decl]
	Exprs       *Arena[Expr]
	Types       *Arena[TypeExpr]
	Annotations *Arena[Annotation]
	Patterns    *Arena[Pattern]
	Stmts       *Arena[Stmt]
}

// NewBuilder allocates a Builder with the given sizing hints.
func NewBuilder(hints Hints) *Builder {
	hints = hints.withDefaults()
	return &Builder{
		Decls:       NewArena[Decl](hints.Decls),
		Exprs:       NewArena[Expr](hints.Exprs),
		Types:       NewArena[TypeExpr](hints.Types),
		Annotations: NewArena[Annotation](hints.Annotations),
		Patterns:    NewArena[Pattern](hints.Patterns),
		Stmts:       NewArena[Stmt](hints.Stmts),
	}
}

// NewDecl allocates a declaration node and returns its ID.
func (b *Builder) NewDecl(d Decl) DeclID { return DeclID(b.Decls.Allocate(d)) }

// Decl returns the declaration node for id, or nil if id is invalid.
func (b *Builder) Decl(id DeclID) *Decl { return b.Decls.Get(uint32(id)) }

// NewExpr allocates an expression node and returns its ID.
func (b *Builder) NewExpr(e Expr) ExprID { return ExprID(b.Exprs.Allocate(e)) }

// Expr returns the expression node for id, or nil if id is invalid.
func (b *Builder) Expr(id ExprID) *Expr { return b.Exprs.Get(uint32(id)) }

// NewType allocates a syntactic type node and returns its ID.
func (b *Builder) NewType(t TypeExpr) TypeID { return TypeID(b.Types.Allocate(t)) }

// Type returns the type node for id, or nil if id is invalid.
func (b *Builder) Type(id TypeID) *TypeExpr { return b.Types.Get(uint32(id)) }

// NewAnnotation allocates an annotation node and returns its ID.
func (b *Builder) NewAnnotation(a Annotation) AnnotationID {
	return AnnotationID(b.Annotations.Allocate(a))
}

// Annotation returns the annotation node for id, or nil if id is invalid.
func (b *Builder) Annotation(id AnnotationID) *Annotation { return b.Annotations.Get(uint32(id)) }

// NewPattern allocates a pattern node and returns its ID.
func (b *Builder) NewPattern(p Pattern) PatternID { return PatternID(b.Patterns.Allocate(p)) }

// Pattern returns the pattern node for id, or nil if id is invalid.
func (b *Builder) Pattern(id PatternID) *Pattern { return b.Patterns.Get(uint32(id)) }

// NewStmt allocates a statement node and returns its ID.
func (b *Builder) NewStmt(s Stmt) StmtID { return StmtID(b.Stmts.Allocate(s)) }

// Stmt returns the statement node for id, or nil if id is invalid.
func (b *Builder) Stmt(id StmtID) *Stmt { return b.Stmts.Get(uint32(id)) }
