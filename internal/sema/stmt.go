package sema

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/symbols"
	"github.com/covenant-lang/covenant/internal/types"
)

// checkBlock checks every statement of a block expression in a fresh child
// scope and returns the block's type: its tail expression's type, or Void
// if the block has no tail.
func (c *Checker) checkBlock(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	e := c.builder.Expr(id)
	blockScope := c.symbols.NewScope(symbols.ScopeBlock, scope)
	for _, sid := range e.Stmts {
		c.checkStmt(blockScope, sid)
	}
	if e.Tail.IsValid() {
		t := c.checkExpr(blockScope, e.Tail)
		return c.setType(id, t)
	}
	return c.setType(id, c.types.Builtins().Void)
}

func (c *Checker) checkStmt(scope symbols.ScopeID, id ast.StmtID) {
	s := c.builder.Stmt(id)
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.StmtLet:
		c.checkLetStmt(scope, s)
	case ast.StmtExpr:
		c.checkExpr(scope, s.Value)
	case ast.StmtIf:
		c.checkIfStmt(scope, s)
	case ast.StmtWhile:
		c.checkWhileStmt(scope, s)
	case ast.StmtForIn:
		c.checkForInStmt(scope, s)
	case ast.StmtMatch:
		c.checkMatchArms(scope, s.Subject, s.Arms)
	case ast.StmtReturn:
		c.checkReturnStmt(scope, s)
	}
}

// checkLetStmt mirrors the variable-declaration rule the checker applies
// to top-level `let`, scoped to the enclosing block instead
// of the global scope.
func (c *Checker) checkLetStmt(scope symbols.ScopeID, s *ast.Stmt) {
	var declared types.TypeID
	if s.LetType.IsValid() {
		declared = c.resolveTypeExpr(scope, s.LetType)
	}
	var initType types.TypeID
	if s.Init.IsValid() {
		initType = c.checkExpr(scope, s.Init)
	}
	final := c.finalVarType(s.Pos, s.Name, declared, initType, s.LetType.IsValid(), s.Init.IsValid())
	if _, ok := c.symbols.Declare(scope, symbols.NSOrdinary, symbols.Symbol{
		Kind: symbols.SymbolVariable, Name: s.Name, Type: final, Mutable: s.Mutable, Pos: s.Pos,
	}); !ok {
		c.errorf(s.Pos, diag.NameDuplicate, "variable %q already declared in this scope", s.Name)
	}
}

func (c *Checker) checkIfStmt(scope symbols.ScopeID, s *ast.Stmt) {
	condType := c.checkExpr(scope, s.Cond)
	if !c.isPoisoned(condType) && !c.isBool(condType) {
		c.errorf(c.builder.Expr(s.Cond).Pos, diag.TypeNotBoolean, "if condition must be Bool, got %s", c.typeName(condType))
	}
	c.checkExpr(scope, s.Then)
	if s.Else.IsValid() {
		c.checkExpr(scope, s.Else)
	}
}

func (c *Checker) checkWhileStmt(scope symbols.ScopeID, s *ast.Stmt) {
	condType := c.checkExpr(scope, s.Cond)
	if !c.isPoisoned(condType) && !c.isBool(condType) {
		c.errorf(c.builder.Expr(s.Cond).Pos, diag.TypeNotBoolean, "while condition must be Bool, got %s", c.typeName(condType))
	}
	loopScope := c.symbols.NewScope(symbols.ScopeLoop, scope)
	c.checkAnnotations(loopScope, s.Invariants)
	c.checkExpr(loopScope, s.Body)
}

func (c *Checker) checkForInStmt(scope symbols.ScopeID, s *ast.Stmt) {
	iterType := c.checkExpr(scope, s.Iter)
	elemType := c.elementTypeOf(iterType)
	loopScope := c.symbols.NewScope(symbols.ScopeLoop, scope)
	c.bindPattern(loopScope, s.Binder, elemType)
	c.checkAnnotations(loopScope, s.Invariants)
	c.checkExpr(loopScope, s.Body)
}

// elementTypeOf implements the `for v in e` inference rule: the
// element type of an array, the first generic argument of a generic base,
// otherwise Unknown.
func (c *Checker) elementTypeOf(iterType types.TypeID) types.TypeID {
	t, ok := c.types.Lookup(iterType)
	if !ok {
		return c.types.Builtins().Unknown
	}
	switch t.Kind {
	case types.KindArray:
		return t.Elem
	case types.KindGenericApp:
		if info, ok := c.types.GenericAppInfo(iterType); ok && len(info.Args) > 0 {
			return info.Args[0]
		}
	}
	return c.types.Builtins().Unknown
}

func (c *Checker) checkReturnStmt(scope symbols.ScopeID, s *ast.Stmt) {
	if !c.inFunction {
		c.errorf(s.Pos, diag.TypeMismatch, "return outside a function")
		return
	}
	if !s.Value.IsValid() {
		if c.kindOf(c.currentReturn) != types.KindVoid {
			c.errorf(s.Pos, diag.TypeMismatch, "bare return requires a Void return type, function returns %s", c.typeName(c.currentReturn))
		}
		return
	}
	valType := c.checkExpr(scope, s.Value)
	if !c.assignable(valType, c.currentReturn) {
		c.errorf(s.Pos, diag.TypeMismatch, "cannot return %s, function returns %s", c.typeName(valType), c.typeName(c.currentReturn))
	}
}
