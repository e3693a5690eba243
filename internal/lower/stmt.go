package lower

import (
	"strconv"

	"github.com/covenant-lang/covenant/internal/ast"
)

// stmt lowers one statement, writing one or more fully-indented lines.
func (e *emitter) stmt(id ast.StmtID) {
	s := e.builder.Stmt(id)
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.StmtLet:
		kw := "const"
		if s.Mutable {
			kw = "let"
		}
		e.line(kw + " " + s.Name + " = " + e.expr(s.Init) + ";")
	case ast.StmtExpr:
		e.line(e.expr(s.Value) + ";")
	case ast.StmtReturn:
		e.emitReturnStmt(s)
	case ast.StmtIf:
		e.emitIfStmt(s)
	case ast.StmtWhile:
		e.emitWhileStmt(s)
	case ast.StmtForIn:
		e.emitForInStmt(s)
	case ast.StmtMatch:
		e.emitMatchStmt(s)
	}
}

func (e *emitter) emitReturnStmt(s *ast.Stmt) {
	if !s.Value.IsValid() {
		if e.inEnsureWrap {
			e.line("return __ensureReturn(undefined);")
			return
		}
		e.line("return;")
		return
	}
	val := e.expr(s.Value)
	if e.inEnsureWrap {
		val = "__ensureReturn(" + val + ")"
	}
	e.line("return " + val + ";")
}

// emitBlockBodyInline emits a block's statements followed by its tail
// expression (if any) as a bare expression-statement, discarding the value
// it would otherwise yield — the statement-context shape every loop body,
// if-statement branch, and match-statement arm shares (block
// expressions used purely for control flow never need the IIFE rewrite).
func (e *emitter) emitBlockBodyInline(id ast.ExprID) {
	x := e.builder.Expr(id)
	if x == nil {
		return
	}
	for _, sid := range x.Stmts {
		e.stmt(sid)
	}
	if x.Tail.IsValid() {
		e.line(e.expr(x.Tail) + ";")
	}
}

func (e *emitter) emitStatementBlockExpr(id ast.ExprID) {
	e.indent++
	e.emitBlockBodyInline(id)
	e.indent--
}

func (e *emitter) emitIfStmt(s *ast.Stmt) {
	e.line("if (" + e.expr(s.Cond) + ") {")
	e.emitStatementBlockExpr(s.Then)
	e.line("}")
	if s.Else.IsValid() {
		e.emitElseBranch(s.Else)
	}
}

func (e *emitter) emitElseBranch(id ast.ExprID) {
	x := e.builder.Expr(id)
	if x == nil {
		return
	}
	if x.Kind == ast.ExprIf {
		e.line("else if (" + e.expr(x.Cond) + ") {")
		e.emitStatementBlockExpr(x.Then)
		e.line("}")
		if x.Else.IsValid() {
			e.emitElseBranch(x.Else)
		}
		return
	}
	e.line("else {")
	e.emitStatementBlockExpr(id)
	e.line("}")
}

func (e *emitter) emitWhileStmt(s *ast.Stmt) {
	e.line("while (" + e.expr(s.Cond) + ") {")
	e.indent++
	e.emitLoopInvariantChecks(s.Invariants)
	e.emitBlockBodyInline(s.Body)
	e.indent--
	e.line("}")
}

func (e *emitter) emitForInStmt(s *ast.Stmt) {
	tmp := e.freshName("it")
	e.line("for (const " + tmp + " of " + e.expr(s.Iter) + ") {")
	e.indent++
	_, binds := e.patternTest(s.Binder, tmp)
	for _, b := range binds {
		e.line(b)
	}
	e.emitLoopInvariantChecks(s.Invariants)
	e.emitBlockBodyInline(s.Body)
	e.indent--
	e.line("}")
}

func (e *emitter) emitLoopInvariantChecks(anns []ast.AnnotationID) {
	if !e.opts.emitsGuards() {
		return
	}
	for _, aid := range anns {
		ann := e.builder.Annotation(aid)
		if ann == nil {
			continue
		}
		e.line(e.requireEnsureInvariantCall("__invariant", ann))
	}
}

// emitMatchStmt lowers a match used as a statement: each arm is a plain
// `if`, tried in order inside a single-iteration labeled loop so a matched
// arm can `break` out once its body (and guard, if any) have run, while an
// unmatched or guard-failed arm falls through to the next `if` exactly like
// the match-as-value IIFE's sequential-return chain.
func (e *emitter) emitMatchStmt(s *ast.Stmt) {
	subj := e.freshName("subj")
	label := e.freshName("matchOnce")
	e.line("const " + subj + " = " + e.expr(s.Subject) + ";")
	e.line(label + ": for (;;) {")
	e.indent++
	for _, arm := range s.Arms {
		cond, binds := e.patternTest(arm.Pattern, subj)
		e.line("if (" + cond + ") {")
		e.indent++
		for _, b := range binds {
			e.line(b)
		}
		if arm.Guard.IsValid() {
			e.line("if (" + e.expr(arm.Guard) + ") {")
			e.indent++
			e.emitBlockBodyInline(arm.Body)
			e.line("break " + label + ";")
			e.indent--
			e.line("}")
		} else {
			e.emitBlockBodyInline(arm.Body)
			e.line("break " + label + ";")
		}
		e.indent--
		e.line("}")
	}
	e.line("throw new Error(\"no match arm matched\");")
	e.indent--
	e.line("}")
}

// functionBody lowers a checked function's body block, emitting @requires
// precondition checks before the body and wiring @ensures postcondition
// checks plus old(·) snapshots around every return path. A function with
// neither annotation lowers its body directly with no wrapping at all.
func (e *emitter) functionBody(d *ast.Decl) {
	body := e.builder.Expr(d.Body)
	if body == nil {
		return
	}
	requires := annotationsOfKind(d.Annotations, ast.AnnRequires, e.builder)
	ensures := annotationsOfKind(d.Annotations, ast.AnnEnsures, e.builder)
	guardsOn := e.opts.emitsGuards()
	hasEnsures := guardsOn && len(ensures) > 0

	if guardsOn {
		for _, aid := range requires {
			ann := e.builder.Annotation(aid)
			if ann == nil {
				continue
			}
			e.line(e.requireEnsureInvariantCall("__requires", ann))
		}
	}

	var oldIDs []ast.ExprID
	if hasEnsures {
		for _, aid := range ensures {
			ann := e.builder.Annotation(aid)
			if ann != nil {
				e.collectOld(ann.Expr, &oldIDs)
			}
		}
	}
	prevOld := e.oldNames
	e.oldNames = map[ast.ExprID]string{}
	for _, oid := range oldIDs {
		ox := e.builder.Expr(oid)
		name := e.freshName("old")
		e.oldNames[oid] = name
		if ox != nil {
			e.line("const " + name + " = __clone(" + e.expr(ox.Operand) + ");")
		}
	}

	if hasEnsures {
		e.line("const __ensureReturn = (result) => {")
		e.indent++
		for _, aid := range ensures {
			ann := e.builder.Annotation(aid)
			if ann == nil {
				continue
			}
			e.line(e.requireEnsureInvariantCall("__ensures", ann))
		}
		e.line("return result;")
		e.indent--
		e.line("};")
	}

	prevWrap := e.inEnsureWrap
	e.inEnsureWrap = hasEnsures
	for _, sid := range body.Stmts {
		e.stmt(sid)
	}
	if body.Tail.IsValid() {
		val := e.expr(body.Tail)
		if hasEnsures {
			val = "__ensureReturn(" + val + ")"
		}
		e.line("return " + val + ";")
	} else if hasEnsures {
		e.line("return __ensureReturn(undefined);")
	}
	e.inEnsureWrap = prevWrap
	e.oldNames = prevOld
}

// requireEnsureInvariantCall renders one contract-clause check call,
// carrying the clause's source position for the failure message.
func (e *emitter) requireEnsureInvariantCall(fn string, ann *ast.Annotation) string {
	pos := ann.Pos
	return fn + "(" + e.expr(ann.Expr) + ", " + strconv.Quote(fn+" clause") + ", \"\", " +
		strconv.Itoa(int(pos.Line)) + ", " + strconv.Itoa(int(pos.Column)) + ");"
}

// annotationsOfKind filters ids down to those of kind, resolving through
// the builder.
func annotationsOfKind(ids []ast.AnnotationID, kind ast.AnnotationKind, b *ast.Builder) []ast.AnnotationID {
	var out []ast.AnnotationID
	for _, id := range ids {
		ann := b.Annotation(id)
		if ann != nil && ann.Kind == kind {
			out = append(out, id)
		}
	}
	return out
}
