package lower

import "github.com/covenant-lang/covenant/internal/ast"

// collectOld walks id's expression tree and appends every ExprOld node
// found, in encounter order, so the caller can snapshot each one's operand
// once at function entry (the `old(·)` rule: every occurrence
// names a value as it stood before the function body ran).
func (e *emitter) collectOld(id ast.ExprID, out *[]ast.ExprID) {
	if !id.IsValid() {
		return
	}
	x := e.builder.Expr(id)
	if x == nil {
		return
	}
	if x.Kind == ast.ExprOld {
		*out = append(*out, id)
		return
	}
	switch x.Kind {
	case ast.ExprBinary, ast.ExprAssign:
		e.collectOld(x.Left, out)
		e.collectOld(x.Right, out)
	case ast.ExprUnary:
		e.collectOld(x.Operand, out)
	case ast.ExprCall:
		e.collectOld(x.Callee, out)
		for _, a := range x.Args {
			e.collectOld(a, out)
		}
	case ast.ExprMember:
		e.collectOld(x.Object, out)
	case ast.ExprIndex:
		e.collectOld(x.Indexee, out)
		e.collectOld(x.IndexExpr, out)
	case ast.ExprIf:
		e.collectOld(x.Cond, out)
		e.collectOld(x.Then, out)
		e.collectOld(x.Else, out)
	case ast.ExprMatch:
		e.collectOld(x.Subject, out)
		for _, arm := range x.Arms {
			e.collectOld(arm.Guard, out)
			e.collectOld(arm.Body, out)
		}
	case ast.ExprBlock:
		for _, sid := range x.Stmts {
			if s := e.builder.Stmt(sid); s != nil {
				for _, sub := range []ast.ExprID{s.Init, s.Value, s.Cond, s.Then, s.Else, s.Iter, s.Body, s.Subject} {
					e.collectOld(sub, out)
				}
				for _, arm := range s.Arms {
					e.collectOld(arm.Guard, out)
					e.collectOld(arm.Body, out)
				}
			}
		}
		e.collectOld(x.Tail, out)
	case ast.ExprLambda:
		e.collectOld(x.Body, out)
	case ast.ExprArray, ast.ExprTuple:
		for _, el := range x.Elements {
			e.collectOld(el, out)
		}
	case ast.ExprStructLiteral:
		for _, f := range x.Fields {
			e.collectOld(f.Value, out)
		}
		e.collectOld(x.Spread, out)
	case ast.ExprRange:
		e.collectOld(x.Low, out)
		e.collectOld(x.High, out)
	case ast.ExprCast:
		e.collectOld(x.Operand, out)
	case ast.ExprForall, ast.ExprExists:
		e.collectOld(x.Collection, out)
		e.collectOld(x.Predicate, out)
	case ast.ExprTry:
		e.collectOld(x.Operand, out)
	}
}
