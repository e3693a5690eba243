package lower

import (
	"strconv"
	"strings"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/token"
)

// expr lowers one expression to a JS expression string. Blocks used in
// value position (if/match/block-as-subexpression) lower to an
// immediately-invoked closure returning the trailing expression, per the
// block-as-value rule; every other node lowers to a direct expression.
func (e *emitter) expr(id ast.ExprID) string {
	x := e.builder.Expr(id)
	if x == nil {
		return "undefined"
	}
	switch x.Kind {
	case ast.ExprIdent:
		return x.Name
	case ast.ExprSelf:
		return "this"
	case ast.ExprLiteral:
		return e.literal(x)
	case ast.ExprBinary:
		return e.binary(x)
	case ast.ExprUnary:
		return e.unary(x)
	case ast.ExprCall:
		return e.call(x)
	case ast.ExprMember:
		return e.expr(x.Object) + "." + x.Field
	case ast.ExprIndex:
		return e.expr(x.Indexee) + "[" + e.expr(x.IndexExpr) + "]"
	case ast.ExprIf:
		return e.ifAsValue(x)
	case ast.ExprMatch:
		return e.matchAsValue(x)
	case ast.ExprBlock:
		return e.blockAsValue(x)
	case ast.ExprLambda:
		return e.lambda(x)
	case ast.ExprArray:
		return "[" + e.exprList(x.Elements) + "]"
	case ast.ExprTuple:
		return "[" + e.exprList(x.Elements) + "]"
	case ast.ExprStructLiteral:
		return e.structLiteral(x)
	case ast.ExprRange:
		return e.rangeArray(x)
	case ast.ExprCast:
		return e.expr(x.Operand)
	case ast.ExprOld:
		if name, ok := e.oldNames[id]; ok {
			return name
		}
		return e.expr(x.Operand)
	case ast.ExprForall:
		return e.quantifier(x, true)
	case ast.ExprExists:
		return e.quantifier(x, false)
	case ast.ExprTry:
		return "__unwrap(" + e.expr(x.Operand) + ")"
	case ast.ExprAssign:
		return e.assign(x)
	default:
		return "undefined"
	}
}

func (e *emitter) exprList(ids []ast.ExprID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = e.expr(id)
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) literal(x *ast.Expr) string {
	switch x.LitKind {
	case token.IntLit:
		return strconv.FormatInt(x.Literal.Int, 10)
	case token.FloatLit:
		return strconv.FormatFloat(x.Literal.Float, 'g', -1, 64)
	case token.StringLit:
		return strconv.Quote(x.Literal.String)
	case token.CharLit:
		return strconv.Quote(string(x.Literal.Char))
	case token.BoolLit:
		if x.Literal.Bool {
			return "true"
		}
		return "false"
	case token.NilLit:
		return "null"
	default:
		return "undefined"
	}
}

func (e *emitter) binary(x *ast.Expr) string {
	if x.Op == "**" {
		return "Math.pow(" + e.expr(x.Left) + ", " + e.expr(x.Right) + ")"
	}
	return "(" + e.expr(x.Left) + " " + x.Op + " " + e.expr(x.Right) + ")"
}

func (e *emitter) unary(x *ast.Expr) string {
	switch x.Prefix {
	case "&", "&mut", "*":
		// References and dereference have no runtime representation in the
		// target language; only the checker's aliasing discipline cares.
		return e.expr(x.Operand)
	default:
		return x.Prefix + e.expr(x.Operand)
	}
}

// call lowers a call expression. A struct used as a positional constructor
// (the "struct type used as a positional constructor" call
// rule) is special-cased to route through the class constructor's named-
// fields shape established by emitStructDecl, rather than calling the
// class as a bare function — the one place call lowering needs the
// checker's resolved types rather than pure syntax.
func (e *emitter) call(x *ast.Expr) string {
	if fields, ok := e.positionalStructFields(x.Callee); ok {
		var b strings.Builder
		b.WriteString("new " + e.expr(x.Callee) + "({")
		for i, f := range fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f + ": ")
			if i < len(x.Args) {
				b.WriteString(e.expr(x.Args[i]))
			} else {
				b.WriteString("undefined")
			}
		}
		b.WriteString("})")
		return b.String()
	}
	return e.expr(x.Callee) + "(" + e.exprList(x.Args) + ")"
}

// positionalStructFields reports the field names of the struct callee
// denotes, if checking resolved it to a struct type.
func (e *emitter) positionalStructFields(calleeID ast.ExprID) ([]string, bool) {
	if e.res == nil {
		return nil, false
	}
	calleeType := e.res.TypeOf(calleeID)
	st, ok := e.res.Types.StructInfo(calleeType)
	if !ok {
		return nil, false
	}
	names := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		names[i] = f.Name
	}
	return names, true
}

func (e *emitter) lambda(x *ast.Expr) string {
	names := make([]string, len(x.Params))
	for i, p := range x.Params {
		names[i] = p.Name
	}
	body := e.builder.Expr(x.Body)
	if body != nil && body.Kind == ast.ExprBlock {
		return "(" + strings.Join(names, ", ") + ") => " + e.blockAsValue(body)
	}
	return "(" + strings.Join(names, ", ") + ") => (" + e.expr(x.Body) + ")"
}

func (e *emitter) structLiteral(x *ast.Expr) string {
	var b strings.Builder
	b.WriteString("{")
	for i, f := range x.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(e.expr(f.Value))
	}
	b.WriteString("}")
	fields := b.String()
	if x.Spread.IsValid() {
		fields = "__extend(" + e.expr(x.Spread) + ", " + fields + ")"
	}
	return "new " + x.TypeName + "(" + fields + ")"
}

func (e *emitter) rangeArray(x *ast.Expr) string {
	hi := e.expr(x.High)
	if x.Inclusive {
		hi = "(" + hi + ") + 1"
	}
	return "__range(" + e.expr(x.Low) + ", " + hi + ")"
}

func (e *emitter) assign(x *ast.Expr) string {
	return e.expr(x.Left) + " " + x.Op + " " + e.expr(x.Right)
}

// ifAsValue lowers an if-expression used for its value to an IIFE, per the
// block-as-value rule: the condition and branches are ordinary JS, wrapped
// so the whole thing is itself one expression.
func (e *emitter) ifAsValue(x *ast.Expr) string {
	var b strings.Builder
	b.WriteString("(() => { if (")
	b.WriteString(e.expr(x.Cond))
	b.WriteString(") { return ")
	b.WriteString(e.tailExprOf(x.Then))
	b.WriteString("; }")
	if x.Else.IsValid() {
		b.WriteString(" else { return ")
		b.WriteString(e.tailExprOf(x.Else))
		b.WriteString("; } ")
	} else {
		b.WriteString(" ")
	}
	b.WriteString("})()")
	return b.String()
}

// tailExprOf returns the value an if/match branch (itself a block or a
// nested if) yields, as a single expression.
func (e *emitter) tailExprOf(id ast.ExprID) string {
	x := e.builder.Expr(id)
	if x == nil {
		return "undefined"
	}
	if x.Kind == ast.ExprBlock {
		return e.blockTailValueInline(x)
	}
	return e.expr(id)
}

func (e *emitter) matchAsValue(x *ast.Expr) string {
	var b strings.Builder
	subj := e.freshName("subj")
	b.WriteString("(() => { const " + subj + " = " + e.expr(x.Subject) + "; ")
	for _, arm := range x.Arms {
		cond, binds := e.patternTest(arm.Pattern, subj)
		b.WriteString("if (" + cond + ") { ")
		for _, bind := range binds {
			b.WriteString(bind + " ")
		}
		if arm.Guard.IsValid() {
			b.WriteString("if (" + e.expr(arm.Guard) + ") { return " + e.tailExprOf(arm.Body) + "; } ")
		} else {
			b.WriteString("return " + e.tailExprOf(arm.Body) + "; ")
		}
		b.WriteString("} ")
	}
	b.WriteString("throw new Error(\"no match arm matched\"); })()")
	return b.String()
}

// blockAsValue lowers a block used in value position to an IIFE, per the
// block-as-value rule.
func (e *emitter) blockAsValue(x *ast.Expr) string {
	body := e.capture(func() {
		e.indent++
		for _, sid := range x.Stmts {
			e.stmt(sid)
		}
		if x.Tail.IsValid() {
			e.line("return " + e.expr(x.Tail) + ";")
		}
		e.indent--
	})
	return "(() => {\n" + body + strings.Repeat("  ", e.indent) + "})()"
}

// blockTailValueInline is used where the surrounding construct (an if/match
// arm lowered inside another IIFE) already provides the "return" keyword,
// so the block's statements are inlined directly rather than re-wrapped.
func (e *emitter) blockTailValueInline(x *ast.Expr) string {
	if len(x.Stmts) == 0 {
		if x.Tail.IsValid() {
			return e.expr(x.Tail)
		}
		return "undefined"
	}
	return e.blockAsValue(x)
}

func (e *emitter) quantifier(x *ast.Expr, all bool) string {
	binder := "__qi"
	if len(x.Bindings) > 0 {
		binder = x.Bindings[0].Name
	}
	coll := "[]"
	if x.Collection.IsValid() {
		coll = e.expr(x.Collection)
	}
	method := "every"
	if !all {
		method = "some"
	}
	return coll + "." + method + "((" + binder + ") => " + e.tailExprOf(x.Predicate) + ")"
}
