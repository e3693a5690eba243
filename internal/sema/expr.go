package sema

import (
	"strconv"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/symbols"
	"github.com/covenant-lang/covenant/internal/token"
	"github.com/covenant-lang/covenant/internal/types"
)

// checkExpr type-checks one expression node, records its type for the
// lowerer, and returns that type (the Expressions rules).
func (c *Checker) checkExpr(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	e := c.builder.Expr(id)
	if e == nil {
		return c.errType()
	}
	switch e.Kind {
	case ast.ExprIdent:
		return c.checkIdent(scope, e, id)
	case ast.ExprLiteral:
		return c.checkLiteral(e, id)
	case ast.ExprBinary:
		return c.checkBinary(scope, e, id)
	case ast.ExprUnary:
		return c.checkUnary(scope, e, id)
	case ast.ExprCall:
		return c.checkCall(scope, e, id)
	case ast.ExprMember:
		return c.checkMember(scope, e, id)
	case ast.ExprIndex:
		return c.checkIndex(scope, e, id)
	case ast.ExprIf:
		return c.checkIfExpr(scope, e, id)
	case ast.ExprMatch:
		return c.setType(id, c.checkMatchArms(scope, e.Subject, e.Arms))
	case ast.ExprBlock:
		return c.checkBlock(scope, id)
	case ast.ExprLambda:
		return c.checkLambda(scope, e, id)
	case ast.ExprArray:
		return c.checkArray(scope, e, id)
	case ast.ExprTuple:
		return c.checkTuple(scope, e, id)
	case ast.ExprStructLiteral:
		return c.checkStructLiteral(scope, e, id)
	case ast.ExprRange:
		return c.checkRange(scope, e, id)
	case ast.ExprCast:
		return c.checkCast(scope, e, id)
	case ast.ExprOld:
		return c.checkOld(scope, e, id)
	case ast.ExprForall, ast.ExprExists:
		return c.checkQuantifier(scope, e, id)
	case ast.ExprTry:
		return c.checkTry(scope, e, id)
	case ast.ExprAssign:
		return c.checkAssign(scope, e, id)
	case ast.ExprSelf:
		return c.checkSelf(scope, e, id)
	default:
		return c.setType(id, c.errType())
	}
}

// checkIdent resolves a name against scope; "result" is special-cased to the
// enclosing function's return type while inside a contract condition.
func (c *Checker) checkIdent(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	if e.Name == "result" && c.inContract && c.currentReturn != types.NoTypeID {
		return c.setType(id, c.currentReturn)
	}
	if e.Name == "None" {
		if _, declared := c.symbols.Lookup(scope, symbols.NSOrdinary, "None"); !declared {
			return c.setType(id, c.types.Intern(types.MakeOptional(c.types.Builtins().Unknown)))
		}
	}
	sid, ok := c.symbols.Lookup(scope, symbols.NSOrdinary, e.Name)
	if !ok {
		c.errorf(e.Pos, diag.NameUndefined, "undefined name %q", e.Name)
		return c.setType(id, c.errType())
	}
	sym := c.symbols.Symbol(sid)
	if sym == nil {
		return c.setType(id, c.errType())
	}
	return c.setType(id, sym.Type)
}

func (c *Checker) checkLiteral(e *ast.Expr, id ast.ExprID) types.TypeID {
	b := c.types.Builtins()
	switch e.LitKind {
	case token.IntLit:
		return c.setType(id, b.Int)
	case token.FloatLit:
		return c.setType(id, b.Float64)
	case token.StringLit:
		return c.setType(id, b.String)
	case token.CharLit:
		return c.setType(id, b.Char)
	case token.BoolLit:
		return c.setType(id, b.Bool)
	case token.NilLit:
		return c.setType(id, b.Never)
	default:
		return c.setType(id, c.errType())
	}
}

// checkBinary implements the per-operator-family typing rules:
// arithmetic widens, comparisons and equality yield Bool, logical/bitwise
// require their operand kind and yield Bool/the operand type respectively.
func (c *Checker) checkBinary(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	lt := c.checkExpr(scope, e.Left)
	rt := c.checkExpr(scope, e.Right)
	b := c.types.Builtins()
	switch e.Op {
	case "+", "-", "*", "/", "%", "**":
		if c.badNumericPair(e.Pos, e.Op, lt, rt) {
			return c.setType(id, c.errType())
		}
		if c.isPoisoned(lt) || c.isPoisoned(rt) {
			return c.setType(id, c.errType())
		}
		return c.setType(id, c.types.Widen(lt, rt))
	case "==", "!=":
		if !c.isPoisoned(lt) && !c.isPoisoned(rt) && !c.types.MutuallyAssignable(lt, rt) {
			c.errorf(e.Pos, diag.TypeMismatch, "cannot compare %s and %s", c.typeName(lt), c.typeName(rt))
		}
		return c.setType(id, b.Bool)
	case "<", ">", "<=", ">=":
		c.badNumericPair(e.Pos, e.Op, lt, rt)
		return c.setType(id, b.Bool)
	case "&&", "||":
		if !c.isPoisoned(lt) && !c.isBool(lt) || !c.isPoisoned(rt) && !c.isBool(rt) {
			c.errorf(e.Pos, diag.TypeNotBoolean, "operator %q requires Bool operands, got %s and %s", e.Op, c.typeName(lt), c.typeName(rt))
		}
		return c.setType(id, b.Bool)
	case "&", "|", "^", "<<", ">>":
		if !c.isPoisoned(lt) && !c.isInteger(lt) || !c.isPoisoned(rt) && !c.isInteger(rt) {
			c.errorf(e.Pos, diag.TypeNotNumeric, "operator %q requires integer operands, got %s and %s", e.Op, c.typeName(lt), c.typeName(rt))
			return c.setType(id, c.errType())
		}
		return c.setType(id, lt)
	default:
		return c.setType(id, c.errType())
	}
}

// badNumericPair reports (and returns true for) a non-numeric operand pair,
// tolerating poisoned operands so one bad expression doesn't cascade.
func (c *Checker) badNumericPair(pos source.Position, op string, lt, rt types.TypeID) bool {
	lBad := !c.isPoisoned(lt) && !c.isNumeric(lt)
	rBad := !c.isPoisoned(rt) && !c.isNumeric(rt)
	if lBad || rBad {
		c.errorf(pos, diag.TypeNotNumeric, "operator %q requires numeric operands, got %s and %s", op, c.typeName(lt), c.typeName(rt))
		return true
	}
	return false
}

// checkUnary implements the unary operators: arithmetic negation,
// boolean/bitwise complement, reference-taking, and dereference.
func (c *Checker) checkUnary(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	operandType := c.checkExpr(scope, e.Operand)
	switch e.Prefix {
	case "-":
		if !c.isPoisoned(operandType) && !c.isNumeric(operandType) {
			c.errorf(e.Pos, diag.TypeNotNumeric, "unary '-' requires a numeric operand, got %s", c.typeName(operandType))
			return c.setType(id, c.errType())
		}
		return c.setType(id, operandType)
	case "!":
		if !c.isPoisoned(operandType) && !c.isBool(operandType) {
			c.errorf(e.Pos, diag.TypeNotBoolean, "unary '!' requires a Bool operand, got %s", c.typeName(operandType))
			return c.setType(id, c.errType())
		}
		return c.setType(id, operandType)
	case "~":
		if !c.isPoisoned(operandType) && !c.isInteger(operandType) {
			c.errorf(e.Pos, diag.TypeNotNumeric, "unary '~' requires an integer operand, got %s", c.typeName(operandType))
			return c.setType(id, c.errType())
		}
		return c.setType(id, operandType)
	case "&":
		return c.setType(id, c.types.Intern(types.MakeReference(operandType, false)))
	case "&mut":
		return c.setType(id, c.types.Intern(types.MakeReference(operandType, true)))
	case "*":
		t, ok := c.types.Lookup(operandType)
		if !ok || t.Kind != types.KindReference {
			if !c.isPoisoned(operandType) {
				c.errorf(e.Pos, diag.TypeCannotDeref, "cannot dereference a value of type %s", c.typeName(operandType))
			}
			return c.setType(id, c.errType())
		}
		return c.setType(id, t.Elem)
	default:
		return c.setType(id, c.errType())
	}
}

// checkAssign implements the assignment rule: an identifier LHS
// must name a mutable symbol, "=" requires the RHS assignable into the LHS,
// and compound operators require numeric operands on both sides.
func (c *Checker) checkAssign(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	leftType := c.checkExpr(scope, e.Left)
	rightType := c.checkExpr(scope, e.Right)

	if left := c.builder.Expr(e.Left); left != nil && left.Kind == ast.ExprIdent {
		if sid, ok := c.symbols.Lookup(scope, symbols.NSOrdinary, left.Name); ok {
			if sym := c.symbols.Symbol(sid); sym != nil && !sym.Mutable {
				c.errorf(e.Pos, diag.TypeNotMutable, "cannot assign to immutable variable %q", left.Name)
			}
		}
	}

	switch e.Op {
	case "=":
		if !c.assignable(rightType, leftType) {
			c.errorf(e.Pos, diag.TypeMismatch, "cannot assign %s to %s", c.typeName(rightType), c.typeName(leftType))
		}
	default:
		c.badNumericPair(e.Pos, e.Op, leftType, rightType)
	}
	return c.setType(id, leftType)
}

// checkCall implements the Call rule: the callee must be a
// function type, or a struct type used as a positional constructor (the
// grammar's only other "callable" shape — an enum variant constructor
// reaches this same function-type path via checkMember synthesizing one).
func (c *Checker) checkCall(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	if callee := c.builder.Expr(e.Callee); callee != nil && callee.Kind == ast.ExprIdent {
		if t, ok := c.checkResultOptionConstructor(scope, callee.Name, e); ok {
			return c.setType(id, t)
		}
	}
	calleeType := c.checkExpr(scope, e.Callee)
	argTypes := make([]types.TypeID, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = c.checkExpr(scope, a)
	}
	if c.isPoisoned(calleeType) {
		return c.setType(id, c.errType())
	}
	t, _ := c.types.Lookup(calleeType)
	switch t.Kind {
	case types.KindFunction:
		info, ok := c.types.FnInfo(calleeType)
		if !ok {
			return c.setType(id, c.errType())
		}
		result := c.checkCallArgs(e.Pos, info.Params, info.Result, info.Effects, argTypes)
		return c.setType(id, result)
	case types.KindStruct:
		info, ok := c.types.StructInfo(calleeType)
		if !ok {
			return c.setType(id, c.errType())
		}
		fieldTypes := make([]types.TypeID, len(info.Fields))
		for i, f := range info.Fields {
			fieldTypes[i] = f.Type
		}
		result := c.checkCallArgs(e.Pos, fieldTypes, calleeType, nil, argTypes)
		return c.setType(id, result)
	default:
		c.errorf(e.Pos, diag.TypeMismatch, "cannot call a value of type %s", c.typeName(calleeType))
		return c.setType(id, c.errType())
	}
}

// checkResultOptionConstructor recognizes the three built-in Result/Option
// constructors that take an argument (Ok, Err, Some) by name; `None` is
// handled in checkIdent (the lowering treats these as runtime
// prelude functions; the checker has no generic-function instantiation, so
// they are handled here instead of through an ordinary declared signature).
// A user declaration of the same name in scope takes precedence.
func (c *Checker) checkResultOptionConstructor(scope symbols.ScopeID, name string, e *ast.Expr) (types.TypeID, bool) {
	switch name {
	case "Ok", "Err", "Some":
	default:
		return types.NoTypeID, false
	}
	if _, declared := c.symbols.Lookup(scope, symbols.NSOrdinary, name); declared {
		return types.NoTypeID, false
	}
	unk := c.types.Builtins().Unknown
	if len(e.Args) != 1 {
		c.errorf(e.Pos, diag.TypeArity, "%s expects 1 argument, got %d", name, len(e.Args))
		for _, a := range e.Args {
			c.checkExpr(scope, a)
		}
		return c.errType(), true
	}
	v := c.checkExpr(scope, e.Args[0])
	switch name {
	case "Ok":
		return c.types.Intern(types.MakeResult(v, unk)), true
	case "Err":
		return c.types.Intern(types.MakeResult(unk, v)), true
	default: // Some
		return c.types.Intern(types.MakeOptional(v)), true
	}
}

// checkCallArgs checks argument arity and per-argument assignability against
// params, and that effects is a subset of the caller's active effect set,
// returning result (the callee's own poisoned errType if arity fails).
func (c *Checker) checkCallArgs(pos source.Position, params []types.TypeID, result types.TypeID, effects []string, args []types.TypeID) types.TypeID {
	if len(params) != len(args) {
		c.errorf(pos, diag.TypeArity, "expected %d argument(s), got %d", len(params), len(args))
	} else {
		for i, p := range params {
			if !c.assignable(args[i], p) {
				c.errorf(pos, diag.TypeMismatch, "argument %d has type %s, expected %s", i+1, c.typeName(args[i]), c.typeName(p))
			}
		}
	}
	if len(effects) > 0 {
		callee := symbols.NewEffectSet(effects)
		if !callee.IsSubsetOf(c.activeEffects) {
			c.errorf(pos, diag.EffectMissing, "call requires effect(s) %v not in the active effect set", callee.Missing(c.activeEffects))
		}
	}
	return result
}

// checkMember implements the Member rule: a struct or
// reference-to-struct field, an effect's method (yielding a function type
// so `EffectName.method(...)` flows through checkCall unchanged), an enum
// variant used as a constructor (synthesizing a function type the same
// way), or a tuple's literal-index field.
func (c *Checker) checkMember(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	objType := c.checkExpr(scope, e.Object)
	if c.isPoisoned(objType) {
		return c.setType(id, c.errType())
	}
	target := objType
	t, _ := c.types.Lookup(objType)
	tk := t.Kind
	if tk == types.KindReference {
		target = t.Elem
		tt, _ := c.types.Lookup(target)
		tk = tt.Kind
	}
	switch tk {
	case types.KindStruct:
		if info, ok := c.types.StructInfo(target); ok {
			for _, f := range info.Fields {
				if f.Name == e.Field {
					return c.setType(id, f.Type)
				}
			}
		}
		c.errorf(e.Pos, diag.TypeUnknownField, "struct %q has no field %q", c.typeName(target), e.Field)
		return c.setType(id, c.errType())
	case types.KindEffect:
		if info, ok := c.types.EffectInfo(target); ok {
			for _, op := range info.Ops {
				if op.Name == e.Field {
					return c.setType(id, c.types.RegisterFn(op.Params, op.Result, op.Effects))
				}
			}
		}
		c.errorf(e.Pos, diag.TypeUnknownField, "effect %q has no operation %q", c.typeName(target), e.Field)
		return c.setType(id, c.errType())
	case types.KindEnum:
		if info, ok := c.types.EnumInfo(target); ok {
			for _, v := range info.Variants {
				if v.Name == e.Field {
					return c.setType(id, c.types.RegisterFn(v.Fields, target, nil))
				}
			}
		}
		c.errorf(e.Pos, diag.TypeUnknownVariant, "enum %q has no variant %q", c.typeName(target), e.Field)
		return c.setType(id, c.errType())
	case types.KindTuple:
		info, ok := c.types.TupleInfo(target)
		idx, err := strconv.Atoi(e.Field)
		if !ok || err != nil || idx < 0 || idx >= len(info.Elements) {
			c.errorf(e.Pos, diag.TypeCannotIndex, "tuple has no element %q", e.Field)
			return c.setType(id, c.errType())
		}
		return c.setType(id, info.Elements[idx])
	default:
		c.errorf(e.Pos, diag.TypeUnknownField, "cannot access field %q on type %s", e.Field, c.typeName(objType))
		return c.setType(id, c.errType())
	}
}

// checkIndex implements the Index rule: an array requires an
// integer index; a tuple requires a literal integer index, in bounds.
func (c *Checker) checkIndex(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	objType := c.checkExpr(scope, e.Indexee)
	idxType := c.checkExpr(scope, e.IndexExpr)
	if c.isPoisoned(objType) {
		return c.setType(id, c.errType())
	}
	t, _ := c.types.Lookup(objType)
	switch t.Kind {
	case types.KindArray:
		if !c.isPoisoned(idxType) && !c.isInteger(idxType) {
			c.errorf(e.Pos, diag.TypeNotNumeric, "array index must be an integer, got %s", c.typeName(idxType))
		}
		return c.setType(id, t.Elem)
	case types.KindTuple:
		info, ok := c.types.TupleInfo(objType)
		idxExpr := c.builder.Expr(e.IndexExpr)
		if idxExpr == nil || idxExpr.Kind != ast.ExprLiteral || idxExpr.LitKind != token.IntLit {
			c.errorf(e.Pos, diag.TypeCannotIndex, "tuple index must be a literal integer")
			return c.setType(id, c.errType())
		}
		n := int(idxExpr.Literal.Int)
		if !ok || n < 0 || n >= len(info.Elements) {
			c.errorf(e.Pos, diag.TypeCannotIndex, "tuple index %d out of bounds", n)
			return c.setType(id, c.errType())
		}
		return c.setType(id, info.Elements[n])
	default:
		c.errorf(e.Pos, diag.TypeCannotIndex, "cannot index a value of type %s", c.typeName(objType))
		return c.setType(id, c.errType())
	}
}

// checkIfExpr types an `if` used in tail/value position: both branches are
// checked, and a type mismatch between them is a warning (the
// branch-divergence rule), not an error — the narrower/wider of the two
// assignable in either direction is reported as the expression's type.
func (c *Checker) checkIfExpr(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	condType := c.checkExpr(scope, e.Cond)
	if !c.isPoisoned(condType) && !c.isBool(condType) {
		c.errorf(c.builder.Expr(e.Cond).Pos, diag.TypeNotBoolean, "if condition must be Bool, got %s", c.typeName(condType))
	}
	thenType := c.checkExpr(scope, e.Then)
	if !e.Else.IsValid() {
		return c.setType(id, c.types.Builtins().Void)
	}
	elseType := c.checkExpr(scope, e.Else)
	if c.isPoisoned(thenType) || c.isPoisoned(elseType) {
		return c.setType(id, c.errType())
	}
	if c.assignable(elseType, thenType) {
		return c.setType(id, thenType)
	}
	if c.assignable(thenType, elseType) {
		return c.setType(id, elseType)
	}
	c.warnf(e.Pos, diag.WarnBranchMismatch, "if branches have divergent types %s and %s", c.typeName(thenType), c.typeName(elseType))
	return c.setType(id, thenType)
}

// checkMatchArms is shared between a match expression (ExprMatch) and a
// match statement (StmtMatch): each arm binds its pattern in a fresh scope,
// checks its optional guard as Bool, and checks its body; a divergence
// between arm body types is a warning, per the match-arm rule.
func (c *Checker) checkMatchArms(scope symbols.ScopeID, subjectID ast.ExprID, arms []ast.MatchArm) types.TypeID {
	subjectType := c.checkExpr(scope, subjectID)
	var common types.TypeID
	haveCommon := false
	for _, arm := range arms {
		armScope := c.symbols.NewScope(symbols.ScopeBlock, scope)
		c.bindPattern(armScope, arm.Pattern, subjectType)
		if arm.Guard.IsValid() {
			gt := c.checkExpr(armScope, arm.Guard)
			if !c.isPoisoned(gt) && !c.isBool(gt) {
				c.errorf(c.builder.Expr(arm.Guard).Pos, diag.TypeNotBoolean, "match guard must be Bool, got %s", c.typeName(gt))
			}
		}
		bodyType := c.checkExpr(armScope, arm.Body)
		if c.isPoisoned(bodyType) {
			continue
		}
		switch {
		case !haveCommon:
			common = bodyType
			haveCommon = true
		case c.assignable(bodyType, common):
			// common already wide enough
		case c.assignable(common, bodyType):
			common = bodyType
		default:
			c.warnf(c.builder.Expr(arm.Body).Pos, diag.WarnBranchMismatch, "match arm has divergent type %s, expected %s", c.typeName(bodyType), c.typeName(common))
		}
	}
	if !haveCommon {
		return c.types.Builtins().Void
	}
	return common
}

// checkLambda checks a lambda literal's body in a fresh function scope and
// returns its (possibly newly-registered) function type.
func (c *Checker) checkLambda(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	lamScope := c.symbols.NewScope(symbols.ScopeFunction, scope)
	paramTypes := make([]types.TypeID, len(e.Params))
	for i, p := range e.Params {
		pt := c.types.Builtins().Unknown
		if p.Type.IsValid() {
			pt = c.resolveTypeExpr(lamScope, p.Type)
		}
		paramTypes[i] = pt
		c.symbols.Declare(lamScope, symbols.NSOrdinary, symbols.Symbol{
			Kind: symbols.SymbolParam, Name: p.Name, Type: pt, Mutable: p.Mut, Pos: p.Pos,
		})
	}
	bodyType := c.checkExpr(lamScope, e.Body)
	ret := bodyType
	if e.RetType.IsValid() {
		ret = c.resolveTypeExpr(lamScope, e.RetType)
		if !c.assignable(bodyType, ret) {
			c.errorf(e.Pos, diag.TypeMismatch, "lambda body has type %s, expected %s", c.typeName(bodyType), c.typeName(ret))
		}
	}
	return c.setType(id, c.types.RegisterFn(paramTypes, ret, nil))
}

// checkArray checks every element against the first element's type (each
// subsequent element just needs to be mutually widenable with it) and
// returns an array type sized to the literal's element count.
func (c *Checker) checkArray(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	elem := c.types.Builtins().Unknown
	for i, el := range e.Elements {
		t := c.checkExpr(scope, el)
		if i == 0 {
			elem = t
			continue
		}
		if !c.isPoisoned(t) && !c.isPoisoned(elem) && !c.assignable(t, elem) && !c.assignable(elem, t) {
			c.errorf(c.builder.Expr(el).Pos, diag.TypeMismatch, "array element has type %s, expected %s", c.typeName(t), c.typeName(elem))
		}
	}
	return c.setType(id, c.types.Intern(types.MakeArray(elem, uint32(len(e.Elements)))))
}

// checkTuple checks every element; an empty parenthesized literal is Void
// (the grammar never builds a one-element Tuple node — see parseTuplePattern
// for the analogous collapse on the pattern side).
func (c *Checker) checkTuple(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	if len(e.Elements) == 0 {
		return c.setType(id, c.types.Builtins().Void)
	}
	elemTypes := make([]types.TypeID, len(e.Elements))
	for i, el := range e.Elements {
		elemTypes[i] = c.checkExpr(scope, el)
	}
	return c.setType(id, c.types.RegisterTuple(elemTypes))
}

// checkStructLiteral checks each field's value against the struct's
// declared field type, a `..base` spread against the struct type itself,
// and (absent a spread) that every field was supplied.
func (c *Checker) checkStructLiteral(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	structType, ok := c.nominalType(scope, e.TypeName)
	if !ok {
		c.errorf(e.Pos, diag.NameUnknownType, "unknown struct %q", e.TypeName)
		structType = c.errType()
	}
	info, infoOK := c.types.StructInfo(structType)
	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		vt := c.checkExpr(scope, f.Value)
		seen[f.Name] = true
		if !infoOK {
			continue
		}
		found := false
		for _, sf := range info.Fields {
			if sf.Name == f.Name {
				found = true
				if !c.assignable(vt, sf.Type) {
					c.errorf(f.Pos, diag.TypeMismatch, "field %q has type %s, expected %s", f.Name, c.typeName(vt), c.typeName(sf.Type))
				}
				break
			}
		}
		if !found {
			c.errorf(f.Pos, diag.TypeUnknownField, "struct %q has no field %q", e.TypeName, f.Name)
		}
	}
	if e.Spread.IsValid() {
		spreadType := c.checkExpr(scope, e.Spread)
		if !c.assignable(spreadType, structType) {
			c.errorf(e.Pos, diag.TypeMismatch, "spread base has type %s, expected %s", c.typeName(spreadType), c.typeName(structType))
		}
	} else if infoOK {
		for _, sf := range info.Fields {
			if !seen[sf.Name] {
				c.errorf(e.Pos, diag.TypeArity, "missing field %q in struct literal for %q", sf.Name, e.TypeName)
			}
		}
	}
	return c.setType(id, structType)
}

// checkRange checks that both bounds are integers. A range is represented
// as a dynamically-sized array of the low bound's type so that `for i in
// lo..hi` infers i's type through the ordinary for-in element-type rule.
func (c *Checker) checkRange(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	loType := c.checkExpr(scope, e.Low)
	if !c.isPoisoned(loType) && !c.isInteger(loType) {
		c.errorf(e.Pos, diag.TypeNotNumeric, "range bound must be an integer, got %s", c.typeName(loType))
	}
	if e.High.IsValid() {
		hiType := c.checkExpr(scope, e.High)
		if !c.isPoisoned(hiType) && !c.isInteger(hiType) {
			c.errorf(e.Pos, diag.TypeNotNumeric, "range bound must be an integer, got %s", c.typeName(hiType))
		}
	}
	return c.setType(id, c.types.Intern(types.MakeArray(loType, types.ArrayDynamicLength)))
}

// checkCast checks the operand (for its side effects on ExprTypes) and
// trusts CastType as written; the grammar gives no further cast-legality
// rule to enforce.
func (c *Checker) checkCast(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	c.checkExpr(scope, e.Operand)
	return c.setType(id, c.resolveTypeExpr(scope, e.CastType))
}

// checkOld implements the `old(...)`: legal only inside a
// contract condition, typed as its operand's type.
func (c *Checker) checkOld(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	if !c.inContract {
		c.errorf(e.Pos, diag.ContractOutsideContext, "'old' is only legal inside a contract condition")
	}
	return c.setType(id, c.checkExpr(scope, e.Operand))
}

// checkTry implements the `?` operator: legal only inside a
// function whose own return type is Result, and only on a Result-typed
// operand; yields the operand's Ok type.
func (c *Checker) checkTry(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	operandType := c.checkExpr(scope, e.Operand)
	if !c.inFunction {
		c.errorf(e.Pos, diag.ContractTryOutsideFn, "'?' operator used outside a function")
		return c.setType(id, c.errType())
	}
	if rt, ok := c.types.Lookup(c.currentReturn); !ok || rt.Kind != types.KindResult {
		c.errorf(e.Pos, diag.ContractTryNotResult, "'?' requires the enclosing function to return a Result, got %s", c.typeName(c.currentReturn))
		return c.setType(id, c.errType())
	}
	t, ok := c.types.Lookup(operandType)
	if !c.isPoisoned(operandType) && (!ok || t.Kind != types.KindResult) {
		c.errorf(e.Pos, diag.ContractTryNotResult, "'?' operand must have a Result type, got %s", c.typeName(operandType))
		return c.setType(id, c.errType())
	}
	if c.isPoisoned(operandType) {
		return c.setType(id, c.errType())
	}
	return c.setType(id, t.Elem)
}

// quantifierElemType implements the `forall`/`exists` binding
// rule: the element type of an array collection, else Int.
func (c *Checker) quantifierElemType(collType types.TypeID, haveColl bool) types.TypeID {
	if haveColl {
		if t, ok := c.types.Lookup(collType); ok && t.Kind == types.KindArray {
			return t.Elem
		}
	}
	return c.types.Builtins().Int
}

// checkQuantifier implements the forall/exists rule: legal only
// inside a contract condition, binds each binder in a fresh scope, and
// requires its predicate to be Bool. The quantifier expression itself is
// always Bool.
func (c *Checker) checkQuantifier(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	if !c.inContract {
		c.errorf(e.Pos, diag.ContractOutsideContext, "quantifiers are only legal inside a contract condition")
	}
	qScope := c.symbols.NewScope(symbols.ScopeBlock, scope)
	var collElem types.TypeID
	haveColl := e.Collection.IsValid()
	if haveColl {
		collType := c.checkExpr(qScope, e.Collection)
		collElem = c.quantifierElemType(collType, true)
	}
	for _, bind := range e.Bindings {
		bt := collElem
		if bind.Type.IsValid() {
			bt = c.resolveTypeExpr(qScope, bind.Type)
		} else if !haveColl {
			bt = c.types.Builtins().Int
		}
		c.symbols.Declare(qScope, symbols.NSOrdinary, symbols.Symbol{
			Kind: symbols.SymbolVariable, Name: bind.Name, Type: bt, Pos: e.Pos,
		})
	}
	predType := c.checkExpr(qScope, e.Predicate)
	if !c.isPoisoned(predType) && !c.isBool(predType) {
		c.errorf(c.builder.Expr(e.Predicate).Pos, diag.TypeNotBoolean, "quantifier body must be Bool, got %s", c.typeName(predType))
	}
	return c.setType(id, c.types.Builtins().Bool)
}

// checkSelf resolves the synthetic `self` binding a method/invariant scope
// declares.
func (c *Checker) checkSelf(scope symbols.ScopeID, e *ast.Expr, id ast.ExprID) types.TypeID {
	if sid, ok := c.symbols.Lookup(scope, symbols.NSOrdinary, "self"); ok {
		if sym := c.symbols.Symbol(sid); sym != nil {
			return c.setType(id, sym.Type)
		}
	}
	c.errorf(e.Pos, diag.NameUndefined, "'self' used outside a method")
	return c.setType(id, c.errType())
}
