package ast

import "testing"

func TestBuilder_RoundTripsNodesByID(t *testing.T) {
	b := NewBuilder(Hints{})

	tInt := b.NewType(TypeExpr{Kind: TyPrimitive, Name: "Int"})
	lit := b.NewExpr(Expr{Kind: ExprLiteral, LitKind: 0})
	left := b.NewExpr(Expr{Kind: ExprIdent, Name: "x"})
	bin := b.NewExpr(Expr{Kind: ExprBinary, Op: "+", Left: left, Right: lit})

	fn := b.NewDecl(Decl{
		Kind:    DeclFunction,
		Name:    "add",
		Params:  []Param{{Name: "x", Type: tInt}},
		RetType: tInt,
		Body:    bin,
	})

	got := b.Decl(fn)
	if got == nil || got.Name != "add" {
		t.Fatalf("Decl(%d) = %+v, want function named add", fn, got)
	}
	gotBody := b.Expr(got.Body)
	if gotBody == nil || gotBody.Kind != ExprBinary || gotBody.Op != "+" {
		t.Fatalf("Expr(body) = %+v, want binary +", gotBody)
	}
	if b.Expr(gotBody.Left).Name != "x" {
		t.Fatalf("left operand not preserved")
	}
}

func TestIDs_ZeroValueIsInvalid(t *testing.T) {
	if NoDeclID.IsValid() || NoExprID.IsValid() || NoTypeID.IsValid() ||
		NoAnnotationID.IsValid() || NoPatternID.IsValid() || NoStmtID.IsValid() {
		t.Fatalf("zero-value IDs must report IsValid() == false")
	}
}

func TestArena_GetOutOfRange(t *testing.T) {
	a := NewArena[int](0)
	id := a.Allocate(42)
	if got := a.Get(id); got == nil || *got != 42 {
		t.Fatalf("Get(%d) = %v, want 42", id, got)
	}
	if a.Get(0) != nil {
		t.Fatalf("Get(0) should be nil")
	}
	if a.Get(id + 1) != nil {
		t.Fatalf("Get(out of range) should be nil")
	}
}
