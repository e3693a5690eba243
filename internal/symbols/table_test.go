package symbols

import "testing"

func TestTable_DeclareAndLookup(t *testing.T) {
	tbl := NewTable()
	fn := tbl.NewScope(ScopeFunction, tbl.Global())

	if _, ok := tbl.Declare(fn, NSOrdinary, Symbol{Kind: SymbolParam, Name: "x"}); !ok {
		t.Fatalf("first declaration of x should succeed")
	}
	if _, ok := tbl.Declare(fn, NSOrdinary, Symbol{Kind: SymbolVariable, Name: "x"}); ok {
		t.Fatalf("redeclaring x in the same scope must fail")
	}

	id, ok := tbl.Lookup(fn, NSOrdinary, "x")
	if !ok {
		t.Fatalf("x should be found")
	}
	if sym := tbl.Symbol(id); sym.Kind != SymbolParam {
		t.Fatalf("got kind %v, want SymbolParam", sym.Kind)
	}
}

func TestTable_ShadowingAcrossScopesAllowed(t *testing.T) {
	tbl := NewTable()
	outer := tbl.NewScope(ScopeFunction, tbl.Global())
	tbl.Declare(outer, NSOrdinary, Symbol{Kind: SymbolVariable, Name: "x"})

	inner := tbl.NewScope(ScopeBlock, outer)
	if _, ok := tbl.Declare(inner, NSOrdinary, Symbol{Kind: SymbolVariable, Name: "x"}); !ok {
		t.Fatalf("shadowing x in a nested scope must succeed")
	}

	id, _ := tbl.Lookup(inner, NSOrdinary, "x")
	innerSym := tbl.Symbol(id)
	outerID, _ := tbl.Lookup(outer, NSOrdinary, "x")
	outerSym := tbl.Symbol(outerID)
	if innerSym == outerSym {
		t.Fatalf("inner lookup must resolve to the inner symbol, not the outer one")
	}
}

func TestTable_NamespacesAreIndependent(t *testing.T) {
	tbl := NewTable()
	mod := tbl.NewScope(ScopeModule, tbl.Global())

	tbl.Declare(mod, NSOrdinary, Symbol{Kind: SymbolFunction, Name: "Point"})
	if _, ok := tbl.Declare(mod, NSContract, Symbol{Kind: SymbolContract, Name: "Point"}); !ok {
		t.Fatalf("same name in a different namespace must not collide")
	}
}

func TestEffectSet_SubsetAndMissing(t *testing.T) {
	callee := NewEffectSet([]string{"IO", "Net"})
	caller := NewEffectSet([]string{"IO"})

	if callee.IsSubsetOf(caller) {
		t.Fatalf("callee effects are not a subset of caller's")
	}
	missing := callee.Missing(caller)
	if len(missing) != 1 || missing[0] != "Net" {
		t.Fatalf("Missing() = %v, want [Net]", missing)
	}
}
