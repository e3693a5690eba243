package token

import "testing"

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"fn":        KwFn,
		"let":       KwLet,
		"requires":  KwRequires,
		"ensures":   KwEnsures,
		"invariant": KwInvariant,
		"forall":    KwForall,
		"exists":    KwExists,
		"old":       KwOld,
		"Self":      KwSelfType,
		"Int":       KwInt,
		"Result":    KwResult,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v, true", lexeme, got, ok, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{"Fn", "LET", "identifier", "result", "self_", "int"}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = true, want false", s)
		}
	}
}

func TestKind_IsReservedTypeName(t *testing.T) {
	if !KwBool.IsReservedTypeName() {
		t.Fatalf("KwBool should be a reserved type name")
	}
	if KwIf.IsReservedTypeName() {
		t.Fatalf("KwIf should not be a reserved type name")
	}
}
