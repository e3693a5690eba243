package types

import (
	"testing"

	"github.com/covenant-lang/covenant/internal/source"
)

func TestInterner_PrimitivesAreStable(t *testing.T) {
	in := NewInterner()
	if in.Intern(Type{Kind: KindInt}) != in.Builtins().Int {
		t.Fatalf("re-interning Int should return the same TypeID")
	}
	if in.Builtins().Int == in.Builtins().Float64 {
		t.Fatalf("distinct primitives must get distinct TypeIDs")
	}
}

func TestInterner_ArrayDedup(t *testing.T) {
	in := NewInterner()
	a1 := in.Intern(MakeArray(in.Builtins().Int, ArrayDynamicLength))
	a2 := in.Intern(MakeArray(in.Builtins().Int, ArrayDynamicLength))
	if a1 != a2 {
		t.Fatalf("identical array descriptors must intern to the same TypeID")
	}
	a3 := in.Intern(MakeArray(in.Builtins().Int, 4))
	if a3 == a1 {
		t.Fatalf("fixed-size array must differ from dynamic array")
	}
}

func TestInterner_RegisterFnDedup(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	f1 := in.RegisterFn([]TypeID{b.Int, b.Bool}, b.Void, []string{"IO"})
	f2 := in.RegisterFn([]TypeID{b.Int, b.Bool}, b.Void, []string{"IO"})
	if f1 != f2 {
		t.Fatalf("identical function signatures must intern to the same TypeID")
	}
	f3 := in.RegisterFn([]TypeID{b.Int, b.Bool}, b.Void, nil)
	if f3 == f1 {
		t.Fatalf("different effect sets must not dedup together")
	}
}

func TestInterner_StructsAreNominal(t *testing.T) {
	in := NewInterner()
	s1 := in.RegisterStruct("Point", source.Position{})
	s2 := in.RegisterStruct("Point", source.Position{})
	if s1 == s2 {
		t.Fatalf("two struct declarations, even same-named, must get distinct TypeIDs")
	}
}

func TestWiden(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if got := in.Widen(b.Int8, b.Int64); got != b.Int64 {
		t.Fatalf("Widen(Int8, Int64) = %v, want Int64", got)
	}
	if got := in.Widen(b.Int32, b.Float32); got != b.Float32 {
		t.Fatalf("Widen(Int32, Float32) = %v, want Float32 (float always wins)", got)
	}
}

func TestAssignable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	opt := in.Intern(MakeOptional(b.Int))

	cases := []struct {
		from, to TypeID
		want     bool
		name     string
	}{
		{b.Never, b.Bool, true, "Never -> anything"},
		{b.Bool, b.Unknown, true, "anything -> Unknown"},
		{b.Int, opt, true, "T -> T?"},
		{b.Int8, b.Int64, true, "narrow int -> wide int"},
		{b.Int64, b.Int8, false, "wide int -> narrow int"},
		{b.Int32, b.Float64, true, "int -> float"},
		{b.Float64, b.Int32, false, "float -> int"},
	}
	for _, tc := range cases {
		if got := in.Assignable(tc.from, tc.to); got != tc.want {
			t.Errorf("%s: Assignable() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAssignable_ArrayResultOptionWildcardOnUnknown(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	emptyArr := in.Intern(MakeArray(b.Unknown, 0))
	intArr := in.Intern(MakeArray(b.Int, ArrayDynamicLength))
	if !in.Assignable(emptyArr, intArr) {
		t.Fatalf("[]Unknown array literal must be assignable to a concretely typed array")
	}

	okUnknown := in.Intern(MakeResult(b.Int, b.Unknown))
	okConcrete := in.Intern(MakeResult(b.Int, b.String))
	if !in.Assignable(okUnknown, okConcrete) {
		t.Fatalf("Result<Int, Unknown> must be assignable to Result<Int, String>")
	}

	someUnknown := in.Intern(MakeOptional(b.Unknown))
	someConcrete := in.Intern(MakeOptional(b.Int))
	if !in.Assignable(someUnknown, someConcrete) {
		t.Fatalf("Option<Unknown> must be assignable to Option<Int>")
	}
}

func TestAssignable_References(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	refImm := in.Intern(MakeReference(b.Int, false))
	refMut := in.Intern(MakeReference(b.Int, true))

	if !in.Assignable(refMut, refImm) {
		t.Fatalf("&mut T -> &T must be assignable")
	}
	if in.Assignable(refImm, refMut) {
		t.Fatalf("&T -> &mut T must NOT be assignable")
	}
}
