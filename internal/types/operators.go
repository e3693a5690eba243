package types

// bitwidth orders numeric kinds for widening decisions: within a kind, the
// larger bit width wins; Int and UInt are treated as 64 bits for widening.
func bitwidth(k Kind) int {
	switch k {
	case KindInt8:
		return 8
	case KindInt16:
		return 16
	case KindInt32:
		return 32
	case KindInt64, KindInt, KindUInt:
		return 64
	case KindFloat32:
		return 32
	case KindFloat64:
		return 64
	default:
		return 0
	}
}

// Widen returns the wider of two numeric kinds for a binary arithmetic
// result: a float always wins over an integer of any width, and within one
// family the larger bit width wins.
func (in *Interner) Widen(a, b TypeID) TypeID {
	ta, aok := in.Lookup(a)
	tb, bok := in.Lookup(b)
	if !aok || !bok {
		return in.builtins.Unknown
	}
	if ta.Kind.IsFloat() != tb.Kind.IsFloat() {
		if ta.Kind.IsFloat() {
			return a
		}
		return b
	}
	if bitwidth(ta.Kind) >= bitwidth(tb.Kind) {
		return a
	}
	return b
}

// Assignable implements the directed assignability relation:
// Never accepts anywhere, anything flows into Unknown, equal types always
// accept, T flows into T?, &mut T flows into &T (never the reverse), and
// numeric widening is one-directional (never narrowing).
func (in *Interner) Assignable(from, to TypeID) bool {
	if from == to {
		return true
	}
	ft, fok := in.Lookup(from)
	tt, tok := in.Lookup(to)
	if !fok || !tok {
		return false
	}
	if ft.Kind == KindNever {
		return true
	}
	if tt.Kind == KindUnknown {
		return true
	}
	if ft.Kind == KindOptional && tt.Kind == KindOptional {
		return in.compatibleElem(ft.Elem, tt.Elem)
	}
	if tt.Kind == KindOptional {
		if tt.Elem == from {
			return true
		}
		return in.Assignable(from, tt.Elem)
	}
	if ft.Kind == KindArray && tt.Kind == KindArray {
		return in.compatibleElem(ft.Elem, tt.Elem)
	}
	if ft.Kind == KindResult && tt.Kind == KindResult {
		return in.compatibleElem(ft.Elem, tt.Elem) && in.compatibleElem(ft.ErrElem, tt.ErrElem)
	}
	if ft.Kind == KindReference && tt.Kind == KindReference {
		if ft.Elem != tt.Elem {
			return false
		}
		return ft.Mutable || !tt.Mutable
	}
	if ft.Kind.IsInteger() && tt.Kind.IsInteger() {
		return bitwidth(tt.Kind) >= bitwidth(ft.Kind)
	}
	if ft.Kind.IsFloat() && tt.Kind.IsFloat() {
		return bitwidth(tt.Kind) >= bitwidth(ft.Kind)
	}
	if ft.Kind.IsInteger() && tt.Kind.IsFloat() {
		return true
	}
	return false
}

// compatibleElem treats an Unknown element (the empty-literal / untyped-
// constructor case) as a wildcard in either position, before falling back
// to the ordinary directed assignability check.
func (in *Interner) compatibleElem(a, b TypeID) bool {
	if a == b || a == in.builtins.Unknown || b == in.builtins.Unknown {
		return true
	}
	return in.Assignable(a, b)
}

// MutuallyAssignable reports whether either type is assignable into the
// other, the usual rule for `==`/`!=` operand checking.
func (in *Interner) MutuallyAssignable(a, b TypeID) bool {
	return in.Assignable(a, b) || in.Assignable(b, a)
}
