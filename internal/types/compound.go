package types

import "slices"

// TupleInfo holds a tuple type's element types in order.
type TupleInfo struct {
	Elements []TypeID
}

// RegisterTuple returns the TypeID for a tuple of the given element types,
// deduplicating by structural equality via linear scan (see RegisterFn).
func (in *Interner) RegisterTuple(elements []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		t := in.types[id]
		if t.Kind != KindTuple || int(t.Payload) >= len(in.tuples) {
			continue
		}
		if slices.Equal(in.tuples[t.Payload].Elements, elements) {
			return id
		}
	}
	slot := appendInfo(&in.tuples, TupleInfo{Elements: slices.Clone(elements)})
	return in.internRaw(Type{Kind: KindTuple, Payload: slot})
}

// TupleInfo returns metadata for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTuple || int(t.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[t.Payload], true
}

// GenericAppInfo holds a generic application's base (a struct/enum/trait
// TypeID) and its type arguments, e.g. `Stack<Int>` for a declared generic
// struct Stack is {Base: Stack, Args: [Int]}.
type GenericAppInfo struct {
	Base TypeID
	Args []TypeID
}

// RegisterGenericApp returns the TypeID for base<args...>, deduplicating by
// structural equality via linear scan.
func (in *Interner) RegisterGenericApp(base TypeID, args []TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		t := in.types[id]
		if t.Kind != KindGenericApp || int(t.Payload) >= len(in.genericApps) {
			continue
		}
		info := in.genericApps[t.Payload]
		if info.Base == base && slices.Equal(info.Args, args) {
			return id
		}
	}
	slot := appendInfo(&in.genericApps, GenericAppInfo{Base: base, Args: slices.Clone(args)})
	return in.internRaw(Type{Kind: KindGenericApp, Payload: slot})
}

// GenericAppInfo returns metadata for a generic-application TypeID.
func (in *Interner) GenericAppInfo(id TypeID) (*GenericAppInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindGenericApp || int(t.Payload) >= len(in.genericApps) {
		return nil, false
	}
	return &in.genericApps[t.Payload], true
}

// TypeVarInfo names a generic type parameter (e.g. the `T` in `<T: Eq>`)
// together with its trait bounds.
type TypeVarInfo struct {
	Name   string
	Bounds []TypeID
}

// RegisterTypeVar allocates a fresh type-variable slot; type variables are
// nominal to their binding site, so no two are ever deduplicated together
// even when same-named (shadowing across nested generic scopes is legal).
func (in *Interner) RegisterTypeVar(name string, bounds []TypeID) TypeID {
	slot := appendInfo(&in.typeVars, TypeVarInfo{Name: name, Bounds: slices.Clone(bounds)})
	return in.internRaw(Type{Kind: KindTypeVar, Payload: slot})
}

// TypeVarInfo returns metadata for a type-variable TypeID.
func (in *Interner) TypeVarInfo(id TypeID) (*TypeVarInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTypeVar || int(t.Payload) >= len(in.typeVars) {
		return nil, false
	}
	return &in.typeVars[t.Payload], true
}
