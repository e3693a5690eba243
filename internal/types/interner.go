package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins holds TypeIDs for every primitive, resolved once at interner
// construction so callers never re-intern them.
type Builtins struct {
	Unknown TypeID
	Error   TypeID
	Void    TypeID
	Never   TypeID
	Bool    TypeID
	Char    TypeID
	String  TypeID
	Int     TypeID
	Int8    TypeID
	Int16   TypeID
	Int32   TypeID
	Int64   TypeID
	UInt    TypeID
	Float32 TypeID
	Float64 TypeID
}

// Interner assigns stable TypeIDs to type descriptors, structurally
// deduplicating simple shapes (primitives, array/reference/optional/result)
// and nominally registering declared shapes (struct/enum/trait/effect/
// capability) one slot per declaration.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins

	structs      []StructInfo
	enums        []EnumInfo
	traits       []TraitInfo
	effects      []EffectInfo
	capabilities []CapabilityInfo
	fns          []FnInfo
	tuples       []TupleInfo
	genericApps  []GenericAppInfo
	typeVars     []TypeVarInfo
}

// NewInterner builds an Interner pre-seeded with every primitive.
func NewInterner() *Interner {
	in := &Interner{index: make(map[Type]TypeID, 64)}
	in.structs = append(in.structs, StructInfo{})
	in.enums = append(in.enums, EnumInfo{})
	in.traits = append(in.traits, TraitInfo{})
	in.effects = append(in.effects, EffectInfo{})
	in.capabilities = append(in.capabilities, CapabilityInfo{})
	in.fns = append(in.fns, FnInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.genericApps = append(in.genericApps, GenericAppInfo{})
	in.typeVars = append(in.typeVars, TypeVarInfo{})

	in.types = append(in.types, Type{}) // slot 0 is NoTypeID
	in.builtins.Unknown = in.internRaw(Type{Kind: KindUnknown})
	in.builtins.Error = in.Intern(Type{Kind: KindErrorType})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Never = in.Intern(Type{Kind: KindNever})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Int8 = in.Intern(Type{Kind: KindInt8})
	in.builtins.Int16 = in.Intern(Type{Kind: KindInt16})
	in.builtins.Int32 = in.Intern(Type{Kind: KindInt32})
	in.builtins.Int64 = in.Intern(Type{Kind: KindInt64})
	in.builtins.UInt = in.Intern(Type{Kind: KindUInt})
	in.builtins.Float32 = in.Intern(Type{Kind: KindFloat32})
	in.builtins.Float64 = in.Intern(Type{Kind: KindFloat64})
	return in
}

// Builtins returns the primitive TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern returns the stable TypeID for a structurally simple descriptor
// (primitive, array, reference, optional, result). Nominal and variadic
// shapes (struct/enum/trait/effect/capability/function/tuple/generic-app)
// go through their own Register* constructors instead.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics if id is invalid; used where the caller has already
// validated id (e.g. a type assigned by the checker itself).
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}
