package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/covenant-lang/covenant/internal/source"
)

// StructField describes one field of a nominal struct type.
type StructField struct {
	Name string
	Type TypeID
}

// StructInfo holds metadata for a registered struct type.
type StructInfo struct {
	Name   string
	Pos    source.Position
	Fields []StructField
}

// RegisterStruct allocates a fresh struct type slot; struct types are
// nominal, so each declaration gets its own TypeID even if the field sets
// happen to coincide.
func (in *Interner) RegisterStruct(name string, pos source.Position) TypeID {
	slot := appendInfo(&in.structs, StructInfo{Name: name, Pos: pos})
	return in.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// SetStructFields fills in the field list once the checker has resolved it.
func (in *Interner) SetStructFields(id TypeID, fields []StructField) {
	if info := in.structInfo(id); info != nil {
		info.Fields = slices.Clone(fields)
	}
}

// StructInfo returns metadata for a struct TypeID.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	info := in.structInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) structInfo(id TypeID) *StructInfo {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindStruct || t.Payload == 0 || int(t.Payload) >= len(in.structs) {
		return nil
	}
	return &in.structs[t.Payload]
}

// EnumVariant describes one case of a registered enum type.
type EnumVariant struct {
	Name   string
	Fields []TypeID // positional field types, empty for a unit variant
}

// EnumInfo holds metadata for a registered enum type.
type EnumInfo struct {
	Name     string
	Pos      source.Position
	Variants []EnumVariant
}

// RegisterEnum allocates a fresh enum type slot.
func (in *Interner) RegisterEnum(name string, pos source.Position) TypeID {
	slot := appendInfo(&in.enums, EnumInfo{Name: name, Pos: pos})
	return in.internRaw(Type{Kind: KindEnum, Payload: slot})
}

// SetEnumVariants fills in the variant list.
func (in *Interner) SetEnumVariants(id TypeID, variants []EnumVariant) {
	if info := in.enumInfo(id); info != nil {
		info.Variants = slices.Clone(variants)
	}
}

// EnumInfo returns metadata for an enum TypeID.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	info := in.enumInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) enumInfo(id TypeID) *EnumInfo {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEnum || t.Payload == 0 || int(t.Payload) >= len(in.enums) {
		return nil
	}
	return &in.enums[t.Payload]
}

// TraitInfo holds metadata for a registered trait type.
type TraitInfo struct {
	Name        string
	Pos         source.Position
	SuperTraits []TypeID
	Methods     []FnSignature
}

// FnSignature names a trait method's shape without binding it to a body.
type FnSignature struct {
	Name    string
	Params  []TypeID
	Result  TypeID
	Effects []string
}

// RegisterTrait allocates a fresh trait type slot.
func (in *Interner) RegisterTrait(name string, pos source.Position) TypeID {
	slot := appendInfo(&in.traits, TraitInfo{Name: name, Pos: pos})
	return in.internRaw(Type{Kind: KindTrait, Payload: slot})
}

// SetTraitBody fills in a trait's super-traits and method signatures.
func (in *Interner) SetTraitBody(id TypeID, superTraits []TypeID, methods []FnSignature) {
	info := in.traitInfo(id)
	if info == nil {
		return
	}
	info.SuperTraits = slices.Clone(superTraits)
	info.Methods = slices.Clone(methods)
}

// TraitInfo returns metadata for a trait TypeID.
func (in *Interner) TraitInfo(id TypeID) (*TraitInfo, bool) {
	info := in.traitInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) traitInfo(id TypeID) *TraitInfo {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTrait || t.Payload == 0 || int(t.Payload) >= len(in.traits) {
		return nil
	}
	return &in.traits[t.Payload]
}

func appendInfo[T any](slice *[]T, info T) uint32 {
	*slice = append(*slice, info)
	slot, err := safecast.Conv[uint32](len(*slice) - 1)
	if err != nil {
		panic(fmt.Errorf("types: metadata table overflow: %w", err))
	}
	return slot
}
