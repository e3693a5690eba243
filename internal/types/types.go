// Package types is the semantic type representation the checker assigns to
// every expression and declaration, kept separate from internal/ast's
// syntactic TypeExpr (the type as written).
package types

import "fmt"

// TypeID uniquely identifies an interned type.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates every shape a Type can take (the Type family
// plus the Unknown/Error sentinels §9 calls for).
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnknown
	KindErrorType // the poisoned type assigned after a diagnostic, to stop cascades
	KindVoid
	KindNever
	KindBool
	KindChar
	KindString
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt
	KindFloat32
	KindFloat64
	KindArray
	KindTuple
	KindFunction
	KindReference
	KindOptional
	KindResult
	KindStruct
	KindEnum
	KindTrait
	KindEffect
	KindCapability
	KindGenericApp
	KindTypeVar
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnknown:
		return "unknown"
	case KindErrorType:
		return "error"
	case KindVoid:
		return "Void"
	case KindNever:
		return "Never"
	case KindBool:
		return "Bool"
	case KindChar:
		return "Char"
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUInt:
		return "UInt"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	case KindReference:
		return "reference"
	case KindOptional:
		return "optional"
	case KindResult:
		return "result"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindTrait:
		return "trait"
	case KindEffect:
		return "effect"
	case KindCapability:
		return "capability"
	case KindGenericApp:
		return "generic-application"
	case KindTypeVar:
		return "type-variable"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsNumeric reports whether k is one of the integer or floating-point kinds.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64, KindUInt, KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether k is one of the integer kinds.
func (k Kind) IsInteger() bool {
	switch k {
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64, KindUInt:
		return true
	default:
		return false
	}
}

// IsFloat reports whether k is one of the floating-point kinds.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// ArrayDynamicLength marks an array type with no fixed compile-time size.
const ArrayDynamicLength = ^uint32(0)

// Type is a compact descriptor for any supported type. Nominal kinds
// (Struct/Enum/Trait/Effect/Capability) and Function/GenericApp store their
// rich metadata out-of-line, indexed by Payload, so Type itself stays a
// small, comparable, internable value.
type Type struct {
	Kind      Kind
	Elem      TypeID // array/reference/optional element, result Ok type
	ErrElem   TypeID // result Err type
	Count     uint32 // array fixed length, ArrayDynamicLength for unsized
	Mutable   bool   // reference only
	Payload   uint32 // slot into the interner's per-kind metadata table
	Bitwidth  uint8  // reserved for future explicit-width primitives
}

// MakeArray describes an array of elem, ArrayDynamicLength for an unsized
// slice-like array.
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakeReference describes &T (mutable=false) or &mut T (mutable=true).
func MakeReference(elem TypeID, mutable bool) Type {
	return Type{Kind: KindReference, Elem: elem, Mutable: mutable}
}

// MakeOptional describes T?.
func MakeOptional(elem TypeID) Type {
	return Type{Kind: KindOptional, Elem: elem}
}

// MakeResult describes Result<ok, err>.
func MakeResult(ok, err TypeID) Type {
	return Type{Kind: KindResult, Elem: ok, ErrElem: err}
}
