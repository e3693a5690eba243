package types

import "slices"

// FnInfo holds metadata for a function type: its parameter types, result
// type, and declared effect set (the effect annotations attach to
// the declaration, but the type itself must carry the effect set too so
// that higher-order call sites — a function passed as a value — can still
// be checked against it).
type FnInfo struct {
	Params  []TypeID
	Result  TypeID
	Effects []string
}

// RegisterFn returns the TypeID for a function type, deduplicating by
// structural equality (params/result/effects) via linear scan: slices
// cannot serve as a plain Go map key the way Intern's fixed-field Type can.
func (in *Interner) RegisterFn(params []TypeID, result TypeID, effects []string) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		t := in.types[id]
		if t.Kind != KindFunction || int(t.Payload) >= len(in.fns) {
			continue
		}
		info := in.fns[t.Payload]
		if info.Result == result && slices.Equal(info.Params, params) && slices.Equal(info.Effects, effects) {
			return id
		}
	}
	slot := appendInfo(&in.fns, FnInfo{
		Params:  slices.Clone(params),
		Result:  result,
		Effects: slices.Clone(effects),
	})
	return in.internRaw(Type{Kind: KindFunction, Payload: slot})
}

// FnInfo returns metadata for a function TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunction || int(t.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[t.Payload], true
}
