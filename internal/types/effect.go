package types

import "github.com/covenant-lang/covenant/internal/source"

// EffectInfo holds metadata for a registered effect type. Effects name a
// capability for side effects (e.g. `effect IO { fn read() -> String; }`); the
// checker enforces that a function's declared effect set is a superset of
// every effect used transitively in its body (the effect discipline).
type EffectInfo struct {
	Name string
	Pos  source.Position
	Ops  []FnSignature
}

// RegisterEffect allocates a fresh effect type slot.
func (in *Interner) RegisterEffect(name string, pos source.Position) TypeID {
	slot := appendInfo(&in.effects, EffectInfo{Name: name, Pos: pos})
	return in.internRaw(Type{Kind: KindEffect, Payload: slot})
}

// SetEffectOps fills in an effect's operation signatures.
func (in *Interner) SetEffectOps(id TypeID, ops []FnSignature) {
	if info := in.effectInfo(id); info != nil {
		info.Ops = append([]FnSignature(nil), ops...)
	}
}

// EffectInfo returns metadata for an effect TypeID.
func (in *Interner) EffectInfo(id TypeID) (*EffectInfo, bool) {
	info := in.effectInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) effectInfo(id TypeID) *EffectInfo {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEffect || t.Payload == 0 || int(t.Payload) >= len(in.effects) {
		return nil
	}
	return &in.effects[t.Payload]
}

// CapabilityInfo holds metadata for a registered capability type.
// Capabilities are resolved by name only; the checker never enforces that a
// capability is actually held at a call site (the capability
// discipline is name resolution, not an access-control proof).
type CapabilityInfo struct {
	Name        string
	Pos         source.Position
	Permissions []CapabilityPermission
}

// CapabilityPermission is one named, typed grant a capability exposes.
type CapabilityPermission struct {
	Name string
	Type TypeID
}

// RegisterCapability allocates a fresh capability type slot.
func (in *Interner) RegisterCapability(name string, pos source.Position) TypeID {
	slot := appendInfo(&in.capabilities, CapabilityInfo{Name: name, Pos: pos})
	return in.internRaw(Type{Kind: KindCapability, Payload: slot})
}

// SetCapabilityPermissions fills in a capability's permission list.
func (in *Interner) SetCapabilityPermissions(id TypeID, perms []CapabilityPermission) {
	if info := in.capabilityInfo(id); info != nil {
		info.Permissions = append([]CapabilityPermission(nil), perms...)
	}
}

// CapabilityInfo returns metadata for a capability TypeID.
func (in *Interner) CapabilityInfo(id TypeID) (*CapabilityInfo, bool) {
	info := in.capabilityInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) capabilityInfo(id TypeID) *CapabilityInfo {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindCapability || t.Payload == 0 || int(t.Payload) >= len(in.capabilities) {
		return nil
	}
	return &in.capabilities[t.Payload]
}
