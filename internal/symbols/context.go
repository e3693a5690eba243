package symbols

// EffectSet is an immutable set of effect names, threaded explicitly
// through the checker rather than kept as hidden global state (the
// effect discipline: a function may only transitively invoke effectful
// functions whose declared effects are a subset of its own).
type EffectSet struct {
	names map[string]bool
}

// NewEffectSet builds an EffectSet from a declared effect-annotation list.
func NewEffectSet(names []string) EffectSet {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return EffectSet{names: set}
}

// Has reports whether name is a member.
func (e EffectSet) Has(name string) bool { return e.names[name] }

// IsSubsetOf reports whether every member of e is also a member of other —
// the exact check a call site's callee effect set must satisfy against the
// caller's active set.
func (e EffectSet) IsSubsetOf(other EffectSet) bool {
	for name := range e.names {
		if !other.names[name] {
			return false
		}
	}
	return true
}

// Missing returns the members of e absent from other, for diagnostic text
// naming the specific missing effect(s).
func (e EffectSet) Missing(other EffectSet) []string {
	var missing []string
	for name := range e.names {
		if !other.names[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// CapabilityMap records the capability names a function declared, resolved
// to the capability symbol they name. scopes capability checking to
// name resolution only: the map exists so a reference like `fs.Read` can be
// validated against a known capability, never to gate a call at runtime.
type CapabilityMap struct {
	byName map[string]SymbolID
}

// NewCapabilityMap builds a CapabilityMap from a capability-spec
// annotation's resolved symbols.
func NewCapabilityMap(entries map[string]SymbolID) CapabilityMap {
	byName := make(map[string]SymbolID, len(entries))
	for k, v := range entries {
		byName[k] = v
	}
	return CapabilityMap{byName: byName}
}

// Resolve looks up a capability name, reporting whether it was declared.
func (c CapabilityMap) Resolve(name string) (SymbolID, bool) {
	id, ok := c.byName[name]
	return id, ok
}
