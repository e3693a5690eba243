package symbols

// ScopeKind enumerates the lexical contexts a scope can represent.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeGlobal
	ScopeModule
	ScopeFunction
	ScopeBlock
	ScopeLoop
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	default:
		return "invalid"
	}
}

// Namespace picks which of a scope's four independent name maps a lookup
// or declaration targets. A name may be declared into more than one
// namespace at once without colliding (e.g. a struct named `Point` and a
// contract named `Point` coexist).
type Namespace uint8

const (
	NSOrdinary Namespace = iota // functions, variables, params, structs/enums/traits/effects/capabilities used as values or callees
	NSType                      // type aliases and nominal types looked up in type position
	NSContract                  // contract declarations
	NSIntent                    // intent declarations
)

// Scope is one lexical block's symbol table: a parent link for outward
// lookup plus one name map per Namespace.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeID
	Children []ScopeID
	names    [4]map[string]SymbolID
}

func newScope(kind ScopeKind, parent ScopeID) Scope {
	s := Scope{Kind: kind, Parent: parent}
	for i := range s.names {
		s.names[i] = make(map[string]SymbolID)
	}
	return s
}
