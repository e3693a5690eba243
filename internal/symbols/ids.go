// Package symbols implements the scope chain and symbol table the
// resolver/checker (internal/sema) builds while walking a tree: one scope
// per lexical block, four independent name maps per scope (ordinary
// bindings, types, contracts, intents), plus the ambient effect-set and
// capability-map the checker threads alongside it.
package symbols

// ScopeID refers to a Scope. Zero is the "no scope" sentinel.
type ScopeID uint32

// NoScopeID marks the absence of a scope (the global scope's Parent).
const NoScopeID ScopeID = 0

// IsValid reports whether id refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// SymbolID refers to a Symbol. Zero is the "not found" sentinel.
type SymbolID uint32

// NoSymbolID marks lookup failure or an unresolved reference.
const NoSymbolID SymbolID = 0

// IsValid reports whether id refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
