package symbols

import "github.com/covenant-lang/covenant/internal/ast"

// Table owns every scope and symbol allocated while resolving one
// compilation, built from the global scope down as the checker walks each
// file's declarations.
type Table struct {
	scopes  *ast.Arena[Scope]
	symbols *ast.Arena[Symbol]
	global  ScopeID
}

// NewTable allocates a Table with one pre-created global scope.
func NewTable() *Table {
	t := &Table{
		scopes:  ast.NewArena[Scope](1 << 5),
		symbols: ast.NewArena[Symbol](1 << 7),
	}
	t.global = ScopeID(t.scopes.Allocate(newScope(ScopeGlobal, NoScopeID)))
	return t
}

// Global returns the root scope every module scope nests under.
func (t *Table) Global() ScopeID { return t.global }

// NewScope allocates a child scope of parent and links it into the parent's
// Children list.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID) ScopeID {
	id := ScopeID(t.scopes.Allocate(newScope(kind, parent)))
	if p := t.scopes.Get(uint32(parent)); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

func (t *Table) scope(id ScopeID) *Scope { return t.scopes.Get(uint32(id)) }

// Symbol returns the symbol record for id.
func (t *Table) Symbol(id SymbolID) *Symbol { return t.symbols.Get(uint32(id)) }

// Declare binds name in ns within scope to sym, returning the new symbol's
// ID. Shadowing a name already declared in an *enclosing* scope is fine;
// redeclaring the same name in the same namespace of the *same* scope is
// the only case that fails, per the shadowing rule.
func (t *Table) Declare(scope ScopeID, ns Namespace, sym Symbol) (SymbolID, bool) {
	s := t.scope(scope)
	if s == nil {
		return NoSymbolID, false
	}
	if _, exists := s.names[ns][sym.Name]; exists {
		return NoSymbolID, false
	}
	id := SymbolID(t.symbols.Allocate(sym))
	s.names[ns][sym.Name] = id
	return id, true
}

// Lookup searches scope and its ancestors, innermost first, for name in ns.
func (t *Table) Lookup(scope ScopeID, ns Namespace, name string) (SymbolID, bool) {
	for cur := scope; cur.IsValid(); {
		s := t.scope(cur)
		if s == nil {
			break
		}
		if id, ok := s.names[ns][name]; ok {
			return id, true
		}
		cur = s.Parent
	}
	return NoSymbolID, false
}

// LookupLocal searches only scope itself, not its ancestors (the same-scope
// check Declare applies before binding a name).
func (t *Table) LookupLocal(scope ScopeID, ns Namespace, name string) (SymbolID, bool) {
	s := t.scope(scope)
	if s == nil {
		return NoSymbolID, false
	}
	id, ok := s.names[ns][name]
	return id, ok
}

// ScopeKind returns the kind of scope, or ScopeInvalid if id is stale.
func (t *Table) ScopeKind(id ScopeID) ScopeKind {
	s := t.scope(id)
	if s == nil {
		return ScopeInvalid
	}
	return s.Kind
}

// ScopeParent returns scope's enclosing scope.
func (t *Table) ScopeParent(id ScopeID) ScopeID {
	s := t.scope(id)
	if s == nil {
		return NoScopeID
	}
	return s.Parent
}
