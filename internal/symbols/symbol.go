package symbols

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/types"
)

// SymbolKind classifies what a name in the ordinary/type/contract/intent
// namespace actually denotes.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolVariable
	SymbolParam
	SymbolType
	SymbolStruct
	SymbolEnum
	SymbolTrait
	SymbolEffect
	SymbolCapability
	SymbolContract
	SymbolIntent
	SymbolModule
	SymbolImport
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolVariable:
		return "variable"
	case SymbolParam:
		return "parameter"
	case SymbolType:
		return "type alias"
	case SymbolStruct:
		return "struct"
	case SymbolEnum:
		return "enum"
	case SymbolTrait:
		return "trait"
	case SymbolEffect:
		return "effect"
	case SymbolCapability:
		return "capability"
	case SymbolContract:
		return "contract"
	case SymbolIntent:
		return "intent"
	case SymbolModule:
		return "module"
	case SymbolImport:
		return "import"
	default:
		return "invalid"
	}
}

// Symbol is one declared name, in whichever of the four namespaces it was
// declared into.
type Symbol struct {
	Kind    SymbolKind
	Name    string
	Type    types.TypeID // NoTypeID until the checker resolves it
	Mutable bool
	Pos     source.Position
	Decl    ast.DeclID
}
