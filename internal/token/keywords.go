package token

// keywords maps every reserved word (including reserved type names) to its
// Kind. Identifiers not present here lex as Ident.
var keywords = map[string]Kind{
	"fn":         KwFn,
	"let":        KwLet,
	"mut":        KwMut,
	"type":       KwType,
	"struct":     KwStruct,
	"enum":       KwEnum,
	"trait":      KwTrait,
	"impl":       KwImpl,
	"contract":   KwContract,
	"intent":     KwIntent,
	"effect":     KwEffect,
	"capability": KwCapability,
	"requires":   KwRequires,
	"ensures":    KwEnsures,
	"invariant":  KwInvariant,
	"if":         KwIf,
	"else":       KwElse,
	"match":      KwMatch,
	"for":        KwFor,
	"while":      KwWhile,
	"return":     KwReturn,
	"import":     KwImport,
	"export":     KwExport,
	"where":      KwWhere,
	"pure":       KwPure,
	"extern":     KwExtern,
	"self":       KwSelf,
	"Self":       KwSelfType,
	"old":        KwOld,
	"forall":     KwForall,
	"exists":     KwExists,
	"in":         KwIn,
	"as":         KwAs,

	"true":  KwTrue,
	"false": KwFalse,
	"nil":   KwNilWord,

	"Int":     KwInt,
	"Int8":    KwInt8,
	"Int16":   KwInt16,
	"Int32":   KwInt32,
	"Int64":   KwInt64,
	"UInt":    KwUInt,
	"Float32": KwFloat32,
	"Float64": KwFloat64,
	"Bool":    KwBool,
	"Char":    KwChar,
	"String":  KwString,
	"Void":    KwVoid,
	"Never":   KwNever,
	"Result":  KwResult,
	"Option":  KwOption,
}

// KwTrue, KwFalse and KwNilWord are not independent token kinds: the lexer
// classifies them directly as BoolLit/BoolLit/NilLit with their literal
// value pre-set, so the keyword table maps them to sentinel
// pseudo-kinds consumed only inside the lexer.
const (
	KwTrue    Kind = 250
	KwFalse   Kind = 251
	KwNilWord Kind = 252
)

// LookupKeyword reports whether ident is a reserved word and, if so, its
// Kind (as classified above; the lexer rewrites KwTrue/KwFalse/KwNilWord to
// BoolLit/NilLit before emitting the token).
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
