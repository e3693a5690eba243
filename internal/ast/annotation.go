package ast

import "github.com/covenant-lang/covenant/internal/source"

// AnnotationKind tags which fields of Annotation are meaningful.
type AnnotationKind uint8

const (
	AnnInvalid AnnotationKind = iota
	AnnRequires
	AnnEnsures
	AnnInvariant
	AnnEffectSet
	AnnCapabilitySpec
	AnnContractRef
	AnnIntentRef
	AnnVerifyLevel
)

// Annotation is one `@name(...)` attached to a declaration (the
// Annotation family). Requires/ensures/invariant carry a boolean-typed
// condition expression; effect-set and capability-spec name the effects or
// capability a function declares; contract-ref/intent-ref attach a named
// contract or intent (optionally generic) to a declaration; verify-level
// picks how aggressively the checker and lowerer enforce a contract.
type Annotation struct {
	Kind AnnotationKind
	Pos  source.Position

	// Requires / Ensures / Invariant
	Expr ExprID

	// EffectSet
	Effects []string

	// CapabilitySpec
	CapabilityName   string
	CapabilityFields []FieldInit

	// ContractRef / IntentRef
	RefName  string
	TypeArgs []TypeID

	// VerifyLevel: "full" | "runtime" | "trusted"
	VerifyLevel string
}
