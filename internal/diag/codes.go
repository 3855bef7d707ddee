package diag

import "fmt"

// Code identifies the specific diagnostic rule that fired. The numbering
// bands follow the taxonomy of spec §7.
type Code uint16

const (
	CodeUnknown Code = 0

	// Structural (2xxx)
	CodeDuplicateDefinition Code = 2001
	CodeNamespaceTemplate   Code = 2002
	CodeArityMismatch       Code = 2003
	CodeCaseMismatch        Code = 2004
	CodeForNotImplemented   Code = 2005

	// Resolution (3xxx)
	CodeNoSuchName          Code = 3001
	CodeNoSuchQualifier     Code = 3002
	CodeNoAssociatedSpace   Code = 3003
	CodeCyclicDefinition    Code = 3004
	CodeQualifierNotTemplate Code = 3005

	// Type (4xxx)
	CodeCannotUnify        Code = 4001
	CodeAmbiguousInstance  Code = 4002
	CodeNoMatchingInstance Code = 4003
	CodeNonBooleanCond     Code = 4004
	CodeNonUnitLoopBody    Code = 4005

	// Semantic warnings (5xxx)
	CodeUnusedBinding    Code = 5001
	CodeShadowedUnused   Code = 5002
	CodeLiteralTrueCond  Code = 5003
	CodeLiteralFalseCond Code = 5004
	CodePreferLoop       Code = 5005

	// Internal (9xxx)
	CodeInvariantViolation Code = 9001
)

var codeTitle = map[Code]string{
	CodeUnknown:              "unknown diagnostic",
	CodeDuplicateDefinition:  "duplicate definition",
	CodeNamespaceTemplate:    "namespace templates are not supported",
	CodeArityMismatch:        "arity mismatch",
	CodeCaseMismatch:         "identifier case does not match expected category",
	CodeForNotImplemented:    "'for' loop lowering is reserved",
	CodeNoSuchName:           "no such name",
	CodeNoSuchQualifier:      "no such qualifier",
	CodeNoAssociatedSpace:    "type has no associated namespace",
	CodeCyclicDefinition:     "cyclic definition",
	CodeQualifierNotTemplate: "qualifier does not name a type-template",
	CodeCannotUnify:          "cannot unify types",
	CodeAmbiguousInstance:    "ambiguous typeclass instance",
	CodeNoMatchingInstance:   "no matching typeclass instance",
	CodeNonBooleanCond:       "condition is not boolean",
	CodeNonUnitLoopBody:      "loop body is not unit",
	CodeUnusedBinding:        "unused local binding",
	CodeShadowedUnused:       "shadows an unused local binding",
	CodeLiteralTrueCond:      "condition is always true",
	CodeLiteralFalseCond:     "condition is always false",
	CodePreferLoop:           "consider using 'loop' instead of 'while true'",
	CodeInvariantViolation:   "internal invariant violation",
}

// Category classifies the code into the taxonomy of spec §7.
func (c Code) Category() Category {
	switch {
	case c >= 2000 && c < 3000:
		return CategoryStructural
	case c >= 3000 && c < 4000:
		return CategoryResolution
	case c >= 4000 && c < 5000:
		return CategoryType
	case c >= 5000 && c < 6000:
		return CategoryWarning
	default:
		return CategoryInternal
	}
}

// Title returns the short human-readable description of the code.
func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return codeTitle[CodeUnknown]
}

func (c Code) String() string { return fmt.Sprintf("E%04d: %s", uint16(c), c.Title()) }
