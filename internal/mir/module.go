// Package mir holds the typed representation the pipeline produces:
// top-level definitions whose signatures and bodies carry fully resolved
// types.TypeID values. A mir.Definition's body is the same HIR expression
// arena its Desugarer-produced ancestor used — the inferencer mutates a
// hir.Expr's Type field in place rather than rebuilding the tree, so MIR
// is "annotated HIR" reached through a DefinitionInfo once resolution
// completes, plus the definition-level signature spec §6 calls for.
package mir

import (
	"glint/internal/arena"
	"glint/internal/hir"
	"glint/internal/source"
	"glint/internal/types"
)

// DefinitionKind mirrors hir.DefinitionKind; reused unchanged, since
// resolution never changes what kind of declaration something is.
type DefinitionKind = hir.DefinitionKind

const (
	DefFunction       = hir.DefFunction
	DefStruct         = hir.DefStruct
	DefEnum           = hir.DefEnum
	DefAlias          = hir.DefAlias
	DefTypeclass      = hir.DefTypeclass
	DefImplementation = hir.DefImplementation
	DefInstantiation  = hir.DefInstantiation
)

// Definition is a fully resolved top-level declaration. Type is the
// definition's own toplevel type: a function type for DefFunction, the
// structure/enumeration TypeID for DefStruct/DefEnum, the aliased TypeID
// for DefAlias; zero (types.NoTypeID) for typeclasses, implementations,
// and instantiations, which do not denote a single value's type.
type Definition struct {
	Kind DefinitionKind
	Name hir.Name
	Span source.Span
	Type types.TypeID
	Data DefinitionData
}

// DefinitionData is the closed set of per-kind resolved payloads.
type DefinitionData interface {
	definitionData()
}

// Param is a function parameter after both desugaring (implicit type
// synthesis) and type resolution (the annotation lowered to a TypeID).
type Param struct {
	Name hir.Name
	Type types.TypeID
}

// FunctionData describes a resolved function: its parameter types, return
// type, and a handle into the HIR expression arena for its body. Template
// parameters (explicit and implicit) are not repeated here — Type already
// reflects the parameterized-or-specialized function type, and
// internal/mono's Subst is what instantiates a parameterized Definition
// at a call site.
type FunctionData struct {
	Params     []Param
	ReturnType types.TypeID
	Body       arena.Handle[hir.Expr]
}

func (FunctionData) definitionData() {}

// StructField is one resolved struct field.
type StructField struct {
	Name hir.Name
	Type types.TypeID
}

// StructData describes a resolved struct. Fields is kept alongside the
// types.StructureInfo the struct's Type (a types.TypeID of Kind
// Structure) already owns, for convenient iteration without going back
// through the type interner.
type StructData struct {
	Fields []StructField
}

func (StructData) definitionData() {}

// EnumVariant is one resolved enum constructor.
type EnumVariant struct {
	Name        hir.Name
	PayloadType types.TypeID // types.NoTypeID: unit variant
}

type EnumData struct {
	Variants []EnumVariant
}

func (EnumData) definitionData() {}

// AliasData describes a resolved `alias Name = Type`; Definition.Type
// already carries Aliased, this payload exists for symmetry and so a
// consumer need not special-case aliases to find their target.
type AliasData struct {
	Aliased types.TypeID
}

func (AliasData) definitionData() {}

// TypeclassMethod is one resolved method signature a typeclass requires.
type TypeclassMethod struct {
	Name       hir.Name
	Params     []Param
	ReturnType types.TypeID
}

type TypeclassData struct {
	Methods []TypeclassMethod
}

func (TypeclassData) definitionData() {}

// There is no ImplementationData/InstantiationData payload: the
// namespace builder already flattens an `impl`/instance block's member
// functions into its target's associated namespace as ordinary function
// definitions (internal/namespace's Register discards the block-level
// declaration once its members are attached), so nothing ever needs to
// reconstruct the block itself here — each member surfaces as its own
// DefFunction Definition, same as any other method.

// Module is the core's external output (spec §6): every top-level
// definition, resolved, plus the arenas owning the HIR expression and
// pattern nodes its bodies still reference.
type Module struct {
	Name        string
	Definitions []Definition
	SourceFile  source.FileID

	Exprs    *arena.Arena[hir.Expr]
	Patterns *arena.Arena[hir.Pattern]
}
