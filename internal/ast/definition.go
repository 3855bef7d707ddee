package ast

import (
	"glint/internal/arena"
	"glint/internal/source"
)

// DefinitionKind tags the top-level declaration variants.
type DefinitionKind uint8

const (
	DefFunction DefinitionKind = iota
	DefStruct
	DefEnum
	DefAlias
	DefTypeclass
	DefImplementation
	DefInstantiation
)

// TemplateParam is one explicit generic parameter, e.g. the `T` in
// `fn identity<T>(x: T) -> T`.
type TemplateParam struct {
	Name Name
	Span source.Span
}

// Param is one explicit function parameter. An omitted TypeAnnotation
// means the desugarer must synthesize a fresh implicit type parameter for
// it (see hir.Desugarer).
type Param struct {
	Name           Name
	TypeAnnotation *TypeExpr
	Span           source.Span
}

// Definition is a top-level declaration.
type Definition struct {
	Kind DefinitionKind
	Name Name
	Span source.Span
	Data DefinitionData
}

// DefinitionData is the closed set of per-kind declaration payloads.
type DefinitionData interface {
	definitionData()
}

// FunctionData describes `fn name<templateParams>(params) -> ReturnType {
// Body }`.
type FunctionData struct {
	TemplateParams []TemplateParam
	Params         []Param
	ReturnType     *TypeExpr
	Body           arena.Handle[Expr]
}

func (FunctionData) definitionData() {}

// StructField is one field of a struct declaration.
type StructField struct {
	Name Name
	Type TypeExpr
	Span source.Span
}

// StructData describes `struct Name<templateParams> { fields }`.
type StructData struct {
	TemplateParams []TemplateParam
	Fields         []StructField
}

func (StructData) definitionData() {}

// EnumVariant is one constructor of an enum declaration. PayloadType is
// nil for a unit (no-payload) variant.
type EnumVariant struct {
	Name        Name
	PayloadType *TypeExpr
	Span        source.Span
}

// EnumData describes `enum Name<templateParams> { variants }`.
type EnumData struct {
	TemplateParams []TemplateParam
	Variants       []EnumVariant
}

func (EnumData) definitionData() {}

// AliasData describes `alias Name<templateParams> = Aliased`.
type AliasData struct {
	TemplateParams []TemplateParam
	Aliased        TypeExpr
}

func (AliasData) definitionData() {}

// TypeclassMethod is one method signature required by a typeclass.
type TypeclassMethod struct {
	Name       Name
	Params     []Param
	ReturnType *TypeExpr
	Span       source.Span
}

// TypeclassData describes `typeclass Name<Self> { method signatures }`.
type TypeclassData struct {
	SelfParam TemplateParam
	Methods   []TypeclassMethod
}

func (TypeclassData) definitionData() {}

// ImplementationData describes `impl Target { member functions }`,
// attaching member functions to Target's associated namespace.
type ImplementationData struct {
	Target  TypeExpr
	Members []Definition // each a DefFunction
}

func (ImplementationData) definitionData() {}

// InstantiationData describes `instance Typeclass for Target { member
// functions }`, attaching its member functions to a typeclass-specific
// subspace of Target's associated namespace.
type InstantiationData struct {
	Typeclass QualifiedName
	Target    TypeExpr
	Members   []Definition // each a DefFunction
}

func (InstantiationData) definitionData() {}

// Import is a surface `import` declaration. The core treats imports as
// opaque path information; resolving them into namespace contents is an
// external collaborator's concern (module loading is out of scope).
type Import struct {
	Path []Name
	Span source.Span
}

// Module is the parsed surface tree the pipeline consumes: definitions,
// imports, and the arenas owning every recursive node reachable from
// them.
type Module struct {
	Name        string
	Definitions []Definition
	Imports     []Import
	SourceFile  source.FileID

	Exprs    *arena.Arena[Expr]
	Patterns *arena.Arena[Pattern]
}

// NewModule allocates the arenas backing a fresh module.
func NewModule(name string, file source.FileID) *Module {
	return &Module{
		Name:       name,
		SourceFile: file,
		Exprs:      arena.New[Expr](),
		Patterns:   arena.New[Pattern](),
	}
}
