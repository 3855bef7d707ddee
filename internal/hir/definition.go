package hir

import (
	"glint/internal/arena"
	"glint/internal/source"
)

// DefinitionKind tags the top-level declaration variants, unchanged from
// the surface tree.
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

// TemplateParam is an explicit generic parameter as written by the user.
type TemplateParam struct {
	Name Name
	Span source.Span
}

// ImplicitTemplateParam is a type parameter synthesized by the desugarer
// for a function parameter that carried no explicit type annotation
// (spec §4.4). It is tagged distinctly from TemplateParam so the
// template-parameter collector can tell synthesized parameters apart
// from user-written ones (e.g. when reporting arity for an explicit
// template application).
type ImplicitTemplateParam struct {
	Name Name // synthesized via ident.Pool.InternNew; never collides with user text
}

// Param is a function parameter after desugaring: every parameter now
// carries a type annotation, either the user's explicit one or a
// reference to a fresh ImplicitTemplateParam.
type Param struct {
	Name           Name
	TypeAnnotation TypeExpr
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

// FunctionData describes a function after desugaring and implicit
// type-parameter synthesis.
type FunctionData struct {
	ExplicitTemplateParams []TemplateParam
	ImplicitTemplateParams []ImplicitTemplateParam
	Params                 []Param
	ReturnType             *TypeExpr
	Body                   arena.Handle[Expr]
}

func (FunctionData) definitionData() {}

type StructField struct {
	Name Name
	Type TypeExpr
	Span source.Span
}

type StructData struct {
	TemplateParams []TemplateParam
	Fields         []StructField
}

func (StructData) definitionData() {}

type EnumVariant struct {
	Name        Name
	PayloadType *TypeExpr
	Span        source.Span
}

type EnumData struct {
	TemplateParams []TemplateParam
	Variants       []EnumVariant
}

func (EnumData) definitionData() {}

type AliasData struct {
	TemplateParams []TemplateParam
	Aliased        TypeExpr
}

func (AliasData) definitionData() {}

type TypeclassMethod struct {
	Name       Name
	Params     []Param
	ReturnType *TypeExpr
	Span       source.Span
}

type TypeclassData struct {
	SelfParam TemplateParam
	Methods   []TypeclassMethod
}

func (TypeclassData) definitionData() {}

// ImplementationData attaches member functions to Target's associated
// namespace (spec §4.5 edge cases).
type ImplementationData struct {
	Target  TypeExpr
	Members []Definition
}

func (ImplementationData) definitionData() {}

// InstantiationData attaches member functions to a typeclass-specific
// subspace of Target's associated namespace.
type InstantiationData struct {
	Typeclass QualifiedName
	Target    TypeExpr
	Members   []Definition
}

func (InstantiationData) definitionData() {}
