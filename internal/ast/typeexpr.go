package ast

import (
	"glint/internal/arena"
	"glint/internal/source"
)

// TypeKind tags the surface type-expression variants.
type TypeKind uint8

const (
	TypeNamed TypeKind = iota
	TypeTuple
	TypeArray
	TypeSlice
	TypeFunction
	TypeReference
	TypeApplied // template application, e.g. Box<Int>
	TypeHole    // `_`, to be solved by inference
)

// TypeExpr is a surface type occurrence. Data carries the kind-specific
// payload; see TypeData implementations below.
type TypeExpr struct {
	Kind TypeKind
	Span source.Span
	Data TypeData
}

// TypeData is the closed set of per-kind type payloads.
type TypeData interface {
	typeData()
}

// NamedTypeData is a (possibly qualified) reference to a declared type.
type NamedTypeData struct {
	Name QualifiedName
}

func (NamedTypeData) typeData() {}

// TupleTypeData is `(T1, T2, ...)`.
type TupleTypeData struct {
	Elements []TypeExpr
}

func (TupleTypeData) typeData() {}

// ArrayTypeData is `[T; N]`; Length is an expression evaluated at
// resolution time (the const-length, not a runtime value).
type ArrayTypeData struct {
	Element *TypeExpr
	Length  arena.Handle[Expr]
}

func (ArrayTypeData) typeData() {}

// SliceTypeData is `[T]`.
type SliceTypeData struct {
	Element *TypeExpr
}

func (SliceTypeData) typeData() {}

// FunctionTypeData is `fn(T1, T2) -> R`.
type FunctionTypeData struct {
	Params []TypeExpr
	Return *TypeExpr
}

func (FunctionTypeData) typeData() {}

// ReferenceTypeData is `&T` or `&mut T`.
type ReferenceTypeData struct {
	Mutable bool
	Referee *TypeExpr
}

func (ReferenceTypeData) typeData() {}

// AppliedTypeData is a template instantiation, e.g. `Box<Int>`.
type AppliedTypeData struct {
	Head Name
	Args []TypeExpr
}

func (AppliedTypeData) typeData() {}

// HoleTypeData marks a type left for the inferencer to fill in.
type HoleTypeData struct{}

func (HoleTypeData) typeData() {}
