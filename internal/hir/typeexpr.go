package hir

import (
	"glint/internal/arena"
	"glint/internal/source"
)

// TypeKind tags the HIR type-expression variants (a surface type
// annotation, not yet lowered to a types.TypeID; that lowering is the
// type resolver's job, §4.7).
type TypeKind uint8

const (
	TypeNamed TypeKind = iota
	TypeTuple
	TypeArray
	TypeSlice
	TypeFunction
	TypeReference
	TypeApplied
	TypeHole
)

// TypeExpr is a HIR type occurrence.
type TypeExpr struct {
	Kind TypeKind
	Span source.Span
	Data TypeData
}

// TypeData is the closed set of per-kind type payloads.
type TypeData interface {
	typeData()
}

type NamedTypeData struct{ Name QualifiedName }

func (NamedTypeData) typeData() {}

type TupleTypeData struct{ Elements []TypeExpr }

func (TupleTypeData) typeData() {}

// ArrayTypeData is `[T; N]`; Length is a HIR expression. The type
// resolver evaluates it only when it is a non-negative integer literal;
// any other length resolves to an unknown types.ArrayLength.
type ArrayTypeData struct {
	Element *TypeExpr
	Length  arena.Handle[Expr]
}

func (ArrayTypeData) typeData() {}

type SliceTypeData struct{ Element *TypeExpr }

func (SliceTypeData) typeData() {}

type FunctionTypeData struct {
	Params []TypeExpr
	Return *TypeExpr
}

func (FunctionTypeData) typeData() {}

type ReferenceTypeData struct {
	Mutable bool
	Referee *TypeExpr
}

func (ReferenceTypeData) typeData() {}

type AppliedTypeData struct {
	Head Name
	Args []TypeExpr
}

func (AppliedTypeData) typeData() {}

type HoleTypeData struct{}

func (HoleTypeData) typeData() {}
