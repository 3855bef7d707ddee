package ast

import (
	"glint/internal/arena"
	"glint/internal/source"
)

// PatternKind tags the surface pattern variants.
type PatternKind uint8

const (
	PatternWildcard PatternKind = iota
	PatternName
	PatternTuple
	PatternConstructor
	PatternAs
	PatternGuarded
)

// Pattern is a surface pattern occurrence.
type Pattern struct {
	Kind PatternKind
	Span source.Span
	Data PatternData
}

// PatternData is the closed set of per-kind pattern payloads.
type PatternData interface {
	patternData()
}

// WildcardPatternData is `_`.
type WildcardPatternData struct{}

func (WildcardPatternData) patternData() {}

// NamePatternData binds the matched value to Name.
type NamePatternData struct {
	Name    Name
	Mutable bool
}

func (NamePatternData) patternData() {}

// TuplePatternData is `(P1, P2, ...)`.
type TuplePatternData struct {
	Elements []arena.Handle[Pattern]
}

func (TuplePatternData) patternData() {}

// ConstructorPatternData matches an enum constructor, optionally
// destructuring its payload.
type ConstructorPatternData struct {
	Constructor QualifiedName
	Payload     arena.Handle[Pattern] // zero Handle: no payload pattern
}

func (ConstructorPatternData) patternData() {}

// AsPatternData binds Alias to whatever Inner matches, in addition to
// Inner's own bindings.
type AsPatternData struct {
	Inner arena.Handle[Pattern]
	Alias Name
}

func (AsPatternData) patternData() {}

// GuardedPatternData attaches a boolean guard expression to Inner; the arm
// only matches if Inner matches and Guard evaluates true.
type GuardedPatternData struct {
	Inner arena.Handle[Pattern]
	Guard arena.Handle[Expr]
}

func (GuardedPatternData) patternData() {}
