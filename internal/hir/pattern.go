package hir

import (
	"glint/internal/arena"
	"glint/internal/source"
	"glint/internal/types"
)

// PatternKind tags the HIR pattern variants. PatternLiteral is synthetic:
// the desugarer introduces it to express `while`/`if`'s implicit
// `true`/`false` matches (spec §4.4's rewrites); it never appears in
// user-written HIR because the surface language has no literal patterns
// of its own.
type PatternKind uint8

const (
	PatternWildcard PatternKind = iota
	PatternName
	PatternTuple
	PatternConstructor
	PatternAs
	PatternGuarded
	PatternLiteral
)

// Pattern is a HIR pattern occurrence. Type starts at types.NoTypeID and
// is filled in by pattern binding (§4.10) against the scrutinee's type.
type Pattern struct {
	Kind PatternKind
	Type types.TypeID
	Span source.Span
	Data PatternData
}

// PatternData is the closed set of per-kind pattern payloads.
type PatternData interface {
	patternData()
}

type WildcardPatternData struct{}

func (WildcardPatternData) patternData() {}

type NamePatternData struct {
	Name    Name
	Mutable bool
}

func (NamePatternData) patternData() {}

type TuplePatternData struct {
	Elements []arena.Handle[Pattern]
}

func (TuplePatternData) patternData() {}

// ConstructorPatternData matches an enum constructor, optionally
// destructuring its payload pattern.
type ConstructorPatternData struct {
	Constructor QualifiedName
	Payload     arena.Handle[Pattern] // zero Handle: no payload pattern
}

func (ConstructorPatternData) patternData() {}

type AsPatternData struct {
	Inner arena.Handle[Pattern]
	Alias Name
}

func (AsPatternData) patternData() {}

// GuardedPatternData records a match arm's side-constraint guard
// expression alongside the pattern it qualifies.
type GuardedPatternData struct {
	Inner arena.Handle[Pattern]
	Guard arena.Handle[Expr]
}

func (GuardedPatternData) patternData() {}

// LiteralPatternData is the desugarer-synthesized `true`/`false` pattern
// used to rewrite conditionals into matches.
type LiteralPatternData struct {
	Bool bool
}

func (LiteralPatternData) patternData() {}
