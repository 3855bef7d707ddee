package hir

import (
	"glint/internal/arena"
	"glint/internal/source"
)

// Module is the HIR the namespace builder and resolver consume: every
// surface definition desugared, plus the arenas owning its recursive
// expression and pattern nodes. The AST arena the Desugarer read from may
// be dropped once this Module exists (spec §4.1).
type Module struct {
	Name        string
	Definitions []Definition
	SourceFile  source.FileID

	Exprs    *arena.Arena[Expr]
	Patterns *arena.Arena[Pattern]
}

// NewModule allocates the arenas backing a fresh HIR module.
func NewModule(name string, file source.FileID) *Module {
	return &Module{
		Name:       name,
		SourceFile: file,
		Exprs:      arena.New[Expr](),
		Patterns:   arena.New[Pattern](),
	}
}
