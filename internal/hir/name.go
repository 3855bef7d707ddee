// Package hir is the High-level Intermediate Representation: the surface
// tree after the Desugarer has collapsed `while`, `while let`, `if`,
// `if let`, `elif` chains, and an omitted `else` into the primitive
// control-flow set {loop, match, block}. `for` is reserved: the
// Desugarer does not lower it (see desugar.go), matching spec §4.4's
// explicit allowance to postpone iterator-protocol desugaring.
//
// HIR nodes are arena-backed the same way ast nodes are; a node's Type
// field starts as types.NoTypeID and is filled in by the constraint
// collector and unifier (producing the "annotated HIR" the inferencer
// consumes).
package hir

import (
	"glint/internal/ast"
)

// Name is reused unchanged from the surface tree: desugaring never
// rewrites identifier occurrences.
type Name = ast.Name

// RootKind is reused unchanged from the surface tree.
type RootKind = ast.RootKind

const (
	RootCurrent    = ast.RootCurrent
	RootGlobal     = ast.RootGlobal
	RootAssociated = ast.RootAssociated
)

// MiddleQualifier mirrors ast.MiddleQualifier but carries HIR type
// expressions in its template arguments.
type MiddleQualifier struct {
	Name            Name
	TemplateArgs    []TypeExpr
	HasTemplateArgs bool
}

// QualifiedName mirrors ast.QualifiedName over HIR type expressions.
type QualifiedName struct {
	Root             RootKind
	AssociatedType   TypeExpr
	MiddleQualifiers []MiddleQualifier
	PrimaryName      Name
}
