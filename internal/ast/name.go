// Package ast holds the surface tree handed to the pipeline by the parser:
// every sugar form the language accepts, before the desugarer collapses
// `while`/`if`/`elif`/`for` into the hir package's primitive control-flow
// set. Nodes are arena-backed (see internal/arena) so recursive variants
// never need heap pointers or cycle bookkeeping.
package ast

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"glint/internal/ident"
	"glint/internal/source"
)

// Name is an identifier occurrence: the interned symbol plus enough source
// information for the resolver to reject case-mismatched lookups (a
// lowercase name where a type is expected, or vice versa).
type Name struct {
	Identifier ident.Identifier
	IsUpper    bool
	Span       source.Span
}

var upperCaser = cases.Upper(language.Und)

// NewName builds a Name from its already-interned identifier and the raw
// text it was interned from (needed once, to classify the leading rune).
func NewName(id ident.Identifier, text string, span source.Span) Name {
	return Name{Identifier: id, IsUpper: leadingRuneIsUpper(text), Span: span}
}

func leadingRuneIsUpper(text string) bool {
	if text == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text)
	first := string(r)
	return upperCaser.String(first) == first
}

// RootKind selects where a QualifiedName's lookup begins.
type RootKind uint8

const (
	RootCurrent    RootKind = iota // relative to the current namespace
	RootGlobal                     // absolute, from the global namespace
	RootAssociated                 // absolute, from AssociatedType's associated namespace
)

// MiddleQualifier is one path component between the root and the primary
// name, e.g. the `Box` in `Box<T>::new`.
type MiddleQualifier struct {
	Name            Name
	TemplateArgs    []TypeExpr
	HasTemplateArgs bool
}

// QualifiedName is the surface form of a name lookup: a root selector, zero
// or more middle qualifiers descending through child namespaces, and the
// primary name resolved in the final namespace.
type QualifiedName struct {
	Root            RootKind
	AssociatedType  TypeExpr // only meaningful when Root == RootAssociated
	MiddleQualifiers []MiddleQualifier
	PrimaryName     Name
	Span            source.Span
}
