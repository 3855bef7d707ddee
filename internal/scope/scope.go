// Package scope implements the binding engine spec §4.10 describes:
// lexical Scope frames holding Bindings in declaration order, and a
// Binder that walks a pattern against a scrutinee type, introducing one
// Binding per name the pattern captures.
package scope

import (
	"fmt"

	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/ident"
	"glint/internal/types"
)

// Binding is one name a pattern bound, plus enough bookkeeping for the
// unused/shadow warnings a Scope emits on Bind and Close.
type Binding struct {
	Name             hir.Name
	Type             types.TypeID
	FrameOffset      uint32
	Mutable          bool
	HasBeenMentioned bool
}

// Scope is one lexical binding frame. Lookups walk outward through
// Parent; Bind only ever affects the receiver, matching spec §4.10's
// "a binding is visible in its own scope and every scope nested inside
// it, never in a sibling or the parent".
type Scope struct {
	parent      *Scope
	sink        *diag.Sink
	interner    *types.Interner
	names       []ident.Identifier
	bindings    []*Binding
	frameOffset uint32
}

// NewRoot returns an empty scope with no parent, reporting diagnostics
// to sink and sizing bindings against interner.
func NewRoot(sink *diag.Sink, interner *types.Interner) *Scope {
	return &Scope{sink: sink, interner: interner}
}

// Child returns a new scope nested inside s, inheriting its current
// frame offset (locals in the child continue the parent's frame layout).
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, sink: s.sink, interner: s.interner, frameOffset: s.frameOffset}
}

func (s *Scope) indexOf(id ident.Identifier) int {
	for i, n := range s.names {
		if n == id {
			return i
		}
	}
	return -1
}

func isIgnoredName(text string) bool {
	return text == "" || text == "_" || text[0] == '_'
}

// Bind introduces name into s. Re-binding an identifier already present
// directly in s (not in a parent — that's ordinary nested shadowing, not
// warned about) shadows it, and warns if the identifier being replaced
// was never referenced — spec §4.10's "shadowing an unused local"
// warning, grounded on bind_pattern.cpp's Name-pattern case.
func (s *Scope) Bind(name hir.Name, typ types.TypeID, mutable bool) *Binding {
	b := &Binding{Name: name, Type: typ, Mutable: mutable, FrameOffset: s.frameOffset}
	text := name.Identifier.View()
	b.HasBeenMentioned = isIgnoredName(text)

	if idx := s.indexOf(name.Identifier); idx >= 0 {
		existing := s.bindings[idx]
		if !existing.HasBeenMentioned {
			s.sink.WarningWithHelp(diag.CodeShadowedUnused, name.Span,
				"'"+text+"' shadows an unused local binding",
				"if this is intentional, prefix the first binding with an underscore: _"+text,
				diag.Note{Span: existing.Name.Span, Msg: "unused binding declared here"})
			existing.HasBeenMentioned = true
		}
		s.names[idx] = name.Identifier
		s.bindings[idx] = b
	} else {
		s.names = append(s.names, name.Identifier)
		s.bindings = append(s.bindings, b)
	}
	size := uint32(1)
	if s.interner != nil {
		size = types.SizeOf(s.interner, typ)
	}
	next := s.frameOffset + size
	if next < s.frameOffset {
		panic(fmt.Errorf("scope: frame offset overflow"))
	}
	s.frameOffset = next
	return b
}

// Find looks up id in s and its ancestors, marking the binding mentioned
// if found (spec §4.10: a binding is "unused" only if nothing ever looked
// it up before its scope closed).
func (s *Scope) Find(id ident.Identifier) *Binding {
	for cur := s; cur != nil; cur = cur.parent {
		if idx := cur.indexOf(id); idx >= 0 {
			cur.bindings[idx].HasBeenMentioned = true
			return cur.bindings[idx]
		}
	}
	return nil
}

// Close destroys s, warning about every binding introduced directly in
// it that was never mentioned. Mirrors scope.cpp's destructor.
func (s *Scope) Close() {
	for _, b := range s.bindings {
		if b.HasBeenMentioned {
			continue
		}
		text := b.Name.Identifier.View()
		s.sink.WarningWithHelp(diag.CodeUnusedBinding, b.Name.Span,
			"unused local '"+text+"'",
			"if this is intentional, prefix it with an underscore: _"+text)
	}
}
