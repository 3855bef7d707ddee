package scope

import (
	"fmt"

	"glint/internal/arena"
	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/types"
)

// Binder walks a pattern against a scrutinee type, binding the names it
// captures into a Scope. Grounded on bind_pattern.cpp's Pattern_bind_visitor:
// one case per pattern kind, recursing into sub-patterns against the
// matching sub-type.
type Binder struct {
	patterns *arena.Arena[hir.Pattern]
	interner *types.Interner
	sink     *diag.Sink
}

// NewBinder constructs a Binder reading patterns from patterns and
// structural type info from interner, reporting mismatches to sink.
func NewBinder(patterns *arena.Arena[hir.Pattern], interner *types.Interner, sink *diag.Sink) *Binder {
	return &Binder{patterns: patterns, interner: interner, sink: sink}
}

// Bind binds every name p introduces, against typ, into scope.
func (bd *Binder) Bind(s *Scope, p hir.Pattern, typ types.TypeID) {
	switch p.Kind {
	case hir.PatternWildcard, hir.PatternLiteral:
		// Nothing to bind; a wildcard or literal pattern captures nothing.

	case hir.PatternName:
		data := p.Data.(hir.NamePatternData)
		s.Bind(data.Name, typ, data.Mutable)

	case hir.PatternTuple:
		bd.bindTuple(s, p, typ)

	case hir.PatternConstructor:
		bd.bindConstructor(s, p, typ)

	case hir.PatternAs:
		data := p.Data.(hir.AsPatternData)
		inner := bd.patterns.Deref(data.Inner)
		bd.Bind(s, *inner, typ)
		s.Bind(data.Alias, typ, false)

	case hir.PatternGuarded:
		data := p.Data.(hir.GuardedPatternData)
		inner := bd.patterns.Deref(data.Inner)
		bd.Bind(s, *inner, typ)
		// The guard expression is type-checked by the constraint collector
		// against Bool once the names above are visible; Binder only binds.

	default:
		bd.sink.Internal(p.Span, fmt.Sprintf("scope: unhandled pattern kind %d", p.Kind))
	}
}

func (bd *Binder) bindTuple(s *Scope, p hir.Pattern, typ types.TypeID) {
	data := p.Data.(hir.TuplePatternData)
	info, ok := bd.interner.TupleInfo(typ)
	if !ok {
		bd.sink.Error(diag.CodeCannotUnify, p.Span, "a tuple pattern cannot bind against a non-tuple type")
		return
	}
	if len(info.Elems) != len(data.Elements) {
		bd.sink.Error(diag.CodeArityMismatch, p.Span,
			fmt.Sprintf("the tuple pattern contains %d patterns, but its type has %d elements", len(data.Elements), len(info.Elems)))
		return
	}
	for i, handle := range data.Elements {
		elem := bd.patterns.Deref(handle)
		bd.Bind(s, *elem, info.Elems[i])
	}
}

func (bd *Binder) bindConstructor(s *Scope, p hir.Pattern, typ types.TypeID) {
	data := p.Data.(hir.ConstructorPatternData)
	info, ok := bd.interner.EnumerationInfo(typ)
	if !ok {
		bd.sink.Error(diag.CodeCannotUnify, p.Span, "a constructor pattern cannot bind against a non-enumeration type")
		return
	}
	name := data.Constructor.PrimaryName.Identifier
	var variant *types.EnumerationVariant
	for i := range info.Variants {
		if info.Variants[i].Name == name {
			variant = &info.Variants[i]
			break
		}
	}
	if variant == nil {
		bd.sink.Error(diag.CodeNoSuchName, p.Span, "'"+name.View()+"' is not a constructor of this enumeration")
		return
	}
	if !data.Payload.Valid() {
		return
	}
	if variant.PayloadType == types.NoTypeID {
		bd.sink.Error(diag.CodeArityMismatch, p.Span, "'"+name.View()+"' has no payload to destructure")
		return
	}
	payload := bd.patterns.Deref(data.Payload)
	bd.Bind(s, *payload, variant.PayloadType)
}
