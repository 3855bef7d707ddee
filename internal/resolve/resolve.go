// Package resolve implements the qualified-name lookup algorithm of
// spec §4.6: a root-qualifier selection (current namespace, or global/
// absolute), descent through middle qualifiers, and a category-scoped
// primary-name lookup that walks outward to the root when the search
// started relative. A name rooted at a type's associated namespace is
// looked up as if rooted at the current namespace, and template
// arguments on a middle qualifier are ignored.
//
// Grounded on original_source/src/resolution/namespace_lookup.cpp:
// apply_qualifiers picks the starting namespace and relative/absolute
// mode; do_lookup's loop-to-parent-or-stop-at-root mirrors find's walk
// here; do_absolute_lookup's try-each-table-in-order chain becomes
// FindType trying Structures, then Enumerations, then Aliases.
package resolve

import (
	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/ident"
	"glint/internal/namespace"
)

// Resolver looks up hir.QualifiedName occurrences against a namespace
// graph rooted at global.
type Resolver struct {
	global *namespace.Namespace
	sink   *diag.Sink
}

// NewResolver constructs a Resolver over the namespace graph rooted at
// global, reporting lookup failures to sink.
func NewResolver(global *namespace.Namespace, sink *diag.Sink) *Resolver {
	return &Resolver{global: global, sink: sink}
}

// table selects one category's lookup map from a namespace.
type table func(*namespace.Namespace) map[ident.Identifier]*namespace.DefinitionInfo

func functions(ns *namespace.Namespace) map[ident.Identifier]*namespace.DefinitionInfo  { return ns.Functions }
func structures(ns *namespace.Namespace) map[ident.Identifier]*namespace.DefinitionInfo { return ns.Structures }
func enumerations(ns *namespace.Namespace) map[ident.Identifier]*namespace.DefinitionInfo {
	return ns.Enumerations
}
func aliases(ns *namespace.Namespace) map[ident.Identifier]*namespace.DefinitionInfo { return ns.Aliases }
func typeclasses(ns *namespace.Namespace) map[ident.Identifier]*namespace.DefinitionInfo {
	return ns.Typeclasses
}

// resolveTarget picks the starting namespace for name's lookup and
// whether the search is relative (walk outward to root) or absolute
// (search exactly one namespace). Descending through middle qualifiers
// always ends the search as absolute at the final qualifier's namespace,
// matching apply_qualifiers' "middle qualifiers aren't implemented
// relative to anything but the namespace they were just found in".
func (r *Resolver) resolveTarget(current *namespace.Namespace, name hir.QualifiedName) (target *namespace.Namespace, relative bool, ok bool) {
	switch name.Root {
	case hir.RootGlobal:
		target, relative = r.global, false
	default:
		target, relative = current, true
	}

	for _, mq := range name.MiddleQualifiers {
		child, exists := target.Children[mq.Name.Identifier]
		if !exists {
			r.sink.Error(diag.CodeNoSuchQualifier, mq.Name.Span,
				"no such qualifier '"+mq.Name.Identifier.View()+"'")
			return nil, false, false
		}
		target = child
		relative = false
	}
	return target, relative, true
}

func (r *Resolver) find(current *namespace.Namespace, name hir.QualifiedName, tab table) *namespace.DefinitionInfo {
	target, relative, ok := r.resolveTarget(current, name)
	if !ok {
		return nil
	}
	id := name.PrimaryName.Identifier
	if !relative {
		return tab(target)[id]
	}
	for ns := target; ns != nil; ns = ns.Parent {
		if info, ok := tab(ns)[id]; ok {
			return info
		}
	}
	return nil
}

// FindFunction resolves name to a function's DefinitionInfo, reporting
// diag.CodeCaseMismatch if the name is capitalized (functions are
// lowercase by spec convention) and diag.CodeNoSuchName if nothing
// matches.
func (r *Resolver) FindFunction(current *namespace.Namespace, name hir.QualifiedName) *namespace.DefinitionInfo {
	if name.PrimaryName.IsUpper {
		r.sink.Error(diag.CodeCaseMismatch, name.PrimaryName.Span,
			"'"+name.PrimaryName.Identifier.View()+"' is capitalized; a function name must not be")
		return nil
	}
	info := r.find(current, name, functions)
	if info == nil {
		r.sink.Error(diag.CodeNoSuchName, name.PrimaryName.Span,
			"no function named '"+name.PrimaryName.Identifier.View()+"'")
	}
	return info
}

// FindType resolves name to a structure, enumeration, or alias
// DefinitionInfo, in that category order (do_absolute_lookup's
// try-structures-then-enumerations-then-aliases chain).
func (r *Resolver) FindType(current *namespace.Namespace, name hir.QualifiedName) *namespace.DefinitionInfo {
	if !name.PrimaryName.IsUpper {
		r.sink.Error(diag.CodeCaseMismatch, name.PrimaryName.Span,
			"'"+name.PrimaryName.Identifier.View()+"' is not capitalized; a type name must be")
		return nil
	}
	for _, tab := range []table{structures, enumerations, aliases} {
		if info := r.find(current, name, tab); info != nil {
			return info
		}
	}
	r.sink.Error(diag.CodeNoSuchName, name.PrimaryName.Span,
		"no type named '"+name.PrimaryName.Identifier.View()+"'")
	return nil
}

// FindTypeclass resolves name to a typeclass DefinitionInfo.
func (r *Resolver) FindTypeclass(current *namespace.Namespace, name hir.QualifiedName) *namespace.DefinitionInfo {
	if !name.PrimaryName.IsUpper {
		r.sink.Error(diag.CodeCaseMismatch, name.PrimaryName.Span,
			"'"+name.PrimaryName.Identifier.View()+"' is not capitalized; a typeclass name must be")
		return nil
	}
	info := r.find(current, name, typeclasses)
	if info == nil {
		r.sink.Error(diag.CodeNoSuchName, name.PrimaryName.Span,
			"no typeclass named '"+name.PrimaryName.Identifier.View()+"'")
	}
	return info
}
