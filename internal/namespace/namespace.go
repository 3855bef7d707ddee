// Package namespace builds the hierarchical namespace graph a HIR module
// declares into, and tracks each top-level declaration's resolution
// lifecycle through a DefinitionInfo record.
package namespace

import (
	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/ident"
	"glint/internal/mir"
)

// State is a DefinitionInfo's place in its resolution lifecycle.
type State uint8

const (
	StateUnresolved State = iota
	StateInProgress
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateInProgress:
		return "in-progress"
	case StateResolved:
		return "resolved"
	default:
		return "state(?)"
	}
}

// DefinitionInfo is the unit of semantic identity for a top-level
// declaration. Its signature (parameters, return type, struct fields, ...)
// is resolved eagerly by the namespace builder's caller so mutually
// recursive definitions can reference each other; its body is resolved
// later, in a separate sweep once every signature exists.
type DefinitionInfo struct {
	HIR   hir.Definition
	MIR   *mir.Definition // not assigned by the pipeline; lowered definitions go to mir.Module.Definitions
	Assoc *Namespace      // associated namespace, for struct/enum/typeclass definitions only
	State State
}

// Namespace is one node of the declaration hierarchy: a module, or the
// associated namespace of a struct/enum/typeclass.
type Namespace struct {
	Name     string
	Parent   *Namespace
	Children map[ident.Identifier]*Namespace

	Functions    map[ident.Identifier]*DefinitionInfo
	Structures   map[ident.Identifier]*DefinitionInfo
	Enumerations map[ident.Identifier]*DefinitionInfo
	Aliases      map[ident.Identifier]*DefinitionInfo
	Typeclasses  map[ident.Identifier]*DefinitionInfo

	// Instantiations holds instance blocks keyed by the typeclass they
	// implement, scoped to this namespace (the associated namespace of
	// the instantiation's target type). Spec §4.5: "instantiations
	// attach the implementations to a typeclass-specific subspace."
	Instantiations map[ident.Identifier][]*DefinitionInfo

	// DeclarationOrder holds exactly one entry per definition registered
	// into this namespace, across every table, in the order Register was
	// called (spec §3 "Namespace" invariant, §8 property 6).
	DeclarationOrder []*DefinitionInfo
}

// New returns an empty namespace named name, parented under parent (nil
// for the root/global namespace).
func New(name string, parent *Namespace) *Namespace {
	return &Namespace{
		Name:           name,
		Parent:         parent,
		Children:       make(map[ident.Identifier]*Namespace),
		Functions:      make(map[ident.Identifier]*DefinitionInfo),
		Structures:     make(map[ident.Identifier]*DefinitionInfo),
		Enumerations:   make(map[ident.Identifier]*DefinitionInfo),
		Aliases:        make(map[ident.Identifier]*DefinitionInfo),
		Typeclasses:    make(map[ident.Identifier]*DefinitionInfo),
		Instantiations: make(map[ident.Identifier][]*DefinitionInfo),
	}
}

// Child returns (creating if necessary) the named child namespace.
func (ns *Namespace) Child(id ident.Identifier, text string) *Namespace {
	if c, ok := ns.Children[id]; ok {
		return c
	}
	c := New(text, ns)
	ns.Children[id] = c
	return c
}

// tableFor selects the per-category table a definition kind registers
// into. Implementation/instantiation blocks have no table of their own:
// their members are attached directly to Target's associated namespace
// by Builder.Register.
func (ns *Namespace) tableFor(kind hir.DefinitionKind) map[ident.Identifier]*DefinitionInfo {
	switch kind {
	case hir.DefFunction:
		return ns.Functions
	case hir.DefStruct:
		return ns.Structures
	case hir.DefEnum:
		return ns.Enumerations
	case hir.DefAlias:
		return ns.Aliases
	case hir.DefTypeclass:
		return ns.Typeclasses
	default:
		return nil
	}
}

// Builder walks a HIR module's definitions once, registering each into
// the namespace graph in declaration order (spec §4.5).
type Builder struct {
	sink *diag.Sink
}

// NewBuilder constructs a Builder reporting duplicate-definition and
// unknown-target errors into sink.
func NewBuilder(sink *diag.Sink) *Builder {
	return &Builder{sink: sink}
}

// Build registers every definition of mod into root, returning root for
// convenience.
func (b *Builder) Build(mod *hir.Module, root *Namespace) *Namespace {
	b.registerAll(mod.Definitions, root)
	return root
}

func (b *Builder) registerAll(defs []hir.Definition, ns *Namespace) {
	for _, def := range defs {
		b.Register(def, ns)
	}
}

// Register registers one definition into ns, recursing into struct/enum
// associated namespaces and attaching implementation/instantiation
// members per spec §4.5's edge cases.
func (b *Builder) Register(def hir.Definition, ns *Namespace) *DefinitionInfo {
	switch def.Kind {
	case hir.DefImplementation:
		return b.registerImplementation(def, ns)
	case hir.DefInstantiation:
		return b.registerInstantiation(def, ns)
	}

	table := ns.tableFor(def.Kind)
	if table == nil {
		b.sink.Internal(def.Span, "namespace: definition kind has no table")
		return nil
	}

	id := def.Name.Identifier
	if existing, dup := table[id]; dup {
		b.sink.Error(diag.CodeDuplicateDefinition, def.Span,
			"duplicate definition of '"+id.View()+"'; first defined here",
			diag.Note{Span: existing.HIR.Span, Msg: "first definition"})
		return existing
	}

	info := &DefinitionInfo{HIR: def, State: StateUnresolved}
	table[id] = info
	ns.DeclarationOrder = append(ns.DeclarationOrder, info)

	switch def.Kind {
	case hir.DefStruct, hir.DefEnum, hir.DefTypeclass:
		info.Assoc = ns.Child(id, id.View())
	}

	return info
}

func (b *Builder) registerImplementation(def hir.Definition, ns *Namespace) *DefinitionInfo {
	data := def.Data.(hir.ImplementationData)
	target := targetNamedTypeID(data.Target)
	if !target.IsValid() {
		b.sink.Error(diag.CodeNoAssociatedSpace, def.Span, "implementation target has no associated namespace")
		return nil
	}
	targetInfo := b.lookupLocal(ns, target)
	if targetInfo == nil || targetInfo.Assoc == nil {
		b.sink.Error(diag.CodeNoAssociatedSpace, def.Span, "'"+target.View()+"' has no associated namespace")
		return nil
	}
	b.registerAll(data.Members, targetInfo.Assoc)
	return nil
}

func (b *Builder) registerInstantiation(def hir.Definition, ns *Namespace) *DefinitionInfo {
	data := def.Data.(hir.InstantiationData)
	target := targetNamedTypeID(data.Target)
	if !target.IsValid() {
		b.sink.Error(diag.CodeNoAssociatedSpace, def.Span, "instantiation target has no associated namespace")
		return nil
	}
	targetInfo := b.lookupLocal(ns, target)
	if targetInfo == nil || targetInfo.Assoc == nil {
		b.sink.Error(diag.CodeNoAssociatedSpace, def.Span, "'"+target.View()+"' has no associated namespace")
		return nil
	}
	typeclassID := data.Typeclass.PrimaryName.Identifier

	sub := targetInfo.Assoc.Child(typeclassID, typeclassID.View())
	b.registerAll(data.Members, sub)

	var members []*DefinitionInfo
	for _, d := range data.Members {
		if info, ok := sub.Functions[d.Name.Identifier]; ok {
			members = append(members, info)
		}
	}
	targetInfo.Assoc.Instantiations[typeclassID] = append(targetInfo.Assoc.Instantiations[typeclassID], members...)
	return nil
}

// lookupLocal finds a struct/enum/typeclass DefinitionInfo by identifier,
// searching ns and its ancestors. Implementation/instantiation targets are
// always named types declared somewhere visible from the block's own
// namespace.
func (b *Builder) lookupLocal(ns *Namespace, id ident.Identifier) *DefinitionInfo {
	for n := ns; n != nil; n = n.Parent {
		if info, ok := n.Structures[id]; ok {
			return info
		}
		if info, ok := n.Enumerations[id]; ok {
			return info
		}
		if info, ok := n.Typeclasses[id]; ok {
			return info
		}
	}
	return nil
}

// targetNamedTypeID extracts the identifier a NamedTypeData's primary name
// carries, or a zero (invalid) identifier if target isn't a simple named
// type (e.g. a tuple or reference — implementations only attach to named
// types, per spec §4.5).
func targetNamedTypeID(t hir.TypeExpr) ident.Identifier {
	named, ok := t.Data.(hir.NamedTypeData)
	if !ok {
		return ident.Identifier{}
	}
	return named.Name.PrimaryName.Identifier
}
