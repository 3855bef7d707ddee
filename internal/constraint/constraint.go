// Package constraint is the Constraint set of spec §4.8/§4.9: a FIFO
// queue of type equalities plus a list of instance (typeclass-membership)
// obligations, generated while walking a HIR expression tree and
// consumed by unification.
//
// Grounded on original_source/src/resolution/expression_resolution.cpp,
// whose Expression_resolution_visitor resolves and unifies a node's type
// immediately as it visits (no separate collect-then-solve pass over a
// persisted queue). Set mirrors that by draining each pushed equality
// through the unifier the moment it is pushed — "process equalities in
// enqueue order" (spec §5) holds trivially when enqueue and solve happen
// in the same call. Instance constraints are buffered and solved
// separately, after every equality seen so far has been exhausted,
// matching the visitor's own eager-but-two-phase treatment of class
// constraints deferred from member-access resolution.
package constraint

import (
	"glint/internal/diag"
	"glint/internal/ident"
	"glint/internal/source"
	"glint/internal/types"
	"glint/internal/unify"
)

// Equality is a single `left = right` obligation between two TypeIDs.
type Equality struct {
	Left, Right types.TypeID
	Span        source.Span
}

// Instance is a class-membership obligation: Type must implement every
// class in Classes. Classes are keyed by the typeclass's interned name;
// resolving a class's known instances is the caller's responsibility
// (internal/constraint doesn't know about the namespace graph).
type Instance struct {
	Type    types.TypeID
	Classes []ident.Identifier
	Span    source.Span
}

// InstanceCandidate is one known instantiation of a class: the concrete
// (or still-parameterized) type it was written for.
type InstanceCandidate struct {
	Target types.TypeID
}

// InstancesOf looks up the known instances of a class by its interned
// name. Supplied by the caller so this package stays decoupled from the
// namespace graph.
type InstancesOf func(class ident.Identifier) []InstanceCandidate

// Set accumulates the constraints generated while resolving one
// definition body. Equalities are solved as they're pushed; instance
// constraints are buffered for a later SolveInstances call.
type Set struct {
	solver    *unify.Solver
	sink      *diag.Sink
	instances []Instance
}

// NewSet constructs a Set that solves equalities against solver and
// reports instance-resolution failures to sink.
func NewSet(solver *unify.Solver, sink *diag.Sink) *Set {
	return &Set{solver: solver, sink: sink}
}

// Equate pushes and immediately solves left = right.
func (s *Set) Equate(span source.Span, left, right types.TypeID) {
	s.solver.Unify(span, left, right)
}

// RequireInstance buffers an instance obligation for SolveInstances.
func (s *Set) RequireInstance(span source.Span, typ types.TypeID, classes []ident.Identifier) {
	s.instances = append(s.instances, Instance{Type: typ, Classes: classes, Span: span})
}

// SolveInstances resolves every buffered instance constraint against
// lookup, in the order they were pushed (spec §5: "instance constraints
// are solved strictly after all equalities"; by the time a caller invokes
// this, every Equate call for the definition has already run). For each
// constraint's class, exactly one known candidate must structurally
// unify with the constraint's type: zero is an unambiguous-failure
// error, more than one is an ambiguity error.
func (s *Set) SolveInstances(lookup InstancesOf) {
	for _, inst := range s.instances {
		for _, class := range inst.Classes {
			s.solveOne(inst, class, lookup(class))
		}
	}
	s.instances = nil
}

func (s *Set) solveOne(inst Instance, class ident.Identifier, candidates []InstanceCandidate) {
	var matched *InstanceCandidate
	matches := 0
	for i := range candidates {
		if s.solver.TrialUnify(inst.Span, inst.Type, candidates[i].Target) {
			matched = &candidates[i]
			matches++
		}
	}
	switch matches {
	case 0:
		s.sink.Error(diag.CodeNoMatchingInstance, inst.Span,
			"no instance of '"+class.View()+"' matches "+types.Label(s.solver.Interner(), inst.Type))
	case 1:
		s.solver.Unify(inst.Span, inst.Type, matched.Target)
	default:
		s.sink.Error(diag.CodeAmbiguousInstance, inst.Span,
			"more than one instance of '"+class.View()+"' matches "+types.Label(s.solver.Interner(), inst.Type))
	}
}
