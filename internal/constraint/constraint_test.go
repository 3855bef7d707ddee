package constraint

import (
	"testing"

	"glint/internal/diag"
	"glint/internal/ident"
	"glint/internal/source"
	"glint/internal/types"
	"glint/internal/unify"
)

func newSet() (*diag.Bag, *types.Interner, *Set) {
	in := types.NewInterner()
	bag := diag.NewBag()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	solver := unify.NewSolver(in, sink)
	return bag, in, NewSet(solver, sink)
}

func TestEquateSolvesImmediately(t *testing.T) {
	_, in, s := newSet()
	v := in.FreshGeneralVar()

	s.Equate(source.Zero, v, in.Builtins().Int)

	if s.solver.Resolve(v) != in.Builtins().Int {
		t.Fatalf("expected the variable to resolve to Int right after Equate")
	}
}

func TestSolveInstancesSingleMatch(t *testing.T) {
	bag, in, s := newSet()
	pool := ident.NewPool()
	class := pool.Intern("Show")
	v := in.FreshGeneralVar()
	a := in.RegisterStructure(pool.Intern("A"), source.Zero)

	s.RequireInstance(source.Zero, v, []ident.Identifier{class})
	s.SolveInstances(func(ident.Identifier) []InstanceCandidate {
		return []InstanceCandidate{{Target: a}}
	})

	if bag.HasErrors() {
		t.Fatalf("expected no error for a single matching instance, got %+v", bag.Items())
	}
	if s.solver.Resolve(v) != a {
		t.Fatalf("expected the variable to resolve to the sole matching instance")
	}
}

func TestSolveInstancesNoMatchReportsError(t *testing.T) {
	bag, in, s := newSet()
	pool := ident.NewPool()
	class := pool.Intern("Show")
	a := in.RegisterStructure(pool.Intern("A"), source.Zero)
	b := in.RegisterStructure(pool.Intern("B"), source.Zero)

	s.RequireInstance(source.Zero, a, []ident.Identifier{class})
	s.SolveInstances(func(ident.Identifier) []InstanceCandidate {
		return []InstanceCandidate{{Target: b}}
	})

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeNoMatchingInstance {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeNoMatchingInstance, got %+v", bag.Items())
	}
}

func TestSolveInstancesAmbiguousReportsError(t *testing.T) {
	bag, in, s := newSet()
	pool := ident.NewPool()
	class := pool.Intern("Show")
	v := in.FreshGeneralVar()
	a := in.RegisterStructure(pool.Intern("A"), source.Zero)
	b := in.RegisterStructure(pool.Intern("B"), source.Zero)

	s.RequireInstance(source.Zero, v, []ident.Identifier{class})
	s.SolveInstances(func(ident.Identifier) []InstanceCandidate {
		return []InstanceCandidate{{Target: a}, {Target: b}}
	})

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeAmbiguousInstance {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeAmbiguousInstance, got %+v", bag.Items())
	}
}
