package unify

import (
	"testing"

	"glint/internal/diag"
	"glint/internal/ident"
	"glint/internal/source"
	"glint/internal/types"
)

func newSink() (*diag.Bag, *diag.Sink) {
	bag := diag.NewBag()
	return bag, diag.NewSink(bag, diag.DefaultPolicy())
}

func TestUnifyGeneralVarBindsToConcreteType(t *testing.T) {
	in := types.NewInterner()
	_, sink := newSink()
	s := NewSolver(in, sink)
	v := in.FreshGeneralVar()

	s.Unify(source.Zero, v, in.Builtins().Bool)

	if s.Resolve(v) != in.Builtins().Bool {
		t.Fatalf("expected the variable to resolve to Bool")
	}
}

func TestUnifyIntegralVarBindsToInt(t *testing.T) {
	in := types.NewInterner()
	_, sink := newSink()
	s := NewSolver(in, sink)
	v := in.FreshIntegralVar()

	s.Unify(source.Zero, in.Builtins().Int, v)

	if s.Resolve(v) != in.Builtins().Int {
		t.Fatalf("expected the integral variable to resolve to Int")
	}
}

func TestUnifyIntegralVarRejectsNonInteger(t *testing.T) {
	in := types.NewInterner()
	bag, sink := newSink()
	s := NewSolver(in, sink)
	v := in.FreshIntegralVar()

	s.Unify(source.Zero, v, in.Builtins().Char)

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeCannotUnify {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected cannot-unify error for Int with Char, got %+v", bag.Items())
	}
}

func TestUnifyMismatchedPrimitivesReportsError(t *testing.T) {
	in := types.NewInterner()
	bag, sink := newSink()
	s := NewSolver(in, sink)

	s.Unify(source.Zero, in.Builtins().Int, in.Builtins().Char)

	if !bag.HasErrors() {
		t.Fatalf("expected cannot-unify error")
	}
}

func TestUnifyTupleElementwise(t *testing.T) {
	in := types.NewInterner()
	_, sink := newSink()
	s := NewSolver(in, sink)

	v1, v2 := in.FreshGeneralVar(), in.FreshGeneralVar()
	left := in.RegisterTuple([]types.TypeID{v1, v2})
	right := in.RegisterTuple([]types.TypeID{in.Builtins().Int, in.Builtins().Bool})

	s.Unify(source.Zero, left, right)

	if s.Resolve(v1) != in.Builtins().Int || s.Resolve(v2) != in.Builtins().Bool {
		t.Fatalf("expected both tuple variables solved")
	}
}

func TestUnifyTupleArityMismatchReportsError(t *testing.T) {
	in := types.NewInterner()
	bag, sink := newSink()
	s := NewSolver(in, sink)

	left := in.RegisterTuple([]types.TypeID{in.Builtins().Int})
	right := in.RegisterTuple([]types.TypeID{in.Builtins().Int, in.Builtins().Bool})

	s.Unify(source.Zero, left, right)

	if !bag.HasErrors() {
		t.Fatalf("expected a mismatch error for differing tuple arity")
	}
}

func TestUnifyFunctionParamsAndResult(t *testing.T) {
	in := types.NewInterner()
	_, sink := newSink()
	s := NewSolver(in, sink)

	pv, rv := in.FreshGeneralVar(), in.FreshGeneralVar()
	left := in.RegisterFunction([]types.TypeID{pv}, rv)
	right := in.RegisterFunction([]types.TypeID{in.Builtins().Int}, in.Builtins().Bool)

	s.Unify(source.Zero, left, right)

	if s.Resolve(pv) != in.Builtins().Int || s.Resolve(rv) != in.Builtins().Bool {
		t.Fatalf("expected function param/result variables solved")
	}
}

func TestUnifyReferenceMutabilityMismatchReportsError(t *testing.T) {
	in := types.NewInterner()
	bag, sink := newSink()
	s := NewSolver(in, sink)

	left := in.RegisterReference(in.Builtins().Int, true)
	right := in.RegisterReference(in.Builtins().Int, false)

	s.Unify(source.Zero, left, right)

	if !bag.HasErrors() {
		t.Fatalf("expected a mutability-mismatch error")
	}
}

func TestUnifyDifferentStructuresReportsError(t *testing.T) {
	in := types.NewInterner()
	bag, sink := newSink()
	s := NewSolver(in, sink)

	pool := ident.NewPool()
	a := in.RegisterStructure(pool.Intern("A"), source.Zero)
	b := in.RegisterStructure(pool.Intern("B"), source.Zero)

	s.Unify(source.Zero, a, b)

	if !bag.HasErrors() {
		t.Fatalf("expected an error unifying two distinct structure types")
	}
}

func TestUnifyPathCompression(t *testing.T) {
	in := types.NewInterner()
	_, sink := newSink()
	s := NewSolver(in, sink)

	v1, v2, v3 := in.FreshGeneralVar(), in.FreshGeneralVar(), in.FreshGeneralVar()
	s.Unify(source.Zero, v1, v2)
	s.Unify(source.Zero, v2, v3)
	s.Unify(source.Zero, v3, in.Builtins().String)

	if s.Resolve(v1) != in.Builtins().String {
		t.Fatalf("expected transitive resolution through the chain")
	}
}
