package types

import "testing"

func TestIdenticalPrimitivesInternToSameID(t *testing.T) {
	in := NewInterner()
	a := in.Intern(Type{Kind: KindInt, Width: Width64, Signed: true})
	b := in.Intern(Type{Kind: KindInt, Width: Width64, Signed: true})
	if a != b {
		t.Fatalf("expected identical Int(64,signed) descriptors to share a TypeID, got %d and %d", a, b)
	}
	if a != in.Builtins().Int {
		t.Fatalf("expected Int(64,signed) to be the canonical default integer")
	}
}

func TestTupleRegistrationDeduplicates(t *testing.T) {
	in := NewInterner()
	elems := []TypeID{in.Builtins().Bool, in.Builtins().Char}
	first := in.RegisterTuple(elems)
	second := in.RegisterTuple([]TypeID{in.Builtins().Bool, in.Builtins().Char})
	if first != second {
		t.Fatalf("expected equal tuple element sequences to dedupe, got %d and %d", first, second)
	}
	info, ok := in.TupleInfo(first)
	if !ok || len(info.Elems) != 2 {
		t.Fatalf("expected tuple info with 2 elements, got %+v", info)
	}
}

func TestUnitIsZeroArityTuple(t *testing.T) {
	in := NewInterner()
	info, ok := in.TupleInfo(in.Builtins().Unit)
	if !ok || len(info.Elems) != 0 {
		t.Fatalf("expected unit to be the zero-arity tuple, got %+v", info)
	}
}

func TestFreshVariablesAreDistinctEvenWithEqualFields(t *testing.T) {
	in := NewInterner()
	v1 := in.FreshGeneralVar()
	v2 := in.FreshGeneralVar()
	if v1 == v2 {
		t.Fatalf("expected distinct fresh variables, both minted as %d", v1)
	}
}

func TestIntegralVariableKindRestriction(t *testing.T) {
	in := NewInterner()
	v := in.FreshIntegralVar()
	tv, ok := in.Lookup(v)
	if !ok || tv.Kind != KindIntegralVar {
		t.Fatalf("expected KindIntegralVar, got %+v", tv)
	}
	if !tv.Kind.IsVariable() {
		t.Fatalf("expected integral var to report IsVariable")
	}
}

func TestArrayInfoRoundTrip(t *testing.T) {
	in := NewInterner()
	arr := in.RegisterArray(in.Builtins().Int, ArrayLength{Known: true, Value: 4})
	info, ok := in.ArrayInfo(arr)
	if !ok || info.Elem != in.Builtins().Int || info.Length.Value != 4 {
		t.Fatalf("expected array info with length 4, got %+v", info)
	}
}

func TestFunctionRegistrationDeduplicates(t *testing.T) {
	in := NewInterner()
	f1 := in.RegisterFunction([]TypeID{in.Builtins().Int}, in.Builtins().Bool)
	f2 := in.RegisterFunction([]TypeID{in.Builtins().Int}, in.Builtins().Bool)
	if f1 != f2 {
		t.Fatalf("expected identical function signatures to dedupe, got %d and %d", f1, f2)
	}
}
