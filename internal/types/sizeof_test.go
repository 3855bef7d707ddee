package types

import (
	"testing"

	"glint/internal/ident"
	"glint/internal/source"
)

func TestSizeOfPrimitives(t *testing.T) {
	in := NewInterner()
	if got := SizeOf(in, in.Builtins().Bool); got != 1 {
		t.Fatalf("expected Bool size 1, got %d", got)
	}
	if got := SizeOf(in, in.Builtins().Char); got != 4 {
		t.Fatalf("expected Char size 4, got %d", got)
	}
	if got := SizeOf(in, in.Builtins().Int); got != 8 {
		t.Fatalf("expected Int size 8, got %d", got)
	}
	narrow := in.Intern(Type{Kind: KindInt, Width: Width32, Signed: true})
	if got := SizeOf(in, narrow); got != 4 {
		t.Fatalf("expected a 32-bit Int size 4, got %d", got)
	}
}

func TestSizeOfTupleSumsElements(t *testing.T) {
	in := NewInterner()
	tup := in.RegisterTuple([]TypeID{in.Builtins().Int, in.Builtins().Bool})
	if got := SizeOf(in, tup); got != 9 {
		t.Fatalf("expected tuple size 9 (8 + 1), got %d", got)
	}
}

func TestSizeOfArrayMultipliesByLength(t *testing.T) {
	in := NewInterner()
	arr := in.RegisterArray(in.Builtins().Int, ArrayLength{Known: true, Value: 4})
	if got := SizeOf(in, arr); got != 32 {
		t.Fatalf("expected array size 32 (4*8), got %d", got)
	}
}

func TestSizeOfStructureSumsFields(t *testing.T) {
	in := NewInterner()
	pool := ident.NewPool()
	s := in.RegisterStructure(pool.Intern("Point"), source.Zero)
	in.SetStructureFields(s, []StructureField{
		{Name: pool.Intern("x"), Type: in.Builtins().Int},
		{Name: pool.Intern("y"), Type: in.Builtins().Int},
	})
	if got := SizeOf(in, s); got != 16 {
		t.Fatalf("expected structure size 16 (two Ints), got %d", got)
	}
}

func TestSizeOfEnumerationIsTagPlusWidestVariant(t *testing.T) {
	in := NewInterner()
	pool := ident.NewPool()
	e := in.RegisterEnumeration(pool.Intern("Shape"), source.Zero)
	tup := in.RegisterTuple([]TypeID{in.Builtins().Int, in.Builtins().Int})
	in.SetEnumerationVariants(e, []EnumerationVariant{
		{Name: pool.Intern("None"), PayloadType: NoTypeID},
		{Name: pool.Intern("Pair"), PayloadType: tup},
	})
	if got := SizeOf(in, e); got != 24 {
		t.Fatalf("expected enumeration size 24 (8-byte tag + 16-byte widest payload), got %d", got)
	}
}

func TestSizeOfDirectlySelfReferentialStructureDoesNotLoop(t *testing.T) {
	in := NewInterner()
	pool := ident.NewPool()
	s := in.RegisterStructure(pool.Intern("Bad"), source.Zero)
	in.SetStructureFields(s, []StructureField{
		{Name: pool.Intern("self"), Type: s},
	})
	if got := SizeOf(in, s); got != pointerSize {
		t.Fatalf("expected a directly self-referential field to fall back to pointer size (%d), got %d", pointerSize, got)
	}
}
