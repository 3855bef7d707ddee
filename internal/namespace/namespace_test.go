package namespace

import (
	"testing"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/ident"
	"glint/internal/source"
)

func name(pool *ident.Pool, text string) hir.Name {
	return ast.NewName(pool.Intern(text), text, source.Zero)
}

func TestRegisterDuplicateFunctionReportsError(t *testing.T) {
	pool := ident.NewPool()
	bag := diag.NewBag()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	b := NewBuilder(sink)
	root := New("root", nil)

	fnName := name(pool, "f")
	first := hir.Definition{Kind: hir.DefFunction, Name: fnName, Data: hir.FunctionData{}}
	second := hir.Definition{Kind: hir.DefFunction, Name: fnName, Data: hir.FunctionData{}}

	b.Register(first, root)
	b.Register(second, root)

	if !sink.HasErrors() {
		t.Fatalf("expected a duplicate-definition error")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeDuplicateDefinition {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeDuplicateDefinition among diagnostics")
	}
	if len(root.DeclarationOrder) != 1 {
		t.Fatalf("expected the duplicate to not extend declaration order, got %d entries", len(root.DeclarationOrder))
	}
}

func TestRegisterStructCreatesAssociatedNamespace(t *testing.T) {
	pool := ident.NewPool()
	sink := diag.NewSink(diag.NewBag(), diag.DefaultPolicy())
	b := NewBuilder(sink)
	root := New("root", nil)

	structName := name(pool, "Box")
	info := b.Register(hir.Definition{Kind: hir.DefStruct, Name: structName, Data: hir.StructData{}}, root)

	if info.Assoc == nil {
		t.Fatalf("expected struct registration to create an associated namespace")
	}
	if root.Structures[structName.Identifier] != info {
		t.Fatalf("expected struct to be registered in the Structures table")
	}
}

func TestDeclarationOrderPreservesInputOrder(t *testing.T) {
	pool := ident.NewPool()
	sink := diag.NewSink(diag.NewBag(), diag.DefaultPolicy())
	b := NewBuilder(sink)
	root := New("root", nil)

	names := []string{"c", "a", "b"}
	for _, n := range names {
		b.Register(hir.Definition{Kind: hir.DefFunction, Name: name(pool, n), Data: hir.FunctionData{}}, root)
	}

	if len(root.DeclarationOrder) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(root.DeclarationOrder))
	}
	for i, n := range names {
		if root.DeclarationOrder[i].HIR.Name.Identifier.View() != n {
			t.Fatalf("expected declaration order to match input order at index %d", i)
		}
	}
}

func TestImplementationAttachesMembersToAssociatedNamespace(t *testing.T) {
	pool := ident.NewPool()
	sink := diag.NewSink(diag.NewBag(), diag.DefaultPolicy())
	b := NewBuilder(sink)
	root := New("root", nil)

	structName := name(pool, "Box")
	b.Register(hir.Definition{Kind: hir.DefStruct, Name: structName, Data: hir.StructData{}}, root)

	methodName := name(pool, "unwrap")
	target := hir.TypeExpr{Data: hir.NamedTypeData{Name: hir.QualifiedName{Root: hir.RootCurrent, PrimaryName: structName}}}
	implDef := hir.Definition{
		Kind: hir.DefImplementation,
		Data: hir.ImplementationData{
			Target:  target,
			Members: []hir.Definition{{Kind: hir.DefFunction, Name: methodName, Data: hir.FunctionData{}}},
		},
	}
	b.Register(implDef, root)

	boxInfo := root.Structures[structName.Identifier]
	if _, ok := boxInfo.Assoc.Functions[methodName.Identifier]; !ok {
		t.Fatalf("expected implementation's member function to be registered under Box's associated namespace")
	}
	if sink.HasErrors() {
		t.Fatalf("did not expect errors, got %+v", sink.Bag().Items())
	}
}

func TestInstantiationAttachesToTypeclassSubspace(t *testing.T) {
	pool := ident.NewPool()
	sink := diag.NewSink(diag.NewBag(), diag.DefaultPolicy())
	b := NewBuilder(sink)
	root := New("root", nil)

	structName := name(pool, "Box")
	b.Register(hir.Definition{Kind: hir.DefStruct, Name: structName, Data: hir.StructData{}}, root)

	typeclassName := name(pool, "Show")
	methodName := name(pool, "show")
	target := hir.TypeExpr{Data: hir.NamedTypeData{Name: hir.QualifiedName{Root: hir.RootCurrent, PrimaryName: structName}}}
	instDef := hir.Definition{
		Kind: hir.DefInstantiation,
		Data: hir.InstantiationData{
			Typeclass: hir.QualifiedName{Root: hir.RootCurrent, PrimaryName: typeclassName},
			Target:    target,
			Members:   []hir.Definition{{Kind: hir.DefFunction, Name: methodName, Data: hir.FunctionData{}}},
		},
	}
	b.Register(instDef, root)

	boxInfo := root.Structures[structName.Identifier]
	members := boxInfo.Assoc.Instantiations[typeclassName.Identifier]
	if len(members) != 1 {
		t.Fatalf("expected 1 member registered under the Show instantiation subspace, got %d", len(members))
	}
	if members[0].HIR.Name.Identifier != methodName.Identifier {
		t.Fatalf("expected the registered member to be 'show'")
	}
}

func TestImplementationOnUnassociatedTargetReportsError(t *testing.T) {
	pool := ident.NewPool()
	sink := diag.NewSink(diag.NewBag(), diag.DefaultPolicy())
	b := NewBuilder(sink)
	root := New("root", nil)

	unknownName := name(pool, "Ghost")
	target := hir.TypeExpr{Data: hir.NamedTypeData{Name: hir.QualifiedName{Root: hir.RootCurrent, PrimaryName: unknownName}}}
	implDef := hir.Definition{Kind: hir.DefImplementation, Data: hir.ImplementationData{Target: target}}

	b.Register(implDef, root)

	if !sink.HasErrors() {
		t.Fatalf("expected an error for an implementation on an unregistered target")
	}
}
