package resolve

import (
	"testing"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/hir"
	"glint/internal/ident"
	"glint/internal/namespace"
	"glint/internal/source"
)

func setup() (*ident.Pool, *diag.Bag, *namespace.Namespace, *namespace.Builder) {
	pool := ident.NewPool()
	bag := diag.NewBag()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	root := namespace.New("root", nil)
	return pool, bag, root, namespace.NewBuilder(sink)
}

func qname(n hir.Name) hir.QualifiedName {
	return hir.QualifiedName{Root: hir.RootCurrent, PrimaryName: n}
}

func globalQName(n hir.Name) hir.QualifiedName {
	return hir.QualifiedName{Root: hir.RootGlobal, PrimaryName: n}
}

func TestFindFunctionInCurrentNamespace(t *testing.T) {
	pool, bag, root, b := setup()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	fnName := ast.NewName(pool.Intern("run"), "run", source.Zero)
	b.Register(hir.Definition{Kind: hir.DefFunction, Name: fnName, Data: hir.FunctionData{}}, root)

	r := NewResolver(root, sink)
	info := r.FindFunction(root, qname(fnName))

	if info == nil {
		t.Fatalf("expected to find 'run'")
	}
}

func TestFindFunctionWalksToParentScope(t *testing.T) {
	pool, bag, root, b := setup()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	fnName := ast.NewName(pool.Intern("run"), "run", source.Zero)
	b.Register(hir.Definition{Kind: hir.DefFunction, Name: fnName, Data: hir.FunctionData{}}, root)

	child := root.Child(pool.Intern("Box"), "Box")
	r := NewResolver(root, sink)
	info := r.FindFunction(child, qname(fnName))

	if info == nil {
		t.Fatalf("expected a relative lookup from a child namespace to find a root-level function")
	}
}

func TestFindFunctionUnknownNameReportsError(t *testing.T) {
	pool, bag, root, _ := setup()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	missing := ast.NewName(pool.Intern("ghost"), "ghost", source.Zero)

	r := NewResolver(root, sink)
	info := r.FindFunction(root, qname(missing))

	if info != nil {
		t.Fatalf("expected no match")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeNoSuchName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeNoSuchName, got %+v", bag.Items())
	}
}

func TestFindFunctionCapitalizedNameReportsCaseMismatch(t *testing.T) {
	pool, bag, root, b := setup()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	name := hir.Name{Identifier: pool.Intern("Run"), IsUpper: true, Span: source.Zero}
	b.Register(hir.Definition{Kind: hir.DefFunction, Name: name, Data: hir.FunctionData{}}, root)

	r := NewResolver(root, sink)
	r.FindFunction(root, qname(name))

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeCaseMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeCaseMismatch for a capitalized function name")
	}
}

func TestFindTypeTriesStructuresThenEnumerationsThenAliases(t *testing.T) {
	pool, bag, root, b := setup()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	enumName := hir.Name{Identifier: pool.Intern("Color"), IsUpper: true, Span: source.Zero}
	b.Register(hir.Definition{Kind: hir.DefEnum, Name: enumName, Data: hir.EnumData{}}, root)

	r := NewResolver(root, sink)
	info := r.FindType(root, qname(enumName))

	if info == nil {
		t.Fatalf("expected to find the enumeration 'Color'")
	}
}

func TestFindGlobalRootIsAbsoluteNotRelative(t *testing.T) {
	pool, bag, root, b := setup()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	fnName := ast.NewName(pool.Intern("run"), "run", source.Zero)
	b.Register(hir.Definition{Kind: hir.DefFunction, Name: fnName, Data: hir.FunctionData{}}, root)
	child := root.Child(pool.Intern("Box"), "Box")

	r := NewResolver(root, sink)
	info := r.FindFunction(child, globalQName(fnName))

	if info == nil {
		t.Fatalf("expected an absolute global lookup to find a root-level function from any namespace")
	}
}

func TestFindMiddleQualifierDescendsIntoChild(t *testing.T) {
	pool, bag, root, b := setup()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	structName := hir.Name{Identifier: pool.Intern("Box"), IsUpper: true, Span: source.Zero}
	b.Register(hir.Definition{Kind: hir.DefStruct, Name: structName, Data: hir.StructData{}}, root)

	methodName := ast.NewName(pool.Intern("unwrap"), "unwrap", source.Zero)
	target := hir.TypeExpr{Data: hir.NamedTypeData{Name: qname(structName)}}
	b.Register(hir.Definition{
		Kind: hir.DefImplementation,
		Data: hir.ImplementationData{Target: target, Members: []hir.Definition{
			{Kind: hir.DefFunction, Name: methodName, Data: hir.FunctionData{}},
		}},
	}, root)

	r := NewResolver(root, sink)
	qualified := hir.QualifiedName{
		Root:             hir.RootCurrent,
		MiddleQualifiers: []hir.MiddleQualifier{{Name: structName}},
		PrimaryName:      methodName,
	}
	info := r.FindFunction(root, qualified)

	if info == nil {
		t.Fatalf("expected descending through the 'Box' qualifier to find 'unwrap'")
	}
}

func TestFindMissingMiddleQualifierReportsError(t *testing.T) {
	pool, bag, root, _ := setup()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	missingQualifier := hir.Name{Identifier: pool.Intern("Ghost"), IsUpper: true, Span: source.Zero}
	methodName := ast.NewName(pool.Intern("unwrap"), "unwrap", source.Zero)

	r := NewResolver(root, sink)
	qualified := hir.QualifiedName{
		Root:             hir.RootCurrent,
		MiddleQualifiers: []hir.MiddleQualifier{{Name: missingQualifier}},
		PrimaryName:      methodName,
	}
	r.FindFunction(root, qualified)

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeNoSuchQualifier {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeNoSuchQualifier, got %+v", bag.Items())
	}
}
