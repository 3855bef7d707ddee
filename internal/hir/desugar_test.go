package hir

import (
	"testing"

	"glint/internal/arena"
	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/ident"
	"glint/internal/source"
)

func newDesugarer() (*Desugarer, *diag.Bag) {
	bag := diag.NewBag()
	sink := diag.NewSink(bag, diag.DefaultPolicy())
	return NewDesugarer(ident.NewPool(), sink), bag
}

func boolLiteral(mod *ast.Module, value bool) arena.Handle[ast.Expr] {
	return mod.Exprs.Alloc(ast.Expr{
		Kind: ast.ExprLiteral,
		Data: ast.LiteralData{Kind: ast.LiteralBool, Bool: value},
	})
}

func emptyBlock(mod *ast.Module) arena.Handle[ast.Expr] {
	return mod.Exprs.Alloc(ast.Expr{Kind: ast.ExprBlock, Data: ast.BlockData{}})
}

// while true { } must desugar to loop { match true { true -> body; false
// -> break } } and emit a "prefer loop" note (spec §8 Scenario D).
func TestDesugarWhileTrueEmitsPreferLoopNote(t *testing.T) {
	d, bag := newDesugarer()
	mod := ast.NewModule("scenario_d", source.NoFileID)

	whileExpr := mod.Exprs.Alloc(ast.Expr{
		Kind: ast.ExprWhile,
		Data: ast.WhileData{Cond: boolLiteral(mod, true), Body: emptyBlock(mod)},
	})
	mod.Definitions = append(mod.Definitions, ast.Definition{
		Kind: ast.DefFunction,
		Data: ast.FunctionData{Body: whileExpr},
	})

	out := d.Desugar(mod)

	bodyHandle := out.Definitions[0].Data.(FunctionData).Body
	loopExpr := out.Exprs.Deref(bodyHandle)
	if loopExpr.Kind != ExprLoop {
		t.Fatalf("expected top-level Loop, got %v", loopExpr.Kind)
	}
	matchExpr := out.Exprs.Deref(loopExpr.Data.(LoopData).Body)
	if matchExpr.Kind != ExprMatch {
		t.Fatalf("expected loop body to be a Match, got %v", matchExpr.Kind)
	}
	arms := matchExpr.Data.(MatchData).Arms
	if len(arms) != 2 {
		t.Fatalf("expected 2 match arms, got %d", len(arms))
	}
	truePattern := out.Patterns.Deref(arms[0].Pattern)
	if truePattern.Kind != PatternLiteral || !truePattern.Data.(LiteralPatternData).Bool {
		t.Fatalf("expected first arm to match literal true, got %+v", truePattern)
	}
	breakExpr := out.Exprs.Deref(arms[1].Body)
	if breakExpr.Kind != ExprBreak {
		t.Fatalf("expected second arm body to be Break, got %v", breakExpr.Kind)
	}

	found := false
	for _, item := range bag.Items() {
		if item.Code == diag.CodePreferLoop {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CodePreferLoop note for 'while true'")
	}
}

// while <non-literal> { } must not trigger the prefer-loop note.
func TestDesugarWhileNonLiteralConditionEmitsNoNote(t *testing.T) {
	d, bag := newDesugarer()
	mod := ast.NewModule("m", source.NoFileID)

	name := ast.NewName(ident.NewPool().Intern("flag"), "flag", source.Zero)
	cond := mod.Exprs.Alloc(ast.Expr{
		Kind: ast.ExprVarRef,
		Data: ast.VarRefData{Name: ast.QualifiedName{Root: ast.RootCurrent, PrimaryName: name}},
	})
	whileExpr := mod.Exprs.Alloc(ast.Expr{
		Kind: ast.ExprWhile,
		Data: ast.WhileData{Cond: cond, Body: emptyBlock(mod)},
	})
	mod.Definitions = append(mod.Definitions, ast.Definition{
		Kind: ast.DefFunction,
		Data: ast.FunctionData{Body: whileExpr},
	})

	d.Desugar(mod)

	for _, item := range bag.Items() {
		if item.Code == diag.CodePreferLoop {
			t.Fatalf("did not expect CodePreferLoop note for a non-literal condition")
		}
	}
}

// if C { T } with no else synthesizes a unit else-branch.
func TestDesugarIfWithoutElseSynthesizesUnit(t *testing.T) {
	d, _ := newDesugarer()
	mod := ast.NewModule("m", source.NoFileID)

	ifExpr := mod.Exprs.Alloc(ast.Expr{
		Kind: ast.ExprIf,
		Data: ast.IfData{Cond: boolLiteral(mod, true), Then: emptyBlock(mod), HasElse: false},
	})
	mod.Definitions = append(mod.Definitions, ast.Definition{
		Kind: ast.DefFunction,
		Data: ast.FunctionData{Body: ifExpr},
	})

	out := d.Desugar(mod)

	bodyHandle := out.Definitions[0].Data.(FunctionData).Body
	matchExpr := out.Exprs.Deref(bodyHandle)
	if matchExpr.Kind != ExprMatch {
		t.Fatalf("expected Match, got %v", matchExpr.Kind)
	}
	arms := matchExpr.Data.(MatchData).Arms
	elseBody := out.Exprs.Deref(arms[1].Body)
	if elseBody.Kind != ExprTupleLit {
		t.Fatalf("expected synthesized unit else-branch, got %v", elseBody.Kind)
	}
	if len(elseBody.Data.(TupleLitData).Elements) != 0 {
		t.Fatalf("expected zero-arity tuple for synthesized unit")
	}
}

// if let P = E { T } desugars to match E { P -> T; _ -> () }.
func TestDesugarIfLetProducesMatchWithWildcardFallback(t *testing.T) {
	d, _ := newDesugarer()
	mod := ast.NewModule("m", source.NoFileID)

	name := ast.NewName(ident.NewPool().Intern("x"), "x", source.Zero)
	pattern := mod.Patterns.Alloc(ast.Pattern{Kind: ast.PatternName, Data: ast.NamePatternData{Name: name}})
	init := boolLiteral(mod, true)
	ifLetExpr := mod.Exprs.Alloc(ast.Expr{
		Kind: ast.ExprIfLet,
		Data: ast.IfLetData{Pattern: pattern, Init: init, Then: emptyBlock(mod), HasElse: false},
	})
	mod.Definitions = append(mod.Definitions, ast.Definition{
		Kind: ast.DefFunction,
		Data: ast.FunctionData{Body: ifLetExpr},
	})

	out := d.Desugar(mod)

	bodyHandle := out.Definitions[0].Data.(FunctionData).Body
	matchExpr := out.Exprs.Deref(bodyHandle)
	arms := matchExpr.Data.(MatchData).Arms
	if len(arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(arms))
	}
	firstPattern := out.Patterns.Deref(arms[0].Pattern)
	if firstPattern.Kind != PatternName {
		t.Fatalf("expected first arm pattern to carry the bound name, got %v", firstPattern.Kind)
	}
	secondPattern := out.Patterns.Deref(arms[1].Pattern)
	if secondPattern.Kind != PatternWildcard {
		t.Fatalf("expected fallback arm to be wildcard, got %v", secondPattern.Kind)
	}
}

// while let P = E { B } desugars to loop { match E { P -> B; _ -> break } }.
func TestDesugarWhileLetProducesLoopWithBreakFallback(t *testing.T) {
	d, _ := newDesugarer()
	mod := ast.NewModule("m", source.NoFileID)

	name := ast.NewName(ident.NewPool().Intern("item"), "item", source.Zero)
	pattern := mod.Patterns.Alloc(ast.Pattern{Kind: ast.PatternName, Data: ast.NamePatternData{Name: name}})
	init := boolLiteral(mod, true)
	whileLetExpr := mod.Exprs.Alloc(ast.Expr{
		Kind: ast.ExprWhileLet,
		Data: ast.WhileLetData{Pattern: pattern, Init: init, Body: emptyBlock(mod)},
	})
	mod.Definitions = append(mod.Definitions, ast.Definition{
		Kind: ast.DefFunction,
		Data: ast.FunctionData{Body: whileLetExpr},
	})

	out := d.Desugar(mod)

	bodyHandle := out.Definitions[0].Data.(FunctionData).Body
	loopExpr := out.Exprs.Deref(bodyHandle)
	if loopExpr.Kind != ExprLoop {
		t.Fatalf("expected Loop, got %v", loopExpr.Kind)
	}
	matchExpr := out.Exprs.Deref(loopExpr.Data.(LoopData).Body)
	arms := matchExpr.Data.(MatchData).Arms
	fallbackBody := out.Exprs.Deref(arms[1].Body)
	if fallbackBody.Kind != ExprBreak {
		t.Fatalf("expected fallback arm body to be Break, got %v", fallbackBody.Kind)
	}
}

// for is reserved: it must not be silently dropped. The desugarer emits a
// structural error and lowers the loop to a Hole (spec §9).
func TestDesugarForEmitsErrorAndProducesHole(t *testing.T) {
	d, bag := newDesugarer()
	mod := ast.NewModule("m", source.NoFileID)

	name := ast.NewName(ident.NewPool().Intern("item"), "item", source.Zero)
	pattern := mod.Patterns.Alloc(ast.Pattern{Kind: ast.PatternName, Data: ast.NamePatternData{Name: name}})
	iterable := boolLiteral(mod, true)
	forExpr := mod.Exprs.Alloc(ast.Expr{
		Kind: ast.ExprFor,
		Data: ast.ForData{Pattern: pattern, Iterable: iterable, Body: emptyBlock(mod)},
	})
	mod.Definitions = append(mod.Definitions, ast.Definition{
		Kind: ast.DefFunction,
		Data: ast.FunctionData{Body: forExpr},
	})

	out := d.Desugar(mod)

	bodyHandle := out.Definitions[0].Data.(FunctionData).Body
	holeExpr := out.Exprs.Deref(bodyHandle)
	if holeExpr.Kind != ExprHole {
		t.Fatalf("expected Hole placeholder for unlowered 'for', got %v", holeExpr.Kind)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected an error diagnostic for 'for' lowering")
	}
	found := false
	for _, item := range bag.Items() {
		if item.Code == diag.CodeForNotImplemented {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeForNotImplemented among diagnostics")
	}
}

// An untyped function parameter gets a synthesized implicit type
// parameter, distinct from any explicit one, and its annotation resolves
// to that synthesized name (spec §4.4 "Function bodies", Scenario A).
func TestDesugarSynthesizesImplicitTypeParamForUntypedParam(t *testing.T) {
	d, _ := newDesugarer()
	mod := ast.NewModule("m", source.NoFileID)

	paramName := ast.NewName(ident.NewPool().Intern("x"), "x", source.Zero)
	body := emptyBlock(mod)
	mod.Definitions = append(mod.Definitions, ast.Definition{
		Kind: ast.DefFunction,
		Data: ast.FunctionData{
			Params: []ast.Param{{Name: paramName, TypeAnnotation: nil}},
			Body:   body,
		},
	})

	out := d.Desugar(mod)

	fn := out.Definitions[0].Data.(FunctionData)
	if len(fn.ImplicitTemplateParams) != 1 {
		t.Fatalf("expected 1 synthesized implicit template param, got %d", len(fn.ImplicitTemplateParams))
	}
	paramType := fn.Params[0].TypeAnnotation
	named, ok := paramType.Data.(NamedTypeData)
	if !ok {
		t.Fatalf("expected parameter type to be NamedTypeData, got %T", paramType.Data)
	}
	if named.Name.PrimaryName.Identifier != fn.ImplicitTemplateParams[0].Name.Identifier {
		t.Fatalf("expected parameter's named type to reference the synthesized implicit param")
	}
}

// An explicitly typed parameter synthesizes nothing.
func TestDesugarExplicitParamTypeSynthesizesNothing(t *testing.T) {
	d, _ := newDesugarer()
	mod := ast.NewModule("m", source.NoFileID)

	paramName := ast.NewName(ident.NewPool().Intern("x"), "x", source.Zero)
	typeName := ast.NewName(ident.NewPool().Intern("Int"), "Int", source.Zero)
	annotation := ast.TypeExpr{
		Kind: ast.TypeNamed,
		Data: ast.NamedTypeData{Name: ast.QualifiedName{Root: ast.RootCurrent, PrimaryName: typeName}},
	}
	body := emptyBlock(mod)
	mod.Definitions = append(mod.Definitions, ast.Definition{
		Kind: ast.DefFunction,
		Data: ast.FunctionData{
			Params: []ast.Param{{Name: paramName, TypeAnnotation: &annotation}},
			Body:   body,
		},
	})

	out := d.Desugar(mod)

	fn := out.Definitions[0].Data.(FunctionData)
	if len(fn.ImplicitTemplateParams) != 0 {
		t.Fatalf("expected no synthesized implicit template params, got %d", len(fn.ImplicitTemplateParams))
	}
}
