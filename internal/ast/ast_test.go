package ast

import (
	"testing"

	"glint/internal/arena"
	"glint/internal/ident"
	"glint/internal/source"
)

func TestNameIsUpperClassifiesLeadingRune(t *testing.T) {
	pool := ident.NewPool()

	upper := NewName(pool.Intern("Box"), "Box", source.Zero)
	if !upper.IsUpper {
		t.Fatalf("expected Box to classify as upper")
	}

	lower := NewName(pool.Intern("identity"), "identity", source.Zero)
	if lower.IsUpper {
		t.Fatalf("expected identity to classify as lower")
	}
}

func TestModuleArenaRoundTrip(t *testing.T) {
	mod := NewModule("fixture", source.NoFileID)

	lit := mod.Exprs.Alloc(Expr{Kind: ExprLiteral, Data: LiteralData{Kind: LiteralInt, Int: 1}})
	tuple := mod.Exprs.Alloc(Expr{Kind: ExprTupleLit, Data: TupleLitData{Elements: []arena.Handle[Expr]{lit}}})

	got := mod.Exprs.Deref(tuple)
	data, ok := got.Data.(TupleLitData)
	if !ok {
		t.Fatalf("expected TupleLitData, got %T", got.Data)
	}
	if len(data.Elements) != 1 || data.Elements[0] != lit {
		t.Fatalf("expected tuple to reference the literal handle, got %+v", data.Elements)
	}
}
