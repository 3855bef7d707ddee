package diag

import (
	"reflect"
	"testing"

	"glint/internal/source"
)

func TestSinkEmitsByDefault(t *testing.T) {
	bag := NewBag()
	sink := NewSink(bag, DefaultPolicy())

	sink.Warning(CodeUnusedBinding, source.Span{Start: 1, End: 2}, "unused local x")

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	if bag.Items()[0].Severity != SevWarning {
		t.Fatalf("expected warning severity, got %v", bag.Items()[0].Severity)
	}
	if sink.HasErrors() {
		t.Fatalf("warning alone must not mark the sink error-bearing")
	}
}

func TestSinkPromotesWarningToError(t *testing.T) {
	bag := NewBag()
	policy := DefaultPolicy()
	policy.WarningLevel[CategoryWarning] = ActionPromoteToError

	sink := NewSink(bag, policy)
	sink.Warning(CodeUnusedBinding, source.Span{}, "unused local x")

	if !sink.HasErrors() {
		t.Fatalf("expected promoted warning to mark sink error-bearing")
	}
	if bag.Items()[0].Severity != SevError {
		t.Fatalf("expected promoted diagnostic to carry SevError, got %v", bag.Items()[0].Severity)
	}
}

func TestSinkSuppressesCategory(t *testing.T) {
	bag := NewBag()
	policy := DefaultPolicy()
	policy.WarningLevel[CategoryWarning] = ActionSuppress

	sink := NewSink(bag, policy)
	sink.Warning(CodeUnusedBinding, source.Span{}, "unused local x")

	if bag.Len() != 0 {
		t.Fatalf("expected suppressed diagnostic to be dropped, got %d items", bag.Len())
	}
}

func TestSinkErrorIgnoresPolicy(t *testing.T) {
	bag := NewBag()
	policy := DefaultPolicy()
	policy.WarningLevel[CategoryType] = ActionSuppress // errors aren't warnings, this shouldn't matter

	sink := NewSink(bag, policy)
	sink.Error(CodeCannotUnify, source.Span{}, "cannot unify Int with Char")

	if !sink.HasErrors() {
		t.Fatalf("expected sink to be error-bearing")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected error to always be recorded")
	}
}

func TestBagSortIsStableByPositionThenSeverity(t *testing.T) {
	bag := NewBag()
	bag.Add(Diagnostic{Severity: SevWarning, Code: CodeUnusedBinding, Primary: source.Span{Start: 5, End: 6}})
	bag.Add(Diagnostic{Severity: SevError, Code: CodeCannotUnify, Primary: source.Span{Start: 1, End: 2}})
	bag.Add(Diagnostic{Severity: SevNote, Code: CodePreferLoop, Primary: source.Span{Start: 1, End: 2}})

	bag.Sort()

	items := bag.Items()
	if items[0].Primary.Start != 1 || items[0].Severity != SevError {
		t.Fatalf("expected error at offset 1 first, got %+v", items[0])
	}
	if items[1].Primary.Start != 1 || items[1].Severity != SevNote {
		t.Fatalf("expected note at offset 1 second, got %+v", items[1])
	}
	if items[2].Primary.Start != 5 {
		t.Fatalf("expected offset-5 diagnostic last, got %+v", items[2])
	}
}

func TestGoldenRoundTrip(t *testing.T) {
	want := []Diagnostic{
		{Severity: SevError, Code: CodeCannotUnify, Message: "cannot unify Int with Char", Primary: source.Span{File: 1, Start: 10, End: 20}},
		{Severity: SevWarning, Code: CodeUnusedBinding, Message: "unused local x", HelpNote: "prefix with _", Primary: source.Span{File: 1, Start: 30, End: 31}},
	}

	encoded, err := EncodeGolden(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeGolden(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("round trip length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Fatalf("round trip mismatch at %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}
