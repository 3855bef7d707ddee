package main

import (
	"testing"

	"glint/internal/diag"
	"glint/internal/pipeline"
	"glint/internal/source"
)

func TestCompileOneSuccessfulFixture(t *testing.T) {
	raw := []byte(`{
		"module": "identity",
		"definitions": [
			{
				"kind": "function",
				"name": "id",
				"templateParams": ["T"],
				"params": [{"name": "x", "type": {"kind": "named", "name": "T"}}],
				"returnType": {"kind": "named", "name": "T"},
				"body": {"kind": "var", "name": "x"}
			}
		]
	}`)

	events := make(chan pipeline.Event, 32)
	result := compileOne("identity.json", raw, source.FileID(1), diag.DefaultPolicy(), events)
	close(events)

	if result.err != nil {
		t.Fatalf("unexpected error: %v", result.err)
	}
	if result.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.bag.Items())
	}
}

func TestCompileOneReportsDecodeError(t *testing.T) {
	events := make(chan pipeline.Event, 8)
	result := compileOne("bad.json", []byte("not json"), source.FileID(1), diag.DefaultPolicy(), events)
	close(events)

	if result.err == nil {
		t.Fatalf("expected a decode error for invalid fixture JSON")
	}
}
