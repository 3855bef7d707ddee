package config

import (
	"testing"

	"glint/internal/diag"
)

func TestPolicyFromBytes(t *testing.T) {
	cfg, err := LoadBytes([]byte(`
max_diagnostics = 50

[warnings]
warning = "suppress"

[notes]
resolution = "promote"
`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if cfg.MaxDiagnostics != 50 {
		t.Fatalf("expected max_diagnostics 50, got %d", cfg.MaxDiagnostics)
	}

	policy := cfg.Policy()
	if policy.WarningLevel[diag.CategoryWarning] != diag.ActionSuppress {
		t.Fatalf("expected warning category suppressed")
	}
	if policy.NoteLevel[diag.CategoryResolution] != diag.ActionPromoteToError {
		t.Fatalf("expected resolution notes promoted")
	}
}

func TestPolicyDefaults(t *testing.T) {
	cfg, err := LoadBytes(nil)
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if cfg.DefaultIntWidth != 64 {
		t.Fatalf("expected default int width 64, got %d", cfg.DefaultIntWidth)
	}
}
