package ui

import (
	"testing"

	"glint/internal/pipeline"
)

func TestNewProgressModelSeedsQueuedItems(t *testing.T) {
	events := make(chan pipeline.Event)
	model := NewProgressModel("compiling", []string{"a", "b"}, events).(*progressModel)

	if len(model.items) != 2 {
		t.Fatalf("expected 2 seeded items, got %d", len(model.items))
	}
	for _, item := range model.items {
		if item.status != "queued" {
			t.Fatalf("expected initial status 'queued', got %q", item.status)
		}
	}
}

func TestApplyEventUpdatesItemStatus(t *testing.T) {
	events := make(chan pipeline.Event)
	model := NewProgressModel("compiling", []string{"a", "b"}, events).(*progressModel)

	model.applyEvent(pipeline.Event{Module: "a", Stage: pipeline.StageDesugar, Status: pipeline.StatusWorking})
	if model.items[model.index["a"]].status != pipeline.StageDesugar.String() {
		t.Fatalf("expected status to reflect the working stage label, got %q", model.items[model.index["a"]].status)
	}

	model.applyEvent(pipeline.Event{Module: "a", Stage: pipeline.StageLowering, Status: pipeline.StatusDone})
	if model.items[model.index["a"]].status != "done" {
		t.Fatalf("expected 'done' status after StatusDone event, got %q", model.items[model.index["a"]].status)
	}
}

func TestApplyEventIgnoresUnknownModule(t *testing.T) {
	events := make(chan pipeline.Event)
	model := NewProgressModel("compiling", []string{"a"}, events).(*progressModel)

	if cmd := model.applyEvent(pipeline.Event{Module: "missing", Stage: pipeline.StageDesugar, Status: pipeline.StatusWorking}); cmd != nil {
		t.Fatalf("expected no command for an unknown module, got %v", cmd)
	}
}
