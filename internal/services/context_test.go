package services_test

import (
	"context"
	"testing"

	"lingoreel/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStage(ctx, "audio")
	ctx = services.WithCueIndex(ctx, 0)

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "audio" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if idx, ok := services.CueIndexFromContext(ctx); !ok || idx != 0 {
		t.Fatalf("unexpected cue index: %v %v", idx, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithRunID(ctx, "")
	ctx = services.WithCueIndex(ctx, -1)
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id")
	}
	if _, ok := services.CueIndexFromContext(ctx); ok {
		t.Fatal("expected no cue index")
	}
}
