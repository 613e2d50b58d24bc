package services

import (
	"context"
	"errors"
	"testing"

	"github.com/echoroom/echoroom-backend/internal/types"
	"github.com/echoroom/echoroom-backend/internal/workflow"
)

func sampleReflectionInput(outcomeID int) CreateReflectionInput {
	return CreateReflectionInput{
		OutcomeID: outcomeID,
		Context: types.ReflectionContext{
			EmotionBefore:    2,
			ConfidenceBefore: 4,
		},
		Breakdown: types.ReflectionBreakdown{
			WhatHappened:  "tried mob programming for a sprint",
			WhatWorked:    "shared context spread fast",
			WhatDidntWork: "review queue stalled",
		},
		Growth: types.ReflectionGrowth{
			LessonLearned: "rotate a reviewer out of the mob",
			NextAction:    "try a review rotation next sprint",
		},
		Result: types.ReflectionResult{
			EmotionAfter:    4,
			ConfidenceAfter: 7,
		},
		Tags:       []string{"process", "teamwork"},
		Visibility: types.ReflectionVisibilityPublic,
	}
}

func TestCreateReflectionRequiresOutcome(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)

	_, err := f.reflections.CreateReflection(ctx, sampleReflectionInput(77))
	var missing *workflow.ReferenceNotFoundError
	if !errors.As(err, &missing) {
		t.Fatalf("expected ReferenceNotFoundError, got %v", err)
	}
	if missing.Kind != "Outcome" || missing.ID != 77 {
		t.Fatalf("error should name the missing outcome, got %+v", missing)
	}

	all, err := f.reflections.ListReflections(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected reflection must not be stored, got %d", len(all))
	}
}

func TestCreateReflectionAndListByOutcome(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)
	experiment := f.seedExperiment(t, "mob programming", types.ExperimentStatusInProgress)
	outcome := f.seedOutcome(t, experiment.ID, types.OutcomeResultMixed)

	created, err := f.reflections.CreateReflection(ctx, sampleReflectionInput(outcome.ID))
	if err != nil {
		t.Fatalf("create reflection: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected first reflection to get ID 1, got %d", created.ID)
	}
	if created.OutcomeID != outcome.ID {
		t.Fatalf("reflection must point at its outcome, got %d", created.OutcomeID)
	}

	// A second reflection on the same outcome is fine; only outcomes are
	// one-per-parent.
	if _, err := f.reflections.CreateReflection(ctx, sampleReflectionInput(outcome.ID)); err != nil {
		t.Fatalf("second reflection on same outcome: %v", err)
	}

	byOutcome, err := f.reflections.ListByOutcome(ctx, outcome.ID)
	if err != nil {
		t.Fatalf("list by outcome: %v", err)
	}
	if len(byOutcome) != 2 {
		t.Fatalf("expected 2 reflections for the outcome, got %d", len(byOutcome))
	}
}
