package services

import (
	"context"
	"errors"
	"testing"

	"github.com/echoroom/echoroom-backend/internal/types"
	"github.com/echoroom/echoroom-backend/internal/workflow"
)

func TestCreateIdeaStartsAtProposedVersionOne(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)

	idea, err := f.ideas.CreateIdea(ctx, "weekly demo day", "show unfinished work every friday", types.IdeaComplexityLow)
	if err != nil {
		t.Fatalf("create idea: %v", err)
	}
	if idea.Status != types.IdeaStatusProposed {
		t.Fatalf("expected proposed, got %s", idea.Status)
	}
	if idea.Version != 1 {
		t.Fatalf("expected version 1, got %d", idea.Version)
	}
}

func TestCreateIdeaValidation(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)

	if _, err := f.ideas.CreateIdea(ctx, "   ", "description", types.IdeaComplexityLow); err == nil {
		t.Fatalf("whitespace title must be rejected")
	}
	if _, err := f.ideas.CreateIdea(ctx, "title", "", types.IdeaComplexityLow); err == nil {
		t.Fatalf("empty description must be rejected")
	}
}

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)

	draft, err := f.ideas.CreateDraft(ctx, "rough thought", "needs shaping", types.IdeaComplexityMedium)
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if draft.Status != types.IdeaStatusDraft {
		t.Fatalf("expected draft status, got %s", draft.Status)
	}

	edited, err := f.ideas.UpdateDraft(ctx, draft.ID, "sharper thought", "shaped up", draft.Version)
	if err != nil {
		t.Fatalf("update draft: %v", err)
	}
	if edited.Title != "sharper thought" || edited.Version != 2 {
		t.Fatalf("edit not applied, got %+v", edited)
	}

	published, err := f.ideas.PublishDraft(ctx, draft.ID, edited.Version)
	if err != nil {
		t.Fatalf("publish draft: %v", err)
	}
	if published.Status != types.IdeaStatusProposed || published.Version != 3 {
		t.Fatalf("expected proposed at version 3, got %+v", published)
	}

	// Published ideas are no longer editable through the draft path.
	_, err = f.ideas.UpdateDraft(ctx, draft.ID, "late edit", "too late", published.Version)
	if err == nil {
		t.Fatalf("editing a published idea must fail")
	}
	stored, _ := f.ideas.GetIdea(ctx, draft.ID)
	if stored.Title != "sharper thought" || stored.Version != 3 {
		t.Fatalf("rejected edit must not change or bump the record, got %+v", stored)
	}

	// Publishing twice is an illegal proposed -> proposed edge.
	_, err = f.ideas.PublishDraft(ctx, draft.ID, stored.Version)
	var invalid *workflow.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError on double publish, got %v", err)
	}
}

func TestUpdateDraftStaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)

	draft, err := f.ideas.CreateDraft(ctx, "contended draft", "two editors", types.IdeaComplexityHigh)
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if _, err := f.ideas.UpdateDraft(ctx, draft.ID, "editor one", "won the race", 1); err != nil {
		t.Fatalf("first edit: %v", err)
	}

	_, err = f.ideas.UpdateDraft(ctx, draft.ID, "editor two", "lost the race", 1)
	var conflict *workflow.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.ExpectedVersion != 1 || conflict.ActualVersion != 2 {
		t.Fatalf("conflict should carry both versions, got %+v", conflict)
	}
}

func TestUpdateStatusWalksTheLoop(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)

	idea, err := f.ideas.CreateIdea(ctx, "loop walker", "walks every stage", types.IdeaComplexityLow)
	if err != nil {
		t.Fatalf("create idea: %v", err)
	}

	steps := []types.IdeaStatus{
		types.IdeaStatusExperiment,
		types.IdeaStatusOutcome,
		types.IdeaStatusReflection,
	}
	version := idea.Version
	for _, next := range steps {
		updated, err := f.ideas.UpdateStatus(ctx, idea.ID, next, version)
		if err != nil {
			t.Fatalf("advance to %s: %v", next, err)
		}
		if updated.Status != next {
			t.Fatalf("expected %s, got %s", next, updated.Status)
		}
		version = updated.Version
	}

	// Reflection is terminal.
	_, err = f.ideas.UpdateStatus(ctx, idea.ID, types.IdeaStatusDiscarded, version)
	var invalid *workflow.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError out of reflection, got %v", err)
	}
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)

	if _, err := f.ideas.CreateIdea(ctx, "public one", "visible", types.IdeaComplexityLow); err != nil {
		t.Fatalf("create idea: %v", err)
	}
	if _, err := f.ideas.CreateDraft(ctx, "hidden one", "not yet", types.IdeaComplexityLow); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	published, err := f.ideas.ListPublished(ctx)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(published) != 1 || published[0].Title != "public one" {
		t.Fatalf("published feed must exclude drafts, got %d entries", len(published))
	}

	drafts, err := f.ideas.ListDrafts(ctx)
	if err != nil {
		t.Fatalf("list drafts: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Title != "hidden one" {
		t.Fatalf("draft list wrong, got %d entries", len(drafts))
	}

	all, err := f.ideas.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 ideas in total, got %d", len(all))
	}
}
