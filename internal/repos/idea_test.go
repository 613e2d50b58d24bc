package repos

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/types"
	"github.com/echoroom/echoroom-backend/internal/workflow"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func seedIdea(t *testing.T, repo IdeaRepo, title string) *types.Idea {
	t.Helper()
	idea, err := repo.Create(context.Background(), &types.Idea{
		Title:      title,
		Complexity: types.IdeaComplexityLow,
		Status:     types.IdeaStatusProposed,
		Version:    1,
	})
	if err != nil {
		t.Fatalf("seed idea: %v", err)
	}
	return idea
}

func TestIdeaRepoAssignsSequentialIDs(t *testing.T) {
	repo := NewIdeaRepo(testLogger(t))
	first := seedIdea(t, repo, "first")
	second := seedIdea(t, repo, "second")
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected IDs 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestUpdateCheckedRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewIdeaRepo(testLogger(t))
	idea := seedIdea(t, repo, "spaced repetition study group")

	// Advance the record to version 3.
	for v := 1; v <= 2; v++ {
		if _, err := repo.UpdateChecked(ctx, idea.ID, v, func(i *types.Idea) error {
			i.Description = fmt.Sprintf("revision %d", v)
			return nil
		}); err != nil {
			t.Fatalf("update at version %d: %v", v, err)
		}
	}

	_, err := repo.UpdateChecked(ctx, idea.ID, 2, func(i *types.Idea) error {
		i.Title = "stale write"
		return nil
	})
	var conflict *workflow.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.ExpectedVersion != 2 || conflict.ActualVersion != 3 {
		t.Fatalf("conflict should carry both versions, got %+v", conflict)
	}

	stored, err := repo.GetByID(ctx, idea.ID)
	if err != nil {
		t.Fatalf("get after conflict: %v", err)
	}
	if stored.Title != "spaced repetition study group" || stored.Version != 3 {
		t.Fatalf("rejected update must leave the record untouched, got title=%q version=%d", stored.Title, stored.Version)
	}

	// The matching version goes through and bumps to 4.
	updated, err := repo.UpdateChecked(ctx, idea.ID, 3, func(i *types.Idea) error {
		i.Title = "fresh write"
		return nil
	})
	if err != nil {
		t.Fatalf("update at current version: %v", err)
	}
	if updated.Title != "fresh write" || updated.Version != 4 {
		t.Fatalf("expected version 4 after successful update, got %+v", updated)
	}
}

func TestUpdateCheckedMutateErrorKeepsVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewIdeaRepo(testLogger(t))
	idea := seedIdea(t, repo, "original")

	wantErr := errors.New("only drafts can be edited")
	_, err := repo.UpdateChecked(ctx, idea.ID, 1, func(i *types.Idea) error {
		i.Title = "should not persist"
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected mutate error to surface, got %v", err)
	}

	stored, err := repo.GetByID(ctx, idea.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Title != "original" || stored.Version != 1 {
		t.Fatalf("failed mutate must not persist or bump, got title=%q version=%d", stored.Title, stored.Version)
	}
}

func TestUpdateCheckedMissingIdea(t *testing.T) {
	repo := NewIdeaRepo(testLogger(t))
	_, err := repo.UpdateChecked(context.Background(), 42, 1, func(i *types.Idea) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateCheckedConcurrentWritersOneWins(t *testing.T) {
	ctx := context.Background()
	repo := NewIdeaRepo(testLogger(t))
	idea := seedIdea(t, repo, "contended")

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = repo.UpdateChecked(ctx, idea.ID, 1, func(i *types.Idea) error {
				i.Description = fmt.Sprintf("writer %d", slot)
				return nil
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var conflict *workflow.ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("losers must fail with ConflictError, got %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("exactly one writer on the same base version may win, got %d", successes)
	}

	stored, err := repo.GetByID(ctx, idea.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Version != 2 {
		t.Fatalf("version must advance exactly once, got %d", stored.Version)
	}
}

func TestIdeaRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewIdeaRepo(testLogger(t))
	idea := seedIdea(t, repo, "copy safety")

	idea.Title = "mutated caller copy"
	stored, err := repo.GetByID(ctx, idea.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Title != "copy safety" {
		t.Fatalf("caller mutation leaked into the store: %q", stored.Title)
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	listed[0].Title = "mutated list copy"
	stored, _ = repo.GetByID(ctx, idea.ID)
	if stored.Title != "copy safety" {
		t.Fatalf("list mutation leaked into the store: %q", stored.Title)
	}
}
