package repos

import (
	"context"
	"testing"

	"github.com/echoroom/echoroom-backend/internal/types"
)

func TestReflectionRepoCopiesTags(t *testing.T) {
	ctx := context.Background()
	repo := NewReflectionRepo(testLogger(t))

	input := &types.Reflection{
		OutcomeID:  1,
		Tags:       []string{"process", "teamwork"},
		Visibility: types.ReflectionVisibilityPublic,
	}
	created, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating the caller's slice after the call must not reach the store.
	input.Tags[0] = "mutated-input"
	created.Tags[1] = "mutated-return"

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Tags[0] != "process" || stored.Tags[1] != "teamwork" {
		t.Fatalf("caller slice mutation leaked into the store: %v", stored.Tags)
	}

	// And the reads hand out fresh copies too.
	stored.Tags[0] = "mutated-get"
	listed, err := repo.ListByOutcome(ctx, 1)
	if err != nil {
		t.Fatalf("list by outcome: %v", err)
	}
	if len(listed) != 1 || listed[0].Tags[0] != "process" {
		t.Fatalf("read copy mutation leaked into the store: %v", listed[0].Tags)
	}
}

func TestReflectionRepoNilTagsStayNil(t *testing.T) {
	ctx := context.Background()
	repo := NewReflectionRepo(testLogger(t))

	created, err := repo.Create(ctx, &types.Reflection{OutcomeID: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Tags != nil {
		t.Fatalf("untagged reflection should keep nil tags, got %v", created.Tags)
	}
}
