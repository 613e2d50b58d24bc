package repos

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/types"
	"github.com/echoroom/echoroom-backend/internal/workflow"
)

// IdeaRepo is the guarded entry point for the idea collection. All mutations
// go through it so the version discipline cannot be bypassed.
type IdeaRepo interface {
	Create(ctx context.Context, idea *types.Idea) (*types.Idea, error)
	GetByID(ctx context.Context, id int) (*types.Idea, error)
	List(ctx context.Context) ([]*types.Idea, error)
	// UpdateChecked applies mutate only when expectedVersion matches the
	// stored version, then bumps the version by 1. The read-compare-write
	// runs as one unit under the store lock, so two racers on the same base
	// version produce exactly one success and one ConflictError. When mutate
	// fails the record is left untouched and the version does not advance.
	UpdateChecked(ctx context.Context, id, expectedVersion int, mutate func(*types.Idea) error) (*types.Idea, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type ideaRepo struct {
	mu     sync.Mutex
	log    *logger.Logger
	ideas  map[int]*types.Idea
	nextID int
}

func NewIdeaRepo(baseLog *logger.Logger) IdeaRepo {
	repoLog := baseLog.With("repo", "IdeaRepo")
	return &ideaRepo{
		log:    repoLog,
		ideas:  map[int]*types.Idea{},
		nextID: 1,
	}
}

func (ir *ideaRepo) Create(ctx context.Context, idea *types.Idea) (*types.Idea, error) {
	ir.mu.Lock()
	defer ir.mu.Unlock()

	now := time.Now()
	stored := *idea
	stored.ID = ir.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	ir.nextID++
	ir.ideas[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (ir *ideaRepo) GetByID(ctx context.Context, id int) (*types.Idea, error) {
	ir.mu.Lock()
	defer ir.mu.Unlock()

	stored, ok := ir.ideas[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *stored
	return &out, nil
}

func (ir *ideaRepo) List(ctx context.Context) ([]*types.Idea, error) {
	ir.mu.Lock()
	defer ir.mu.Unlock()

	results := make([]*types.Idea, 0, len(ir.ideas))
	for _, stored := range ir.ideas {
		out := *stored
		results = append(results, &out)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (ir *ideaRepo) UpdateChecked(ctx context.Context, id, expectedVersion int, mutate func(*types.Idea) error) (*types.Idea, error) {
	ir.mu.Lock()
	defer ir.mu.Unlock()

	stored, ok := ir.ideas[id]
	if !ok {
		return nil, ErrNotFound
	}
	if stored.Version != expectedVersion {
		ir.log.Debug("Stale idea update rejected", "idea_id", id, "submitted_version", expectedVersion, "current_version", stored.Version)
		return nil, &workflow.ConflictError{ExpectedVersion: expectedVersion, ActualVersion: stored.Version}
	}
	scratch := *stored
	if err := mutate(&scratch); err != nil {
		return nil, err
	}
	scratch.Version++
	scratch.UpdatedAt = time.Now()
	*stored = scratch

	out := scratch
	return &out, nil
}

func (ir *ideaRepo) Delete(ctx context.Context, id int) error {
	ir.mu.Lock()
	defer ir.mu.Unlock()

	if _, ok := ir.ideas[id]; !ok {
		return ErrNotFound
	}
	delete(ir.ideas, id)
	return nil
}

func (ir *ideaRepo) Count(ctx context.Context) (int, error) {
	ir.mu.Lock()
	defer ir.mu.Unlock()
	return len(ir.ideas), nil
}
