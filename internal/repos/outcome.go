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

type OutcomeRepo interface {
	// Create inserts the outcome, enforcing at-most-one-outcome-per-
	// experiment under the store lock: a second insert for the same
	// experiment fails with DuplicateOutcomeError no matter how the callers
	// interleave.
	Create(ctx context.Context, outcome *types.Outcome) (*types.Outcome, error)
	GetByID(ctx context.Context, id int) (*types.Outcome, error)
	List(ctx context.Context) ([]*types.Outcome, error)
	ListByExperiment(ctx context.Context, experimentID int) ([]*types.Outcome, error)
	// ExistsForExperiment is the at-most-one-outcome predicate, for callers
	// that want to fail before doing other work. Create re-checks under its
	// own lock, so this is advisory only.
	ExistsForExperiment(ctx context.Context, experimentID int) (bool, error)
	UpdateResult(ctx context.Context, id int, result types.OutcomeResult) (*types.Outcome, error)
	Count(ctx context.Context) (int, error)
}

type outcomeRepo struct {
	mu       sync.Mutex
	log      *logger.Logger
	outcomes map[int]*types.Outcome
	nextID   int
}

func NewOutcomeRepo(baseLog *logger.Logger) OutcomeRepo {
	repoLog := baseLog.With("repo", "OutcomeRepo")
	return &outcomeRepo{
		log:      repoLog,
		outcomes: map[int]*types.Outcome{},
		nextID:   1,
	}
}

func (or *outcomeRepo) Create(ctx context.Context, outcome *types.Outcome) (*types.Outcome, error) {
	or.mu.Lock()
	defer or.mu.Unlock()

	for _, existing := range or.outcomes {
		if existing.ExperimentID == outcome.ExperimentID {
			or.log.Debug("Duplicate outcome insert rejected", "experiment_id", outcome.ExperimentID, "existing_outcome_id", existing.ID)
			return nil, &workflow.DuplicateOutcomeError{ExperimentID: outcome.ExperimentID}
		}
	}

	stored := *outcome
	stored.ID = or.nextID
	stored.CreatedAt = time.Now()
	or.nextID++
	or.outcomes[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (or *outcomeRepo) GetByID(ctx context.Context, id int) (*types.Outcome, error) {
	or.mu.Lock()
	defer or.mu.Unlock()

	stored, ok := or.outcomes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *stored
	return &out, nil
}

func (or *outcomeRepo) List(ctx context.Context) ([]*types.Outcome, error) {
	or.mu.Lock()
	defer or.mu.Unlock()

	results := make([]*types.Outcome, 0, len(or.outcomes))
	for _, stored := range or.outcomes {
		out := *stored
		results = append(results, &out)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (or *outcomeRepo) ListByExperiment(ctx context.Context, experimentID int) ([]*types.Outcome, error) {
	or.mu.Lock()
	defer or.mu.Unlock()

	var results []*types.Outcome
	for _, stored := range or.outcomes {
		if stored.ExperimentID != experimentID {
			continue
		}
		out := *stored
		results = append(results, &out)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (or *outcomeRepo) ExistsForExperiment(ctx context.Context, experimentID int) (bool, error) {
	or.mu.Lock()
	defer or.mu.Unlock()

	for _, stored := range or.outcomes {
		if stored.ExperimentID == experimentID {
			return true, nil
		}
	}
	return false, nil
}

func (or *outcomeRepo) UpdateResult(ctx context.Context, id int, result types.OutcomeResult) (*types.Outcome, error) {
	or.mu.Lock()
	defer or.mu.Unlock()

	stored, ok := or.outcomes[id]
	if !ok {
		return nil, ErrNotFound
	}
	stored.Result = result

	out := *stored
	return &out, nil
}

func (or *outcomeRepo) Count(ctx context.Context) (int, error) {
	or.mu.Lock()
	defer or.mu.Unlock()
	return len(or.outcomes), nil
}
