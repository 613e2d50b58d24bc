package repos

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type ExperimentRepo interface {
	Create(ctx context.Context, experiment *types.Experiment) (*types.Experiment, error)
	GetByID(ctx context.Context, id int) (*types.Experiment, error)
	List(ctx context.Context) ([]*types.Experiment, error)
	// Update applies mutate under the store lock and returns the updated
	// copy. Validation of what mutate may do (status transitions) belongs to
	// the service layer.
	Update(ctx context.Context, id int, mutate func(*types.Experiment) error) (*types.Experiment, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type experimentRepo struct {
	mu          sync.Mutex
	log         *logger.Logger
	experiments map[int]*types.Experiment
	nextID      int
}

func NewExperimentRepo(baseLog *logger.Logger) ExperimentRepo {
	repoLog := baseLog.With("repo", "ExperimentRepo")
	return &experimentRepo{
		log:         repoLog,
		experiments: map[int]*types.Experiment{},
		nextID:      1,
	}
}

func (er *experimentRepo) Create(ctx context.Context, experiment *types.Experiment) (*types.Experiment, error) {
	er.mu.Lock()
	defer er.mu.Unlock()

	stored := *experiment
	stored.ID = er.nextID
	stored.CreatedAt = time.Now()
	er.nextID++
	er.experiments[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (er *experimentRepo) GetByID(ctx context.Context, id int) (*types.Experiment, error) {
	er.mu.Lock()
	defer er.mu.Unlock()

	stored, ok := er.experiments[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *stored
	return &out, nil
}

func (er *experimentRepo) List(ctx context.Context) ([]*types.Experiment, error) {
	er.mu.Lock()
	defer er.mu.Unlock()

	results := make([]*types.Experiment, 0, len(er.experiments))
	for _, stored := range er.experiments {
		out := *stored
		results = append(results, &out)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (er *experimentRepo) Update(ctx context.Context, id int, mutate func(*types.Experiment) error) (*types.Experiment, error) {
	er.mu.Lock()
	defer er.mu.Unlock()

	stored, ok := er.experiments[id]
	if !ok {
		return nil, ErrNotFound
	}
	scratch := *stored
	if err := mutate(&scratch); err != nil {
		return nil, err
	}
	*stored = scratch

	out := scratch
	return &out, nil
}

func (er *experimentRepo) Delete(ctx context.Context, id int) error {
	er.mu.Lock()
	defer er.mu.Unlock()

	if _, ok := er.experiments[id]; !ok {
		return ErrNotFound
	}
	delete(er.experiments, id)
	return nil
}

func (er *experimentRepo) Count(ctx context.Context) (int, error) {
	er.mu.Lock()
	defer er.mu.Unlock()
	return len(er.experiments), nil
}
