package repos

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/types"
)

// ReflectionRepo has no update methods: reflections are immutable once
// written.
type ReflectionRepo interface {
	Create(ctx context.Context, reflection *types.Reflection) (*types.Reflection, error)
	GetByID(ctx context.Context, id int) (*types.Reflection, error)
	List(ctx context.Context) ([]*types.Reflection, error)
	ListByOutcome(ctx context.Context, outcomeID int) ([]*types.Reflection, error)
	Count(ctx context.Context) (int, error)
}

type reflectionRepo struct {
	mu          sync.Mutex
	log         *logger.Logger
	reflections map[int]*types.Reflection
	nextID      int
}

func NewReflectionRepo(baseLog *logger.Logger) ReflectionRepo {
	repoLog := baseLog.With("repo", "ReflectionRepo")
	return &reflectionRepo{
		log:         repoLog,
		reflections: map[int]*types.Reflection{},
		nextID:      1,
	}
}

// cloneReflection copies the record including the Tags backing array, so
// neither callers nor the store can reach each other's slice.
func cloneReflection(reflection *types.Reflection) *types.Reflection {
	out := *reflection
	out.Tags = append([]string(nil), reflection.Tags...)
	return &out
}

func (rr *reflectionRepo) Create(ctx context.Context, reflection *types.Reflection) (*types.Reflection, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	stored := cloneReflection(reflection)
	stored.ID = rr.nextID
	stored.CreatedAt = time.Now()
	rr.nextID++
	rr.reflections[stored.ID] = stored

	return cloneReflection(stored), nil
}

func (rr *reflectionRepo) GetByID(ctx context.Context, id int) (*types.Reflection, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	stored, ok := rr.reflections[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneReflection(stored), nil
}

func (rr *reflectionRepo) List(ctx context.Context) ([]*types.Reflection, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	results := make([]*types.Reflection, 0, len(rr.reflections))
	for _, stored := range rr.reflections {
		results = append(results, cloneReflection(stored))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (rr *reflectionRepo) ListByOutcome(ctx context.Context, outcomeID int) ([]*types.Reflection, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	var results []*types.Reflection
	for _, stored := range rr.reflections {
		if stored.OutcomeID != outcomeID {
			continue
		}
		results = append(results, cloneReflection(stored))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (rr *reflectionRepo) Count(ctx context.Context) (int, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return len(rr.reflections), nil
}
