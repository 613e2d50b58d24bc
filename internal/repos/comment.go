package repos

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/types"
)

// CommentRepo is append-only. The idea link is weak, so no parent check
// happens here and orphaned comments are possible.
type CommentRepo interface {
	Create(ctx context.Context, comment *types.Comment) (*types.Comment, error)
	ListByIdea(ctx context.Context, ideaID int) ([]*types.Comment, error)
}

type commentRepo struct {
	mu       sync.Mutex
	log      *logger.Logger
	comments map[int]*types.Comment
	nextID   int
}

func NewCommentRepo(baseLog *logger.Logger) CommentRepo {
	repoLog := baseLog.With("repo", "CommentRepo")
	return &commentRepo{
		log:      repoLog,
		comments: map[int]*types.Comment{},
		nextID:   1,
	}
}

func (cr *commentRepo) Create(ctx context.Context, comment *types.Comment) (*types.Comment, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	stored := *comment
	stored.ID = cr.nextID
	stored.CreatedAt = time.Now()
	cr.nextID++
	cr.comments[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (cr *commentRepo) ListByIdea(ctx context.Context, ideaID int) ([]*types.Comment, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	var results []*types.Comment
	for _, stored := range cr.comments {
		if stored.IdeaID != ideaID {
			continue
		}
		out := *stored
		results = append(results, &out)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}
