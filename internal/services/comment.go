package services

import (
	"context"
	"fmt"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/normalization"
	"github.com/echoroom/echoroom-backend/internal/repos"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type CommentService interface {
	AddComment(ctx context.Context, ideaID int, userID, username, content string) (*types.Comment, error)
	ListComments(ctx context.Context, ideaID int) ([]*types.Comment, error)
}

type commentService struct {
	log         *logger.Logger
	commentRepo repos.CommentRepo
}

func NewCommentService(baseLog *logger.Logger, commentRepo repos.CommentRepo) CommentService {
	serviceLog := baseLog.With("service", "CommentService")
	return &commentService{log: serviceLog, commentRepo: commentRepo}
}

// AddComment does not verify the idea exists: the parent link is weak by
// contract and a comment on a since-deleted idea is simply orphaned.
func (cs *commentService) AddComment(ctx context.Context, ideaID int, userID, username, content string) (*types.Comment, error) {
	content = normalization.TrimInputString(content)
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}
	if username == "" {
		username = "Anonymous"
	}

	comment := &types.Comment{
		IdeaID:   ideaID,
		UserID:   userID,
		Username: username,
		Content:  content,
	}
	created, err := cs.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

func (cs *commentService) ListComments(ctx context.Context, ideaID int) ([]*types.Comment, error) {
	return cs.commentRepo.ListByIdea(ctx, ideaID)
}
