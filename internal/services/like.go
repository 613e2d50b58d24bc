package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/repos"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type LikeSummary struct {
	IdeaID             int   `json:"ideaId"`
	Count              int64 `json:"count"`
	LikedByCurrentUser bool  `json:"likedByCurrentUser"`
}

type LikeService interface {
	// ToggleLike likes the idea for the user, or removes the like when one
	// already exists. Returns the resulting liked state.
	ToggleLike(ctx context.Context, userID uuid.UUID, ideaID int) (bool, error)
	GetLikesForIdea(ctx context.Context, ideaID int, currentUserID *uuid.UUID) (*LikeSummary, error)
	GetLikesForIdeas(ctx context.Context, ideaIDs []int, currentUserID *uuid.UUID) ([]*LikeSummary, error)
}

type likeService struct {
	db       *gorm.DB
	log      *logger.Logger
	likeRepo repos.LikeRepo
}

func NewLikeService(db *gorm.DB, baseLog *logger.Logger, likeRepo repos.LikeRepo) LikeService {
	serviceLog := baseLog.With("service", "LikeService")
	return &likeService{db: db, log: serviceLog, likeRepo: likeRepo}
}

func (ls *likeService) ToggleLike(ctx context.Context, userID uuid.UUID, ideaID int) (bool, error) {
	var liked bool
	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := ls.likeRepo.GetByUserAndIdea(ctx, tx, userID, ideaID)
		if gErr != nil && !errors.Is(gErr, repos.ErrNotFound) {
			return gErr
		}
		if existing != nil {
			if dErr := ls.likeRepo.DeleteByUserAndIdea(ctx, tx, userID, ideaID); dErr != nil {
				return dErr
			}
			liked = false
			return nil
		}
		like := &types.Like{
			ID:     uuid.New(),
			UserID: userID,
			IdeaID: ideaID,
		}
		if _, cErr := ls.likeRepo.Create(ctx, tx, like); cErr != nil {
			return fmt.Errorf("create like: %w", cErr)
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (ls *likeService) GetLikesForIdea(ctx context.Context, ideaID int, currentUserID *uuid.UUID) (*LikeSummary, error) {
	count, err := ls.likeRepo.CountByIdea(ctx, nil, ideaID)
	if err != nil {
		return nil, err
	}

	likedByCurrentUser := false
	if currentUserID != nil {
		_, gErr := ls.likeRepo.GetByUserAndIdea(ctx, nil, *currentUserID, ideaID)
		if gErr == nil {
			likedByCurrentUser = true
		} else if !errors.Is(gErr, repos.ErrNotFound) {
			return nil, gErr
		}
	}

	return &LikeSummary{
		IdeaID:             ideaID,
		Count:              count,
		LikedByCurrentUser: likedByCurrentUser,
	}, nil
}

func (ls *likeService) GetLikesForIdeas(ctx context.Context, ideaIDs []int, currentUserID *uuid.UUID) ([]*LikeSummary, error) {
	if len(ideaIDs) == 0 {
		return []*LikeSummary{}, nil
	}
	counts, err := ls.likeRepo.CountByIdeas(ctx, nil, ideaIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]*LikeSummary, 0, len(ideaIDs))
	for _, ideaID := range ideaIDs {
		summary := &LikeSummary{IdeaID: ideaID, Count: counts[ideaID]}
		if currentUserID != nil {
			_, gErr := ls.likeRepo.GetByUserAndIdea(ctx, nil, *currentUserID, ideaID)
			if gErr == nil {
				summary.LikedByCurrentUser = true
			} else if !errors.Is(gErr, repos.ErrNotFound) {
				return nil, gErr
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
