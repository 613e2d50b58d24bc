package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type LikeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, like *types.Like) (*types.Like, error)
	GetByUserAndIdea(ctx context.Context, tx *gorm.DB, userID uuid.UUID, ideaID int) (*types.Like, error)
	DeleteByUserAndIdea(ctx context.Context, tx *gorm.DB, userID uuid.UUID, ideaID int) error
	CountByIdea(ctx context.Context, tx *gorm.DB, ideaID int) (int64, error)
	CountByIdeas(ctx context.Context, tx *gorm.DB, ideaIDs []int) (map[int]int64, error)
}

type likeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLikeRepo(db *gorm.DB, baseLog *logger.Logger) LikeRepo {
	repoLog := baseLog.With("repo", "LikeRepo")
	return &likeRepo{db: db, log: repoLog}
}

func (lr *likeRepo) Create(ctx context.Context, tx *gorm.DB, like *types.Like) (*types.Like, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if err := transaction.WithContext(ctx).Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

func (lr *likeRepo) GetByUserAndIdea(ctx context.Context, tx *gorm.DB, userID uuid.UUID, ideaID int) (*types.Like, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.Like
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND idea_id = ?", userID, ideaID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (lr *likeRepo) DeleteByUserAndIdea(ctx context.Context, tx *gorm.DB, userID uuid.UUID, ideaID int) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).
		Where("user_id = ? AND idea_id = ?", userID, ideaID).
		Delete(&types.Like{}).Error
}

func (lr *likeRepo) CountByIdea(ctx context.Context, tx *gorm.DB, ideaID int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Like{}).
		Where("idea_id = ?", ideaID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (lr *likeRepo) CountByIdeas(ctx context.Context, tx *gorm.DB, ideaIDs []int) (map[int]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	counts := make(map[int]int64, len(ideaIDs))
	if len(ideaIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		IdeaID int
		Total  int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Like{}).
		Select("idea_id, COUNT(*) AS total").
		Where("idea_id IN ?", ideaIDs).
		Group("idea_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.IdeaID] = row.Total
	}
	return counts, nil
}
